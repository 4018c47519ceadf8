package model

// Component describes a single hardware or software IP block.
type Component struct {
	Header `yaml:",inline"`

	Parameters          []Parameter          `yaml:"parameters,omitempty"`
	Choices             []Choice             `yaml:"choices,omitempty"`
	BusInterfaces       []BusInterface       `yaml:"busInterfaces,omitempty"`
	AddressSpaces       []AddressSpace       `yaml:"addressSpaces,omitempty"`
	MemoryMaps          []MemoryMap          `yaml:"memoryMaps,omitempty"`
	RemapStates         []RemapState         `yaml:"remapStates,omitempty"`
	Modes               []Mode               `yaml:"modes,omitempty"`
	Model               Model                `yaml:"model,omitempty"`
	ComponentGenerators []ComponentGenerator `yaml:"componentGenerators,omitempty"`
	FileSets            []FileSet            `yaml:"fileSets,omitempty"`
	CPUs                []CPU                `yaml:"cpus,omitempty"`
	PowerDomains        []PowerDomain        `yaml:"powerDomains,omitempty"`
	ResetTypes          []ResetType          `yaml:"resetTypes,omitempty"`
	SWViews             []SWView             `yaml:"swViews,omitempty"`
}

// Model groups the views, instantiations and ports of a component.
type Model struct {
	Views                             []View                             `yaml:"views,omitempty"`
	ComponentInstantiations           []ComponentInstantiation           `yaml:"componentInstantiations,omitempty"`
	DesignInstantiations              []DesignInstantiation              `yaml:"designInstantiations,omitempty"`
	DesignConfigurationInstantiations []DesignConfigurationInstantiation `yaml:"designConfigurationInstantiations,omitempty"`
	Ports                             []Port                             `yaml:"ports,omitempty"`
}

// View is a named configuration of a component.
type View struct {
	Name                                string   `yaml:"name"`
	DisplayName                         string   `yaml:"displayName,omitempty"`
	Description                         string   `yaml:"description,omitempty"`
	IsPresent                           string   `yaml:"isPresent,omitempty"`
	EnvIdentifiers                      []string `yaml:"envIdentifiers,omitempty"`
	ComponentInstantiationRef           string   `yaml:"componentInstantiationRef,omitempty"`
	DesignInstantiationRef              string   `yaml:"designInstantiationRef,omitempty"`
	DesignConfigurationInstantiationRef string   `yaml:"designConfigurationInstantiationRef,omitempty"`
}

// ComponentInstantiation describes how a component is instantiated in HDL.
type ComponentInstantiation struct {
	Name              string            `yaml:"name"`
	IsVirtual         bool              `yaml:"isVirtual,omitempty"`
	Language          string            `yaml:"language,omitempty"`
	LibraryName       string            `yaml:"libraryName,omitempty"`
	ModuleName        string            `yaml:"moduleName,omitempty"`
	ArchitectureName  string            `yaml:"architectureName,omitempty"`
	ConfigurationName string            `yaml:"configurationName,omitempty"`
	FileSetRefs       []string          `yaml:"fileSetRefs,omitempty"`
	Parameters        []Parameter       `yaml:"parameters,omitempty"`
	ModuleParameters  []ModuleParameter `yaml:"moduleParameters,omitempty"`
}

// ModuleParameter is an HDL generic or parameter of an instantiation.
type ModuleParameter struct {
	Parameter `yaml:",inline"`
	DataType  string `yaml:"dataType,omitempty"`
	UsageType string `yaml:"usageType,omitempty"`
	IsPresent string `yaml:"isPresent,omitempty"`
}

// DesignInstantiation references the design realizing a hierarchical view.
type DesignInstantiation struct {
	Name      string           `yaml:"name"`
	DesignRef ConfigurableVLNV `yaml:"designRef"`
}

// DesignConfigurationInstantiation references a design configuration.
type DesignConfigurationInstantiation struct {
	Name                   string           `yaml:"name"`
	Language               string           `yaml:"language,omitempty"`
	DesignConfigurationRef ConfigurableVLNV `yaml:"designConfigurationRef"`
	Parameters             []Parameter      `yaml:"parameters,omitempty"`
}

// Port is a wire or transactional port of a component.
type Port struct {
	Name          string         `yaml:"name"`
	DisplayName   string         `yaml:"displayName,omitempty"`
	Description   string         `yaml:"description,omitempty"`
	IsPresent     string         `yaml:"isPresent,omitempty"`
	Wire          *Wire          `yaml:"wire,omitempty"`
	Transactional *Transactional `yaml:"transactional,omitempty"`
	Arrays        []Array        `yaml:"arrays,omitempty"`
	Qualifier     *Qualifier     `yaml:"qualifier,omitempty"`
}

// Wire holds the properties of a wire port.
type Wire struct {
	Direction       string           `yaml:"direction"`
	Vectors         []Vector         `yaml:"vectors,omitempty"`
	TypeDefinitions []TypeDefinition `yaml:"typeDefinitions,omitempty"`
	DefaultValue    string           `yaml:"defaultValue,omitempty"`
}

// TypeDefinition names a port type and the views it applies to.
type TypeDefinition struct {
	TypeName string   `yaml:"typeName"`
	ViewRefs []string `yaml:"viewRefs,omitempty"`
}

// Transactional holds the properties of a transactional port.
type Transactional struct {
	Initiative      string           `yaml:"initiative"`
	Kind            string           `yaml:"kind,omitempty"`
	BusWidth        string           `yaml:"busWidth,omitempty"`
	MinConnections  string           `yaml:"minConnections,omitempty"`
	MaxConnections  string           `yaml:"maxConnections,omitempty"`
	Protocol        *Protocol        `yaml:"protocol,omitempty"`
	TypeDefinitions []TypeDefinition `yaml:"typeDefinitions,omitempty"`
}

// Protocol describes the transaction protocol of a transactional port.
type Protocol struct {
	Type               string `yaml:"type"`
	CustomType         string `yaml:"customType,omitempty"`
	PayloadName        string `yaml:"payloadName"`
	PayloadType        string `yaml:"payloadType"`
	PayloadExtension   string `yaml:"payloadExtension,omitempty"`
	ExtensionMandatory bool   `yaml:"extensionMandatory,omitempty"`
}

// Generator is an executable run against a document.
type Generator struct {
	Name             string      `yaml:"name"`
	DisplayName      string      `yaml:"displayName,omitempty"`
	Description      string      `yaml:"description,omitempty"`
	Hidden           bool        `yaml:"hidden,omitempty"`
	Phase            string      `yaml:"phase,omitempty"`
	APIType          string      `yaml:"apiType,omitempty"`
	TransportMethods []string    `yaml:"transportMethods,omitempty"`
	GeneratorExe     string      `yaml:"generatorExe"`
	Parameters       []Parameter `yaml:"parameters,omitempty"`
}

// ComponentGenerator is a generator attached to a component.
type ComponentGenerator struct {
	Generator `yaml:",inline"`
	Scope     string   `yaml:"scope,omitempty"`
	Groups    []string `yaml:"groups,omitempty"`
}

// BusInterface connects a group of ports to a bus.
type BusInterface struct {
	Name             string            `yaml:"name"`
	DisplayName      string            `yaml:"displayName,omitempty"`
	Description      string            `yaml:"description,omitempty"`
	IsPresent        string            `yaml:"isPresent,omitempty"`
	BusType          VLNV              `yaml:"busType"`
	AbstractionTypes []AbstractionType `yaml:"abstractionTypes,omitempty"`
	Mode             string            `yaml:"mode"`
	AddressSpaceRef  string            `yaml:"addressSpaceRef,omitempty"`
	MemoryMapRef     string            `yaml:"memoryMapRef,omitempty"`
	Group            string            `yaml:"group,omitempty"`
	BitsInLau        string            `yaml:"bitsInLau,omitempty"`
	BitSteering      string            `yaml:"bitSteering,omitempty"`
	Endianness       string            `yaml:"endianness,omitempty"`
	Parameters       []Parameter       `yaml:"parameters,omitempty"`
}

// AbstractionType binds an abstraction definition and its port maps to views.
type AbstractionType struct {
	AbstractionRef VLNV      `yaml:"abstractionRef"`
	ViewRefs       []string  `yaml:"viewRefs,omitempty"`
	PortMaps       []PortMap `yaml:"portMaps,omitempty"`
}

// PortMap maps a logical abstraction port onto a physical component port.
type PortMap struct {
	IsPresent     string           `yaml:"isPresent,omitempty"`
	LogicalPort   PortMapLogical   `yaml:"logicalPort"`
	PhysicalPort  *PortMapPhysical `yaml:"physicalPort,omitempty"`
	LogicalTieOff string           `yaml:"logicalTieOff,omitempty"`
	IsInformative bool             `yaml:"isInformative,omitempty"`
}

// PortMapLogical is the logical side of a port map.
type PortMapLogical struct {
	Name  string `yaml:"name"`
	Range *Range `yaml:"range,omitempty"`
}

// PortMapPhysical is the physical side of a port map.
type PortMapPhysical struct {
	Name       string `yaml:"name"`
	PartSelect *Range `yaml:"partSelect,omitempty"`
}

// AddressSpace is the addressable range seen by an initiator.
type AddressSpace struct {
	Name            string      `yaml:"name"`
	IsPresent       string      `yaml:"isPresent,omitempty"`
	Range           string      `yaml:"range"`
	Width           string      `yaml:"width"`
	AddressUnitBits string      `yaml:"addressUnitBits,omitempty"`
	Segments        []Segment   `yaml:"segments,omitempty"`
	Parameters      []Parameter `yaml:"parameters,omitempty"`
}

// Segment is a named part of an address space.
type Segment struct {
	Name          string `yaml:"name"`
	IsPresent     string `yaml:"isPresent,omitempty"`
	AddressOffset string `yaml:"addressOffset"`
	Range         string `yaml:"range"`
}

// RemapState names a set of port values that switches memory remaps.
type RemapState struct {
	Name       string      `yaml:"name"`
	RemapPorts []RemapPort `yaml:"remapPorts,omitempty"`
}

// RemapPort is the value a port must hold for a remap state.
type RemapPort struct {
	PortRef string `yaml:"portRef"`
	Value   string `yaml:"value"`
}

// Mode is an operating mode of a component.
type Mode struct {
	Name      string `yaml:"name"`
	Condition string `yaml:"condition,omitempty"`
}

// PowerDomain is a power domain of a component.
type PowerDomain struct {
	Name        string      `yaml:"name"`
	AlwaysOn    string      `yaml:"alwaysOn,omitempty"`
	SubDomainOf string      `yaml:"subDomainOf,omitempty"`
	Parameters  []Parameter `yaml:"parameters,omitempty"`
}

// ResetType is a user defined kind of reset.
type ResetType struct {
	Name string `yaml:"name"`
}

// FileSet groups files of a component.
type FileSet struct {
	Name  string `yaml:"name"`
	Files []File `yaml:"files,omitempty"`
}

// File is a single file of a file set.
type File struct {
	Name      string   `yaml:"name"`
	FileTypes []string `yaml:"fileTypes,omitempty"`
}

// CPU describes a processor of a component.
type CPU struct {
	Name             string      `yaml:"name"`
	IsPresent        string      `yaml:"isPresent,omitempty"`
	AddressSpaceRefs []string    `yaml:"addressSpaceRefs,omitempty"`
	MemoryMapRef     string      `yaml:"memoryMapRef,omitempty"`
	Range            string      `yaml:"range,omitempty"`
	Width            string      `yaml:"width,omitempty"`
	AddressUnitBits  string      `yaml:"addressUnitBits,omitempty"`
	Parameters       []Parameter `yaml:"parameters,omitempty"`
}

// SWView is a software view of a component.
type SWView struct {
	Name         string `yaml:"name"`
	HierarchyRef VLNV   `yaml:"hierarchyRef,omitempty"`
}

// FindView returns the view called name.
func (m *Model) FindView(name string) *View {
	for i := range m.Views {
		if m.Views[i].Name == name {
			return &m.Views[i]
		}
	}
	return nil
}

// FindComponentInstantiation returns the component instantiation called name.
func (m *Model) FindComponentInstantiation(name string) *ComponentInstantiation {
	for i := range m.ComponentInstantiations {
		if m.ComponentInstantiations[i].Name == name {
			return &m.ComponentInstantiations[i]
		}
	}
	return nil
}

// HasDesignInstantiation reports whether a design instantiation called name exists.
func (m *Model) HasDesignInstantiation(name string) bool {
	for _, inst := range m.DesignInstantiations {
		if inst.Name == name {
			return true
		}
	}
	return false
}

// HasDesignConfigurationInstantiation reports whether a design
// configuration instantiation called name exists.
func (m *Model) HasDesignConfigurationInstantiation(name string) bool {
	for _, inst := range m.DesignConfigurationInstantiations {
		if inst.Name == name {
			return true
		}
	}
	return false
}

// FindPort returns the port called name.
func (m *Model) FindPort(name string) *Port {
	for i := range m.Ports {
		if m.Ports[i].Name == name {
			return &m.Ports[i]
		}
	}
	return nil
}

// FindChoice returns the choice called name.
func (c *Component) FindChoice(name string) *Choice {
	for i := range c.Choices {
		if c.Choices[i].Name == name {
			return &c.Choices[i]
		}
	}
	return nil
}

// HasMode reports whether the component declares a mode called name.
func (c *Component) HasMode(name string) bool {
	for _, m := range c.Modes {
		if m.Name == name {
			return true
		}
	}
	return false
}

// HasRemapState reports whether the component declares a remap state called name.
func (c *Component) HasRemapState(name string) bool {
	for _, s := range c.RemapStates {
		if s.Name == name {
			return true
		}
	}
	return false
}

// HasResetType reports whether the component declares a reset type called name.
func (c *Component) HasResetType(name string) bool {
	for _, r := range c.ResetTypes {
		if r.Name == name {
			return true
		}
	}
	return false
}

// HasFileSet reports whether the component declares a file set called name.
func (c *Component) HasFileSet(name string) bool {
	for _, f := range c.FileSets {
		if f.Name == name {
			return true
		}
	}
	return false
}

// HasAddressSpace reports whether the component declares an address space called name.
func (c *Component) HasAddressSpace(name string) bool {
	for _, s := range c.AddressSpaces {
		if s.Name == name {
			return true
		}
	}
	return false
}

// HasMemoryMap reports whether the component declares a memory map called name.
func (c *Component) HasMemoryMap(name string) bool {
	for _, m := range c.MemoryMaps {
		if m.Name == name {
			return true
		}
	}
	return false
}

// HasPowerDomain reports whether the component declares a power domain called name.
func (c *Component) HasPowerDomain(name string) bool {
	for _, d := range c.PowerDomains {
		if d.Name == name {
			return true
		}
	}
	return false
}

// FindBusInterface returns the bus interface called name.
func (c *Component) FindBusInterface(name string) *BusInterface {
	for i := range c.BusInterfaces {
		if c.BusInterfaces[i].Name == name {
			return &c.BusInterfaces[i]
		}
	}
	return nil
}

// HasSWView reports whether the component declares a software view called name.
func (c *Component) HasSWView(name string) bool {
	for _, v := range c.SWViews {
		if v.Name == name {
			return true
		}
	}
	return false
}

// ModeNames returns the names of all component modes.
func (c *Component) ModeNames() []string {
	names := make([]string, 0, len(c.Modes))
	for _, m := range c.Modes {
		names = append(names, m.Name)
	}
	return names
}
