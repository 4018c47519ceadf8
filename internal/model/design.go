package model

// Design is a netlist of component instances.
type Design struct {
	Header `yaml:",inline"`

	ComponentInstances []ComponentInstance `yaml:"componentInstances,omitempty"`
	SWInstances        []SWInstance        `yaml:"swInstances,omitempty"`
	Interconnections   []Interconnection   `yaml:"interconnections,omitempty"`
	AdHocConnections   []AdHocConnection   `yaml:"adHocConnections,omitempty"`
	Parameters         []Parameter         `yaml:"parameters,omitempty"`
}

// ComponentInstance is a hardware instance of a component in a design.
type ComponentInstance struct {
	InstanceName string           `yaml:"instanceName"`
	DisplayName  string           `yaml:"displayName,omitempty"`
	IsPresent    string           `yaml:"isPresent,omitempty"`
	ComponentRef ConfigurableVLNV `yaml:"componentRef"`
}

// SWInstance is a software instance mapped onto the design.
type SWInstance struct {
	InstanceName string `yaml:"instanceName"`
	ComponentRef VLNV   `yaml:"componentRef"`
	Mapping      string `yaml:"mapping,omitempty"`
}

// Interconnection connects bus interfaces of component instances.
type Interconnection struct {
	Name  string         `yaml:"name"`
	Start InterfaceRef   `yaml:"start"`
	Ends  []InterfaceRef `yaml:"ends"`
}

// InterfaceRef names a bus interface of a component instance.
type InterfaceRef struct {
	ComponentRef string `yaml:"componentRef"`
	BusRef       string `yaml:"busRef"`
}

// Tied values of an ad hoc connection that are not expressions.
const (
	TiedDefault = "default"
	TiedOpen    = "open"
)

// AdHocConnection connects ports directly, outside any bus interface.
// Internal references point at ports of component instances, external
// references at ports of the component the design implements.
type AdHocConnection struct {
	Name                   string          `yaml:"name"`
	DisplayName            string          `yaml:"displayName,omitempty"`
	IsPresent              string          `yaml:"isPresent,omitempty"`
	TiedValue              string          `yaml:"tiedValue,omitempty"`
	InternalPortReferences []PortReference `yaml:"internalPortReferences,omitempty"`
	ExternalPortReferences []PortReference `yaml:"externalPortReferences,omitempty"`
}

// PortReference names a port, or bits of it, taking part in an ad hoc connection.
type PortReference struct {
	ComponentRef string      `yaml:"componentRef,omitempty"`
	PortRef      string      `yaml:"portRef"`
	IsPresent    string      `yaml:"isPresent,omitempty"`
	PartSelect   *PartSelect `yaml:"partSelect,omitempty"`
}

// PartSelect selects a bit range of a port, or indices of an arrayed port.
type PartSelect struct {
	Range   *Range   `yaml:"range,omitempty"`
	Indices []string `yaml:"indices,omitempty"`
}

// FindComponentInstance returns the hardware instance called name.
func (d *Design) FindComponentInstance(name string) *ComponentInstance {
	for i := range d.ComponentInstances {
		if d.ComponentInstances[i].InstanceName == name {
			return &d.ComponentInstances[i]
		}
	}
	return nil
}

// FindSWInstance returns the software instance called name.
func (d *Design) FindSWInstance(name string) *SWInstance {
	for i := range d.SWInstances {
		if d.SWInstances[i].InstanceName == name {
			return &d.SWInstances[i]
		}
	}
	return nil
}

// FindInterconnection returns the interconnection called name.
func (d *Design) FindInterconnection(name string) *Interconnection {
	for i := range d.Interconnections {
		if d.Interconnections[i].Name == name {
			return &d.Interconnections[i]
		}
	}
	return nil
}

// DesignConfiguration selects views for the instances of a design.
type DesignConfiguration struct {
	Header `yaml:",inline"`

	DesignRef                    VLNV                `yaml:"designRef,omitempty"`
	GeneratorChainConfigurations  []ConfigurableVLNV             `yaml:"generatorChainConfigurations,omitempty"`
	InterconnectionConfigurations []InterconnectionConfiguration `yaml:"interconnectionConfigurations,omitempty"`
	ViewConfigurations            []ViewConfiguration            `yaml:"viewConfigurations,omitempty"`
	Parameters                    []Parameter                    `yaml:"parameters,omitempty"`
}

// InterconnectionConfiguration places abstractors on an interconnection
// of the configured design.
type InterconnectionConfiguration struct {
	IsPresent          string            `yaml:"isPresent,omitempty"`
	InterconnectionRef string            `yaml:"interconnectionRef"`
	AbstractorGroups   []AbstractorGroup `yaml:"abstractorInstances"`
}

// AbstractorGroup is a chain of abstractors serving the listed interfaces
// of the interconnection. No interface references means all of them.
type AbstractorGroup struct {
	IsPresent     string               `yaml:"isPresent,omitempty"`
	InterfaceRefs []InterfaceRef       `yaml:"interfaceRefs,omitempty"`
	Abstractors   []AbstractorInstance `yaml:"abstractors"`
}

// AbstractorInstance is one abstractor placed on an interconnection.
type AbstractorInstance struct {
	InstanceName  string           `yaml:"instanceName"`
	DisplayName   string           `yaml:"displayName,omitempty"`
	AbstractorRef ConfigurableVLNV `yaml:"abstractorRef"`
	ViewName      string           `yaml:"viewName"`
}

// ViewConfiguration selects the active view of one design instance.
type ViewConfiguration struct {
	InstanceName              string                     `yaml:"instanceName"`
	IsPresent                 string                     `yaml:"isPresent,omitempty"`
	ViewRef                   string                     `yaml:"viewRef"`
	ConfigurableElementValues []ConfigurableElementValue `yaml:"configurableElementValues,omitempty"`
}
