package model

// BusDefinition describes the high level attributes of a bus.
type BusDefinition struct {
	Header `yaml:",inline"`

	DirectConnection bool        `yaml:"directConnection,omitempty"`
	IsAddressable    bool        `yaml:"isAddressable,omitempty"`
	MaxInitiators    string      `yaml:"maxInitiators,omitempty"`
	MaxTargets       string      `yaml:"maxTargets,omitempty"`
	Extends          *VLNV       `yaml:"extends,omitempty"`
	SystemGroupNames []string    `yaml:"systemGroupNames,omitempty"`
	Parameters       []Parameter `yaml:"parameters,omitempty"`
}

// AbstractionDefinition lists the logical ports of a bus.
type AbstractionDefinition struct {
	Header `yaml:",inline"`

	BusType    VLNV              `yaml:"busType"`
	Extends    *VLNV             `yaml:"extends,omitempty"`
	Ports      []PortAbstraction `yaml:"ports,omitempty"`
	Parameters []Parameter       `yaml:"parameters,omitempty"`
}

// PortAbstraction is a logical port of an abstraction definition.
type PortAbstraction struct {
	LogicalName   string                    `yaml:"logicalName"`
	IsPresent     string                    `yaml:"isPresent,omitempty"`
	Qualifier     *Qualifier                `yaml:"qualifier,omitempty"`
	Wire          *WireAbstraction          `yaml:"wire,omitempty"`
	Transactional *TransactionalAbstraction `yaml:"transactional,omitempty"`
}

// WireAbstraction holds wire specific properties of a logical port.
type WireAbstraction struct {
	Width        string `yaml:"width,omitempty"`
	DefaultValue string `yaml:"defaultValue,omitempty"`
}

// TransactionalAbstraction holds transactional properties of a logical port.
type TransactionalAbstraction struct {
	Initiative string `yaml:"initiative,omitempty"`
	BusWidth   string `yaml:"busWidth,omitempty"`
}

// HasPort reports whether the abstraction defines a logical port called name.
func (a *AbstractionDefinition) HasPort(name string) bool {
	for _, p := range a.Ports {
		if p.LogicalName == name {
			return true
		}
	}
	return false
}

// Catalog lists the files of other documents by VLNV.
type Catalog struct {
	Header `yaml:",inline"`

	Catalogs               []IpxactFile `yaml:"catalogs,omitempty"`
	BusDefinitions         []IpxactFile `yaml:"busDefinitions,omitempty"`
	AbstractionDefinitions []IpxactFile `yaml:"abstractionDefinitions,omitempty"`
	Components             []IpxactFile `yaml:"components,omitempty"`
	Designs                []IpxactFile `yaml:"designs,omitempty"`
	DesignConfigurations   []IpxactFile `yaml:"designConfigurations,omitempty"`
	GeneratorChains        []IpxactFile `yaml:"generatorChains,omitempty"`
}

// IpxactFile is one catalog entry.
type IpxactFile struct {
	VLNV        VLNV   `yaml:"vlnv"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// GeneratorChain is an ordered collection of generators.
type GeneratorChain struct {
	Header `yaml:",inline"`

	ChainGroups                 []string    `yaml:"chainGroups,omitempty"`
	GeneratorChainSelectors     []VLNV      `yaml:"generatorChainSelectors,omitempty"`
	ComponentGeneratorSelectors []string    `yaml:"componentGeneratorSelectors,omitempty"`
	Generators                  []Generator `yaml:"generators,omitempty"`
}
