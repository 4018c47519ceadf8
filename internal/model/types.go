// Package model defines the in-memory IP-XACT document tree.
package model

import "strings"

// Revision identifies the IP-XACT schema generation a document was written for.
type Revision string

const (
	RevisionUnknown Revision = ""
	Revision2014    Revision = "1685-2014"
	Revision2022    Revision = "1685-2022"
)

// Known reports whether r is one of the supported schema generations.
func (r Revision) Known() bool {
	return r == Revision2014 || r == Revision2022
}

// Kind represents the category of an IP-XACT document.
type Kind string

const (
	KindComponent             Kind = "component"
	KindBusDefinition         Kind = "busDefinition"
	KindAbstractionDefinition Kind = "abstractionDefinition"
	KindDesign                Kind = "design"
	KindDesignConfiguration   Kind = "designConfiguration"
	KindCatalog               Kind = "catalog"
	KindGeneratorChain        Kind = "generatorChain"
)

// Kinds lists every document kind in declaration order.
var Kinds = []Kind{
	KindComponent,
	KindBusDefinition,
	KindAbstractionDefinition,
	KindDesign,
	KindDesignConfiguration,
	KindCatalog,
	KindGeneratorChain,
}

// VLNV is the vendor/library/name/version identifier of a document.
type VLNV struct {
	Vendor  string `yaml:"vendor" json:"vendor"`
	Library string `yaml:"library" json:"library"`
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

// String returns the colon separated form vendor:library:name:version.
func (v VLNV) String() string {
	return v.Vendor + ":" + v.Library + ":" + v.Name + ":" + v.Version
}

// IsEmpty reports whether no part of the VLNV is set.
func (v VLNV) IsEmpty() bool {
	return v == VLNV{}
}

// Valid reports whether every part of the VLNV is set to a non-blank value.
func (v VLNV) Valid() bool {
	return !IsBlank(v.Vendor) && !IsBlank(v.Library) && !IsBlank(v.Name) && !IsBlank(v.Version)
}

// Compare orders VLNVs by vendor, library, name and version.
func (v VLNV) Compare(o VLNV) int {
	for _, pair := range [][2]string{
		{v.Vendor, o.Vendor},
		{v.Library, o.Library},
		{v.Name, o.Name},
		{v.Version, o.Version},
	} {
		if c := strings.Compare(pair[0], pair[1]); c != 0 {
			return c
		}
	}
	return 0
}

// IsBlank reports whether s is empty or consists only of whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Header carries the fields shared by every top-level document.
type Header struct {
	VLNV        VLNV     `yaml:"vlnv"`
	Revision    Revision `yaml:"revision,omitempty"`
	DisplayName string   `yaml:"displayName,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// Identity returns the VLNV of the document.
func (h *Header) Identity() VLNV { return h.VLNV }

// StdRevision returns the schema revision the document declares.
func (h *Header) StdRevision() Revision { return h.Revision }

// Document is implemented by every top-level document kind. The set of
// implementations is closed: only types in this package satisfy it.
type Document interface {
	Kind() Kind
	Identity() VLNV
	StdRevision() Revision
	isDocument()
}

func (*Component) Kind() Kind             { return KindComponent }
func (*BusDefinition) Kind() Kind         { return KindBusDefinition }
func (*AbstractionDefinition) Kind() Kind { return KindAbstractionDefinition }
func (*Design) Kind() Kind                { return KindDesign }
func (*DesignConfiguration) Kind() Kind   { return KindDesignConfiguration }
func (*Catalog) Kind() Kind               { return KindCatalog }
func (*GeneratorChain) Kind() Kind        { return KindGeneratorChain }

func (*Component) isDocument()             {}
func (*BusDefinition) isDocument()         {}
func (*AbstractionDefinition) isDocument() {}
func (*Design) isDocument()                {}
func (*DesignConfiguration) isDocument()   {}
func (*Catalog) isDocument()               {}
func (*GeneratorChain) isDocument()        {}

// Parameter is a named, expression valued configuration item.
type Parameter struct {
	ID          string   `yaml:"id,omitempty"`
	Name        string   `yaml:"name"`
	DisplayName string   `yaml:"displayName,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Value       string   `yaml:"value"`
	Type        string   `yaml:"type,omitempty"`
	Minimum     string   `yaml:"minimum,omitempty"`
	Maximum     string   `yaml:"maximum,omitempty"`
	ChoiceRef   string   `yaml:"choiceRef,omitempty"`
	Resolve     string   `yaml:"resolve,omitempty"`
	Vectors     []Vector `yaml:"vectors,omitempty"`
	Arrays      []Array  `yaml:"arrays,omitempty"`
}

// ReferenceID returns the identifier expressions use to refer to p.
func (p *Parameter) ReferenceID() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Name
}

// Vector is a left/right bit range given as expressions.
type Vector struct {
	ID    string `yaml:"id,omitempty"`
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// Array is a left/right array dimension given as expressions.
type Array struct {
	ID    string `yaml:"id,omitempty"`
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// Range is a left/right pair used by port maps.
type Range struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// Choice is a named enumeration parameters may be restricted to.
type Choice struct {
	Name         string        `yaml:"name"`
	Enumerations []Enumeration `yaml:"enumerations"`
}

// Enumeration is one permitted value of a Choice.
type Enumeration struct {
	Value string `yaml:"value"`
	Text  string `yaml:"text,omitempty"`
}

// QualifierType is a semantic tag of a port.
type QualifierType string

const (
	QualifierAddress     QualifierType = "address"
	QualifierData        QualifierType = "data"
	QualifierClock       QualifierType = "clock"
	QualifierReset       QualifierType = "reset"
	QualifierAny         QualifierType = "any"
	QualifierValid       QualifierType = "valid"
	QualifierInterrupt   QualifierType = "interrupt"
	QualifierClockEnable QualifierType = "clockEnable"
	QualifierPowerEnable QualifierType = "powerEnable"
	QualifierOpcode      QualifierType = "opcode"
	QualifierProtection  QualifierType = "protection"
	QualifierFlowControl QualifierType = "flowControl"
	QualifierUser        QualifierType = "user"
	QualifierRequest     QualifierType = "request"
	QualifierResponse    QualifierType = "response"
)

// Qualifier describes what a port carries and how its levels are interpreted.
type Qualifier struct {
	Types            []QualifierType `yaml:"types"`
	ResetLevel       string          `yaml:"resetLevel,omitempty"`
	ClockEnableLevel string          `yaml:"clockEnableLevel,omitempty"`
	PowerEnableLevel string          `yaml:"powerEnableLevel,omitempty"`
	FlowType         string          `yaml:"flowType,omitempty"`
	UserFlowType     string          `yaml:"userFlowType,omitempty"`
	UserDefined      string          `yaml:"userDefined,omitempty"`
}

// HasType reports whether q carries the tag t.
func (q *Qualifier) HasType(t QualifierType) bool {
	for _, have := range q.Types {
		if have == t {
			return true
		}
	}
	return false
}

// ModeReference selects a component mode with a priority.
type ModeReference struct {
	Priority uint   `yaml:"priority"`
	Value    string `yaml:"value"`
}

// AccessPolicy binds an access type to a set of modes.
type AccessPolicy struct {
	ModeRefs []ModeReference `yaml:"modeRefs,omitempty"`
	Access   string          `yaml:"access,omitempty"`
}

// ConfigurableElementValue overrides a parameter of a referenced element.
type ConfigurableElementValue struct {
	ReferenceID string `yaml:"referenceId"`
	Value       string `yaml:"value"`
}

// ConfigurableVLNV is a document reference carrying parameter overrides.
type ConfigurableVLNV struct {
	VLNV                      `yaml:",inline"`
	ConfigurableElementValues []ConfigurableElementValue `yaml:"configurableElementValues,omitempty"`
}
