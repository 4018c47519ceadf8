package model

// MemoryMap is the register space a target interface exposes.
type MemoryMap struct {
	Name            string         `yaml:"name"`
	DisplayName     string         `yaml:"displayName,omitempty"`
	Description     string         `yaml:"description,omitempty"`
	IsPresent       string         `yaml:"isPresent,omitempty"`
	AddressUnitBits string         `yaml:"addressUnitBits,omitempty"`
	AddressBlocks   []AddressBlock `yaml:"addressBlocks,omitempty"`
	MemoryRemaps    []MemoryRemap  `yaml:"memoryRemaps,omitempty"`
}

// MemoryRemap is an alternative set of address blocks selected by a
// remap state (1685-2014) or by mode references (1685-2022).
type MemoryRemap struct {
	Name          string          `yaml:"name"`
	IsPresent     string          `yaml:"isPresent,omitempty"`
	RemapState    string          `yaml:"remapState,omitempty"`
	ModeRefs      []ModeReference `yaml:"modeRefs,omitempty"`
	AddressBlocks []AddressBlock  `yaml:"addressBlocks,omitempty"`
}

// Usage values of an address block.
const (
	UsageMemory   = "memory"
	UsageRegister = "register"
	UsageReserved = "reserved"
)

// AddressBlock is a contiguous range of a memory map.
type AddressBlock struct {
	Name          string         `yaml:"name"`
	IsPresent     string         `yaml:"isPresent,omitempty"`
	BaseAddress   string         `yaml:"baseAddress"`
	Range         string         `yaml:"range"`
	Width         string         `yaml:"width"`
	Usage         string         `yaml:"usage,omitempty"`
	Volatile      string         `yaml:"volatile,omitempty"`
	Access        string         `yaml:"access,omitempty"`
	Registers     []Register     `yaml:"registers,omitempty"`
	RegisterFiles []RegisterFile `yaml:"registerFiles,omitempty"`
	Parameters    []Parameter    `yaml:"parameters,omitempty"`
}

// RegisterFile groups registers and nested register files. Its range is
// counted in address units and its offset is relative to the enclosing
// address block or register file.
type RegisterFile struct {
	Name           string         `yaml:"name"`
	DisplayName    string         `yaml:"displayName,omitempty"`
	Description    string         `yaml:"description,omitempty"`
	IsPresent      string         `yaml:"isPresent,omitempty"`
	Dimension      string         `yaml:"dimension,omitempty"`
	MemoryArray    *MemoryArray   `yaml:"memoryArray,omitempty"`
	AddressOffset  string         `yaml:"addressOffset"`
	Range          string         `yaml:"range"`
	Registers      []Register     `yaml:"registers,omitempty"`
	RegisterFiles  []RegisterFile `yaml:"registerFiles,omitempty"`
	AccessPolicies []AccessPolicy `yaml:"accessPolicies,omitempty"`
}

// MemoryArray gives the dimensions of a replicated register or register
// file (1685-2022).
type MemoryArray struct {
	Dimensions []string `yaml:"dimensions"`
	Stride     string   `yaml:"stride,omitempty"`
}

// Register is a register inside an address block.
type Register struct {
	Name               string              `yaml:"name"`
	DisplayName        string              `yaml:"displayName,omitempty"`
	Description        string              `yaml:"description,omitempty"`
	IsPresent          string              `yaml:"isPresent,omitempty"`
	Dimension          string              `yaml:"dimension,omitempty"`
	MemoryArray        *MemoryArray        `yaml:"memoryArray,omitempty"`
	AddressOffset      string              `yaml:"addressOffset"`
	Size               string              `yaml:"size"`
	Volatile           string              `yaml:"volatile,omitempty"`
	Access             string              `yaml:"access,omitempty"`
	Fields             []Field             `yaml:"fields,omitempty"`
	AlternateRegisters []AlternateRegister `yaml:"alternateRegisters,omitempty"`
	AccessPolicies     []AccessPolicy      `yaml:"accessPolicies,omitempty"`
	Parameters         []Parameter         `yaml:"parameters,omitempty"`
}

// AlternateRegister redefines the fields of a register for some groups or modes.
type AlternateRegister struct {
	Name            string          `yaml:"name"`
	IsPresent       string          `yaml:"isPresent,omitempty"`
	AlternateGroups []string        `yaml:"alternateGroups,omitempty"`
	ModeRefs        []ModeReference `yaml:"modeRefs,omitempty"`
	Volatile        string          `yaml:"volatile,omitempty"`
	Access          string          `yaml:"access,omitempty"`
	Fields          []Field         `yaml:"fields,omitempty"`
}

// Field is a bit range inside a register.
type Field struct {
	Name             string            `yaml:"name"`
	DisplayName      string            `yaml:"displayName,omitempty"`
	Description      string            `yaml:"description,omitempty"`
	IsPresent        string            `yaml:"isPresent,omitempty"`
	BitOffset        string            `yaml:"bitOffset"`
	BitWidth         string            `yaml:"bitWidth"`
	Volatile         string            `yaml:"volatile,omitempty"`
	Access           string            `yaml:"access,omitempty"`
	Reserved         string            `yaml:"reserved,omitempty"`
	Resets           []Reset           `yaml:"resets,omitempty"`
	EnumeratedValues []EnumeratedValue `yaml:"enumeratedValues,omitempty"`
	WriteConstraint  *WriteConstraint  `yaml:"writeConstraint,omitempty"`
	AccessPolicies   []AccessPolicy    `yaml:"accessPolicies,omitempty"`
}

// Reset is a reset value of a field.
type Reset struct {
	ResetTypeRef string `yaml:"resetTypeRef,omitempty"`
	Value        string `yaml:"value"`
	Mask         string `yaml:"mask,omitempty"`
}

// EnumeratedValue names one value of a field.
type EnumeratedValue struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
	Usage string `yaml:"usage,omitempty"`
}

// WriteConstraint restricts the values written to a field.
type WriteConstraint struct {
	WriteAsRead         bool   `yaml:"writeAsRead,omitempty"`
	UseEnumeratedValues bool   `yaml:"useEnumeratedValues,omitempty"`
	Minimum             string `yaml:"minimum,omitempty"`
	Maximum             string `yaml:"maximum,omitempty"`
}
