// Package revision describes what each IP-XACT schema generation permits.
//
// Validators ask a Rules value instead of comparing revisions themselves.
package revision

import (
	"slices"

	"ipxcheck/internal/model"
)

// Rules holds the revision dependent vocabularies and limits.
type Rules struct {
	Revision model.Revision

	QualifierTypes        []model.QualifierType   // Allowed qualifier types
	MaxQualifierTypes     int                     // 0 means unlimited
	QualifierCombinations [][]model.QualifierType // Legal multi-type sets, nil means any

	InterfaceModes []string
	AccessValues   []string
	UsageValues    []string
	ResolveValues  []string
	Initiatives    []string

	ModeReferences       bool // Remaps and alternate registers select modes
	RemapStates          bool // Remaps select remap states
	AlternateGroups      bool // Alternate registers name groups
	AccessPolicies       bool // Registers and fields carry access policies
	MemoryArrays         bool // Registers may be replicated by memory arrays
	RegisterDimension    bool // Registers carry a dim element
	VolatileAccessChecks bool // Block volatile/access must agree with registers
	VectorIDs            bool // Parameter vectors may carry ids
	CPUAddressSpaceRefs  bool // CPUs reference address spaces instead of a memory map
}

var levels = []string{"", "low", "high"}

var flowTypes = []string{"creditReturn", "ready", "busy", "user"}

var (
	rules2014 = &Rules{
		Revision: model.Revision2014,
		QualifierTypes: []model.QualifierType{
			model.QualifierAddress,
			model.QualifierData,
			model.QualifierClock,
			model.QualifierReset,
			model.QualifierAny,
		},
		MaxQualifierTypes: 2,
		QualifierCombinations: [][]model.QualifierType{
			{model.QualifierAddress, model.QualifierData},
		},
		InterfaceModes: []string{
			"master", "slave", "system", "mirroredMaster", "mirroredSlave", "mirroredSystem", "monitor",
		},
		AccessValues:         []string{"read-only", "write-only", "read-write", "writeOnce", "read-writeOnce"},
		UsageValues:          []string{model.UsageMemory, model.UsageRegister, model.UsageReserved},
		ResolveValues:        []string{"immediate", "user", "generated"},
		Initiatives:          []string{"requires", "provides", "both", "requires/provides", "phantom"},
		RemapStates:          true,
		AlternateGroups:      true,
		RegisterDimension:    true,
		VolatileAccessChecks: true,
		CPUAddressSpaceRefs:  true,
	}

	rules2022 = &Rules{
		Revision: model.Revision2022,
		QualifierTypes: []model.QualifierType{
			model.QualifierAddress,
			model.QualifierData,
			model.QualifierClock,
			model.QualifierReset,
			model.QualifierValid,
			model.QualifierInterrupt,
			model.QualifierClockEnable,
			model.QualifierPowerEnable,
			model.QualifierOpcode,
			model.QualifierProtection,
			model.QualifierFlowControl,
			model.QualifierUser,
			model.QualifierRequest,
			model.QualifierResponse,
		},
		InterfaceModes: []string{
			"initiator", "target", "system", "mirroredInitiator", "mirroredTarget", "mirroredSystem", "monitor",
		},
		AccessValues:   []string{"read-only", "write-only", "read-write", "writeOnce", "read-writeOnce", "no-access"},
		UsageValues:    []string{model.UsageMemory, model.UsageRegister, model.UsageReserved},
		ResolveValues:  []string{"immediate", "user", "generated"},
		Initiatives:    []string{"requires", "provides", "both", "requires/provides", "phantom"},
		ModeReferences: true,
		AccessPolicies: true,
		MemoryArrays:   true,
		VectorIDs:      true,
	}
)

// For returns the rules of rev. Unknown revisions get the newest rules.
func For(rev model.Revision) *Rules {
	if rev == model.Revision2014 {
		return rules2014
	}
	return rules2022
}

// QualifierTypeAllowed reports whether t may appear in a qualifier.
func (r *Rules) QualifierTypeAllowed(t model.QualifierType) bool {
	return slices.Contains(r.QualifierTypes, t)
}

// QualifierCountAllowed reports whether a qualifier may carry n types.
func (r *Rules) QualifierCountAllowed(n int) bool {
	return r.MaxQualifierTypes == 0 || n <= r.MaxQualifierTypes
}

// QualifierCombinationAllowed reports whether the set of types may be
// combined in one qualifier. Single types are always combinable.
func (r *Rules) QualifierCombinationAllowed(types []model.QualifierType) bool {
	if len(types) < 2 || r.QualifierCombinations == nil {
		return true
	}
	for _, combo := range r.QualifierCombinations {
		if sameSet(combo, types) {
			return true
		}
	}
	return false
}

func sameSet(a, b []model.QualifierType) bool {
	if len(a) != len(b) {
		return false
	}
	for _, t := range b {
		if !slices.Contains(a, t) {
			return false
		}
	}
	for _, t := range a {
		if !slices.Contains(b, t) {
			return false
		}
	}
	return true
}

// LevelAllowed reports whether s is a legal reset, clock enable or power
// enable level.
func (r *Rules) LevelAllowed(s string) bool {
	return slices.Contains(levels, s)
}

// FlowTypeAllowed reports whether s is a legal flow type.
func (r *Rules) FlowTypeAllowed(s string) bool {
	return slices.Contains(flowTypes, s)
}

// InterfaceModeAllowed reports whether s is a legal bus interface mode.
func (r *Rules) InterfaceModeAllowed(s string) bool {
	return slices.Contains(r.InterfaceModes, s)
}

// AccessAllowed reports whether s is a legal access value. Empty is allowed.
func (r *Rules) AccessAllowed(s string) bool {
	return s == "" || slices.Contains(r.AccessValues, s)
}

// UsageAllowed reports whether s is a legal address block usage. Empty is allowed.
func (r *Rules) UsageAllowed(s string) bool {
	return s == "" || slices.Contains(r.UsageValues, s)
}

// ResolveAllowed reports whether s is a legal parameter resolve value. Empty is allowed.
func (r *Rules) ResolveAllowed(s string) bool {
	return s == "" || slices.Contains(r.ResolveValues, s)
}

// InitiativeAllowed reports whether s is a legal transactional initiative.
func (r *Rules) InitiativeAllowed(s string) bool {
	return slices.Contains(r.Initiatives, s)
}
