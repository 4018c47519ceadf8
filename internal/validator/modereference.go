package validator

import (
	"fmt"
	"slices"
	"strconv"

	"ipxcheck/internal/model"
)

// ModeReferences is a group of mode references checked together: the
// references of one element, the references of its siblings that share
// the same pool of modes, and whether the element is a memory remap.
type ModeReferences struct {
	Refs   []model.ModeReference
	Others []model.ModeReference
	Remap  bool
}

func (m ModeReferences) inUse() []model.ModeReference {
	return append(slices.Clone(m.Refs), m.Others...)
}

// ModeReferenceValidator checks the mode references of remaps, alternate
// registers and access policies.
type ModeReferenceValidator struct {
	modes []string
}

// NewModeReferenceValidator returns a validator accepting references to modes.
func NewModeReferenceValidator(modes []string) *ModeReferenceValidator {
	return &ModeReferenceValidator{modes: modes}
}

// ValueIsValid reports whether value names an existing mode and occurs
// exactly once in inUse. inUse must contain the reference itself.
func (v *ModeReferenceValidator) ValueIsValid(value string, inUse []model.ModeReference) bool {
	if model.IsBlank(value) || !slices.Contains(v.modes, value) {
		return false
	}
	n := 0
	for _, r := range inUse {
		if r.Value == value {
			n++
		}
	}
	return n == 1
}

// PriorityIsValid reports whether priority is unique in inUse. Priorities
// are only required to be unique within memory remaps.
func (v *ModeReferenceValidator) PriorityIsValid(priority uint, inUse []model.ModeReference, remap bool) bool {
	if !remap {
		return true
	}
	n := 0
	for _, r := range inUse {
		if r.Priority == priority {
			n++
		}
	}
	return n == 1
}

// Validate reports whether every reference of m is valid.
func (v *ModeReferenceValidator) Validate(m ModeReferences) bool {
	inUse := m.inUse()
	for _, r := range m.Refs {
		if !v.ValueIsValid(r.Value, inUse) || !v.PriorityIsValid(r.Priority, inUse, m.Remap) {
			return false
		}
	}
	return true
}

// FindErrorsIn appends the defects of m. A duplicated value or priority
// is reported once.
func (v *ModeReferenceValidator) FindErrorsIn(errs []string, m ModeReferences, context string) []string {
	inUse := m.inUse()
	var values, priorities []string
	for _, r := range m.Refs {
		switch {
		case model.IsBlank(r.Value):
			errs = append(errs, fmt.Sprintf("Mode reference value is empty within %s", context))
		case !slices.Contains(v.modes, r.Value):
			errs = append(errs, fmt.Sprintf("Mode %s referenced within %s does not exist", r.Value, context))
		case !v.ValueIsValid(r.Value, inUse) && !slices.Contains(values, r.Value):
			values = append(values, r.Value)
			errs = append(errs, fmt.Sprintf("Mode reference value %s is not unique within %s", r.Value, context))
		}
		p := strconv.FormatUint(uint64(r.Priority), 10)
		if !v.PriorityIsValid(r.Priority, inUse, m.Remap) && !slices.Contains(priorities, p) {
			priorities = append(priorities, p)
			errs = append(errs, fmt.Sprintf("Mode reference priority %s is not unique within %s", p, context))
		}
	}
	return errs
}

func modeRefsOf(remaps []model.MemoryRemap, skip int) []model.ModeReference {
	var refs []model.ModeReference
	for i, r := range remaps {
		if i != skip {
			refs = append(refs, r.ModeRefs...)
		}
	}
	return refs
}
