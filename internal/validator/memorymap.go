package validator

import (
	"fmt"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/memory"
	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

// MemoryMapValidator validates memory maps, their address blocks and remaps.
type MemoryMapValidator struct {
	checker
	rules     *revision.Rules
	component *model.Component
	blocks    *AddressBlockValidator
	modes     *ModeReferenceValidator
}

// NewMemoryMapValidator returns a validator for the memory maps of c.
func NewMemoryMapValidator(eval *expression.Evaluator, c *model.Component, rules *revision.Rules) *MemoryMapValidator {
	return &MemoryMapValidator{
		checker:   checker{eval: eval},
		rules:     rules,
		component: c,
		blocks:    NewAddressBlockValidator(eval, c, rules),
		modes:     NewModeReferenceValidator(c.ModeNames()),
	}
}

// addressUnitBits returns the unit of m, defaulting to a byte.
func (v *MemoryMapValidator) addressUnitBits(m *model.MemoryMap) (int64, bool) {
	if m.AddressUnitBits == "" {
		return defaultAddressUnitBits, true
	}
	aub, ok := v.integer(m.AddressUnitBits)
	return aub, ok && aub > 0
}

func (v *MemoryMapValidator) blockValidator(m *model.MemoryMap) *AddressBlockValidator {
	aub, ok := v.addressUnitBits(m)
	if !ok {
		aub = defaultAddressUnitBits
	}
	return v.blocks.WithAddressUnitBits(aub)
}

func blockNames(blocks []model.AddressBlock) []string {
	names := make([]string, len(blocks))
	for i, b := range blocks {
		names[i] = b.Name
	}
	return names
}

func (v *MemoryMapValidator) blockReserve(blocks []model.AddressBlock) *memory.Reserve {
	var res memory.Reserve
	for i := range blocks {
		b := &blocks[i]
		if !v.present(b.IsPresent) {
			continue
		}
		if begin, end, err := v.blocks.Span(b); err == nil {
			res.AddArea(b.Name, begin, end)
		}
	}
	return &res
}

// misalignedBlocks returns the blocks whose width is not a whole number of
// address units.
func (v *MemoryMapValidator) misalignedBlocks(m *model.MemoryMap, blocks []model.AddressBlock) []string {
	aub, ok := v.addressUnitBits(m)
	if !ok {
		return nil
	}
	var names []string
	for _, b := range blocks {
		if w, ok := v.integer(b.Width); ok && w > 0 && w%aub != 0 {
			names = append(names, b.Name)
		}
	}
	return names
}

func (v *MemoryMapValidator) validBlocks(m *model.MemoryMap, blocks []model.AddressBlock) bool {
	bv := v.blockValidator(m)
	for i := range blocks {
		if !bv.Validate(&blocks[i]) {
			return false
		}
	}
	return NamesUnique(blockNames(blocks)) &&
		!v.blockReserve(blocks).HasOverlap() &&
		len(v.misalignedBlocks(m, blocks)) == 0
}

func (v *MemoryMapValidator) findErrorsInBlocks(errs []string, m *model.MemoryMap, blocks []model.AddressBlock,
	context string) []string {
	bv := v.blockValidator(m)
	for i := range blocks {
		errs = bv.FindErrorsIn(errs, &blocks[i], context)
	}
	errs = FindErrorsInNames(errs, "Address block", blockNames(blocks), context)
	errs = v.blockReserve(blocks).FindErrorsInOverlap(errs, "Address blocks", context)
	for _, b := range v.misalignedBlocks(m, blocks) {
		errs = append(errs, fmt.Sprintf("Width of address block %s is not a multiple of the address unit bits within %s",
			b, context))
	}
	return errs
}

func remapNames(remaps []model.MemoryRemap) []string {
	names := make([]string, len(remaps))
	for i, r := range remaps {
		names[i] = r.Name
	}
	return names
}

// validSelection checks how remap i is selected: by remap state or by
// mode references depending on the revision.
func (v *MemoryMapValidator) validSelection(remaps []model.MemoryRemap, i int) bool {
	r := &remaps[i]
	if v.rules.RemapStates {
		return len(r.ModeRefs) == 0 && r.RemapState != "" && v.component.HasRemapState(r.RemapState)
	}
	return r.RemapState == "" && len(r.ModeRefs) > 0 &&
		v.modes.Validate(ModeReferences{Refs: r.ModeRefs, Others: modeRefsOf(remaps, i), Remap: true})
}

// Validate reports whether m is valid.
func (v *MemoryMapValidator) Validate(m *model.MemoryMap) bool {
	if _, ok := v.addressUnitBits(m); !ok {
		return false
	}
	if !validName(m.Name) || !v.presence(m.IsPresent) || !v.validBlocks(m, m.AddressBlocks) {
		return false
	}
	if !NamesUnique(remapNames(m.MemoryRemaps)) {
		return false
	}
	for i := range m.MemoryRemaps {
		r := &m.MemoryRemaps[i]
		if !validName(r.Name) || !v.presence(r.IsPresent) || !v.validSelection(m.MemoryRemaps, i) ||
			!v.validBlocks(m, r.AddressBlocks) {
			return false
		}
	}
	return true
}

// FindErrorsIn appends the defects of m.
func (v *MemoryMapValidator) FindErrorsIn(errs []string, m *model.MemoryMap, context string) []string {
	if !validName(m.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for memory map %s within %s", m.Name, context))
	}
	if !v.presence(m.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for memory map %s within %s", m.Name, context))
	}
	if _, ok := v.addressUnitBits(m); !ok {
		errs = append(errs, fmt.Sprintf("Invalid address unit bits set for memory map %s within %s", m.Name, context))
	}
	inner := within("memory map", m.Name, context)
	errs = v.findErrorsInBlocks(errs, m, m.AddressBlocks, inner)
	for i := range m.MemoryRemaps {
		errs = v.findErrorsInRemap(errs, m, i, inner)
	}
	return FindErrorsInNames(errs, "Memory remap", remapNames(m.MemoryRemaps), inner)
}

func (v *MemoryMapValidator) findErrorsInRemap(errs []string, m *model.MemoryMap, i int, context string) []string {
	r := &m.MemoryRemaps[i]
	if !validName(r.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for memory remap %s within %s", r.Name, context))
	}
	if !v.presence(r.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for memory remap %s within %s", r.Name, context))
	}
	inner := within("memory remap", r.Name, context)
	switch {
	case v.rules.RemapStates && len(r.ModeRefs) > 0:
		errs = append(errs, fmt.Sprintf("Mode references are not allowed in %s within %s", v.rules.Revision, inner))
	case v.rules.RemapStates && !v.component.HasRemapState(r.RemapState):
		errs = append(errs, fmt.Sprintf("Could not find remap state %s referenced by memory remap %s within %s",
			r.RemapState, r.Name, context))
	case v.rules.RemapStates:
	case r.RemapState != "":
		errs = append(errs, fmt.Sprintf("Remap states are not allowed in %s within %s", v.rules.Revision, inner))
	case len(r.ModeRefs) == 0:
		errs = append(errs, fmt.Sprintf("Memory remap %s within %s must have at least one mode reference", r.Name, context))
	default:
		refs := ModeReferences{Refs: r.ModeRefs, Others: modeRefsOf(m.MemoryRemaps, i), Remap: true}
		errs = v.modes.FindErrorsIn(errs, refs, inner)
	}
	return v.findErrorsInBlocks(errs, m, r.AddressBlocks, inner)
}
