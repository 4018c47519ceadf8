package validator

import (
	"fmt"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/memory"
	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

// AddressSpaceValidator validates address spaces and their segments.
type AddressSpaceValidator struct {
	checker
	params *ParameterValidator
}

// NewAddressSpaceValidator returns a validator for the address spaces of c.
func NewAddressSpaceValidator(eval *expression.Evaluator, c *model.Component, rules *revision.Rules) *AddressSpaceValidator {
	return &AddressSpaceValidator{
		checker: checker{eval: eval},
		params:  NewParameterValidator(eval, c.Choices, rules),
	}
}

func segmentNames(segments []model.Segment) []string {
	names := make([]string, len(segments))
	for i, s := range segments {
		names[i] = s.Name
	}
	return names
}

func (v *AddressSpaceValidator) segmentSpan(s *model.Segment) (begin, end uint64, err error) {
	offset, ok1 := v.unsigned(s.AddressOffset)
	size, ok2 := v.unsigned(s.Range)
	if !ok1 || !ok2 || size == 0 {
		return 0, 0, errNoSpan
	}
	end, err = memory.Last(offset, 1, 0, size)
	return offset, end, err
}

func (v *AddressSpaceValidator) segmentReserve(a *model.AddressSpace) *memory.Reserve {
	var res memory.Reserve
	for i := range a.Segments {
		s := &a.Segments[i]
		if !v.present(s.IsPresent) {
			continue
		}
		if begin, end, err := v.segmentSpan(s); err == nil {
			res.AddArea(s.Name, begin, end)
		}
	}
	return &res
}

// invalidSegments returns the segments with unusable offset or range.
func (v *AddressSpaceValidator) invalidSegments(a *model.AddressSpace) []string {
	var names []string
	for i := range a.Segments {
		s := &a.Segments[i]
		if !validName(s.Name) || !v.presence(s.IsPresent) || !v.nonNegative(s.AddressOffset) || !v.positive(s.Range) ||
			overflows(v.segmentSpan(s)) {
			names = append(names, s.Name)
		}
	}
	return names
}

// uncontainedSegments returns the segments reaching past the space range.
func (v *AddressSpaceValidator) uncontainedSegments(a *model.AddressSpace) []string {
	size, ok := v.unsigned(a.Range)
	if !ok {
		return nil
	}
	var names []string
	for i := range a.Segments {
		if _, end, err := v.segmentSpan(&a.Segments[i]); err == nil && end >= size {
			names = append(names, a.Segments[i].Name)
		}
	}
	return names
}

// Validate reports whether a is valid.
func (v *AddressSpaceValidator) Validate(a *model.AddressSpace) bool {
	return validName(a.Name) &&
		v.presence(a.IsPresent) &&
		v.positive(a.Range) &&
		v.positive(a.Width) &&
		v.optionalPositive(a.AddressUnitBits) &&
		len(v.invalidSegments(a)) == 0 &&
		NamesUnique(segmentNames(a.Segments)) &&
		len(v.uncontainedSegments(a)) == 0 &&
		!v.segmentReserve(a).HasOverlap() &&
		v.params.ValidateList(a.Parameters)
}

// FindErrorsIn appends the defects of a.
func (v *AddressSpaceValidator) FindErrorsIn(errs []string, a *model.AddressSpace, context string) []string {
	if !validName(a.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for address space %s within %s", a.Name, context))
	}
	if !v.presence(a.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for address space %s within %s", a.Name, context))
	}
	if !v.positive(a.Range) {
		errs = append(errs, fmt.Sprintf("Invalid range set for address space %s within %s", a.Name, context))
	}
	if !v.positive(a.Width) {
		errs = append(errs, fmt.Sprintf("Invalid width set for address space %s within %s", a.Name, context))
	}
	if !v.optionalPositive(a.AddressUnitBits) {
		errs = append(errs, fmt.Sprintf("Invalid address unit bits set for address space %s within %s", a.Name, context))
	}
	inner := within("address space", a.Name, context)
	for _, s := range v.invalidSegments(a) {
		errs = append(errs, fmt.Sprintf("Invalid segment %s within %s", s, inner))
	}
	errs = FindErrorsInNames(errs, "Segment", segmentNames(a.Segments), inner)
	for _, s := range v.uncontainedSegments(a) {
		errs = append(errs, fmt.Sprintf("Segment %s is not contained within address space %s within %s", s, a.Name, context))
	}
	errs = v.segmentReserve(a).FindErrorsInOverlap(errs, "Segments", inner)
	return v.params.FindErrorsInList(errs, a.Parameters, inner)
}

// CPUValidator validates the processors of a component.
type CPUValidator struct {
	checker
	rules     *revision.Rules
	component *model.Component
	params    *ParameterValidator
}

// NewCPUValidator returns a validator resolving address spaces and memory maps in c.
func NewCPUValidator(eval *expression.Evaluator, c *model.Component, rules *revision.Rules) *CPUValidator {
	return &CPUValidator{
		checker:   checker{eval: eval},
		rules:     rules,
		component: c,
		params:    NewParameterValidator(eval, c.Choices, rules),
	}
}

func (v *CPUValidator) unknownAddressSpaces(cpu *model.CPU) []string {
	var unknown []string
	for _, ref := range cpu.AddressSpaceRefs {
		if !v.component.HasAddressSpace(ref) {
			unknown = append(unknown, ref)
		}
	}
	return unknown
}

// validTarget checks the address spaces of a CPU in revisions referencing
// them and the memory map with its geometry otherwise.
func (v *CPUValidator) validTarget(cpu *model.CPU) bool {
	if v.rules.CPUAddressSpaceRefs {
		return cpu.MemoryMapRef == "" && len(cpu.AddressSpaceRefs) > 0 && len(v.unknownAddressSpaces(cpu)) == 0
	}
	return len(cpu.AddressSpaceRefs) == 0 &&
		v.component.HasMemoryMap(cpu.MemoryMapRef) &&
		v.positive(cpu.Range) &&
		v.positive(cpu.Width) &&
		v.optionalPositive(cpu.AddressUnitBits)
}

// Validate reports whether cpu is valid.
func (v *CPUValidator) Validate(cpu *model.CPU) bool {
	return validName(cpu.Name) &&
		v.presence(cpu.IsPresent) &&
		v.validTarget(cpu) &&
		v.params.ValidateList(cpu.Parameters)
}

// FindErrorsIn appends the defects of cpu.
func (v *CPUValidator) FindErrorsIn(errs []string, cpu *model.CPU, context string) []string {
	if !validName(cpu.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for cpu %s within %s", cpu.Name, context))
	}
	if !v.presence(cpu.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for cpu %s within %s", cpu.Name, context))
	}
	if v.rules.CPUAddressSpaceRefs {
		if cpu.MemoryMapRef != "" {
			errs = append(errs, fmt.Sprintf("Memory map reference is not allowed in %s for cpu %s within %s",
				v.rules.Revision, cpu.Name, context))
		}
		if len(cpu.AddressSpaceRefs) == 0 {
			errs = append(errs, fmt.Sprintf("No address space reference set for cpu %s within %s", cpu.Name, context))
		}
		for _, ref := range v.unknownAddressSpaces(cpu) {
			errs = append(errs, fmt.Sprintf("Could not find address space %s referenced by cpu %s within %s",
				ref, cpu.Name, context))
		}
	} else {
		if len(cpu.AddressSpaceRefs) > 0 {
			errs = append(errs, fmt.Sprintf("Address space references are not allowed in %s for cpu %s within %s",
				v.rules.Revision, cpu.Name, context))
		}
		if !v.component.HasMemoryMap(cpu.MemoryMapRef) {
			errs = append(errs, fmt.Sprintf("Could not find memory map %s referenced by cpu %s within %s",
				cpu.MemoryMapRef, cpu.Name, context))
		}
		if !v.positive(cpu.Range) {
			errs = append(errs, fmt.Sprintf("Invalid range set for cpu %s within %s", cpu.Name, context))
		}
		if !v.positive(cpu.Width) {
			errs = append(errs, fmt.Sprintf("Invalid width set for cpu %s within %s", cpu.Name, context))
		}
		if !v.optionalPositive(cpu.AddressUnitBits) {
			errs = append(errs, fmt.Sprintf("Invalid address unit bits set for cpu %s within %s", cpu.Name, context))
		}
	}
	return v.params.FindErrorsInList(errs, cpu.Parameters, within("cpu", cpu.Name, context))
}
