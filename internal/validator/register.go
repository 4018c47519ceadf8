package validator

import (
	"fmt"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/memory"
	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

// RegisterValidator validates registers, their fields and alternate registers.
type RegisterValidator struct {
	checker
	rules    *revision.Rules
	fields   *FieldValidator
	modes    *ModeReferenceValidator
	policies *AccessPolicyValidator
}

// NewRegisterValidator returns a validator for the registers of c.
func NewRegisterValidator(eval *expression.Evaluator, c *model.Component, rules *revision.Rules) *RegisterValidator {
	fields := NewFieldValidator(eval, c, rules)
	return &RegisterValidator{
		checker:  checker{eval: eval},
		rules:    rules,
		fields:   fields,
		modes:    fields.policies.modes,
		policies: fields.policies,
	}
}

// Span returns the inclusive range of r in address units, relative to
// its address block. It fails with memory.ErrOverflow when the range ends
// past the last 64-bit address.
func (v *RegisterValidator) Span(r *model.Register, addressUnitBits int64) (begin, end uint64, err error) {
	offset, ok1 := v.unsigned(r.AddressOffset)
	size, ok2 := v.unsigned(r.Size)
	if !ok1 || !ok2 || size == 0 || addressUnitBits <= 0 {
		return 0, 0, errNoSpan
	}
	n, err := v.replication(r.Dimension, r.MemoryArray)
	if err != nil {
		return 0, 0, err
	}
	units := memory.Units(size, uint64(addressUnitBits))
	stride, err := v.stride(r.MemoryArray, units)
	if err != nil {
		return 0, 0, err
	}
	end, err = memory.Last(offset, n, stride, units)
	return offset, end, err
}

func fieldNames(fields []model.Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// fieldReserve collects the bit ranges of the present fields.
func (v *RegisterValidator) fieldReserve(fields []model.Field) *memory.Reserve {
	var res memory.Reserve
	for i := range fields {
		f := &fields[i]
		if !v.present(f.IsPresent) {
			continue
		}
		if begin, end, err := v.fields.Span(f); err == nil {
			res.AddArea(f.Name, begin, end)
		}
	}
	return &res
}

// outsideFields returns the fields extending beyond size bits.
func (v *RegisterValidator) outsideFields(fields []model.Field, size string) []string {
	bits, ok := v.unsigned(size)
	if !ok {
		return nil
	}
	var outside []string
	for i := range fields {
		if _, end, err := v.fields.Span(&fields[i]); err == nil && end >= bits {
			outside = append(outside, fields[i].Name)
		}
	}
	return outside
}

func (v *RegisterValidator) validFields(fields []model.Field, size string) bool {
	if len(fields) == 0 || !NamesUnique(fieldNames(fields)) {
		return false
	}
	for i := range fields {
		if !v.fields.Validate(&fields[i]) {
			return false
		}
	}
	return len(v.outsideFields(fields, size)) == 0 && !v.fieldReserve(fields).HasOverlap()
}

func (v *RegisterValidator) findErrorsInFields(errs []string, fields []model.Field, size, name, context string) []string {
	if len(fields) == 0 {
		errs = append(errs, fmt.Sprintf("Register %s must contain at least one field within %s", name, context))
	}
	inner := within("register", name, context)
	for i := range fields {
		errs = v.fields.FindErrorsIn(errs, &fields[i], inner)
	}
	errs = FindErrorsInNames(errs, "Field", fieldNames(fields), inner)
	for _, f := range v.outsideFields(fields, size) {
		errs = append(errs, fmt.Sprintf("Field %s is not contained within register %s within %s", f, name, context))
	}
	return v.fieldReserve(fields).FindErrorsInOverlap(errs, "Fields", inner)
}

func (v *RegisterValidator) validDimension(dim string) bool {
	if dim == "" {
		return true
	}
	return v.rules.RegisterDimension && v.positive(dim)
}

func (v *RegisterValidator) validMemoryArray(a *model.MemoryArray) bool {
	if a == nil {
		return true
	}
	if !v.rules.MemoryArrays || len(a.Dimensions) == 0 {
		return false
	}
	for _, dim := range a.Dimensions {
		if !v.positive(dim) {
			return false
		}
	}
	return v.optionalPositive(a.Stride)
}

// Validate reports whether r is valid.
func (v *RegisterValidator) Validate(r *model.Register) bool {
	return validName(r.Name) &&
		v.presence(r.IsPresent) &&
		v.nonNegative(r.AddressOffset) &&
		v.positive(r.Size) &&
		v.validDimension(r.Dimension) &&
		v.validMemoryArray(r.MemoryArray) &&
		validBool(r.Volatile) &&
		v.rules.AccessAllowed(r.Access) &&
		v.validFields(r.Fields, r.Size) &&
		v.validAlternateRegisters(r) &&
		v.policies.Validate(r.AccessPolicies)
}

// FindErrorsIn appends the defects of r.
func (v *RegisterValidator) FindErrorsIn(errs []string, r *model.Register, context string) []string {
	if !validName(r.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for register %s within %s", r.Name, context))
	}
	if !v.presence(r.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for register %s within %s", r.Name, context))
	}
	if !v.nonNegative(r.AddressOffset) {
		errs = append(errs, fmt.Sprintf("Invalid address offset set for register %s within %s", r.Name, context))
	}
	if !v.positive(r.Size) {
		errs = append(errs, fmt.Sprintf("Invalid size set for register %s within %s", r.Name, context))
	}
	if !v.validDimension(r.Dimension) {
		errs = append(errs, fmt.Sprintf("Invalid dimension set for register %s within %s", r.Name, context))
	}
	if !v.validMemoryArray(r.MemoryArray) {
		errs = append(errs, fmt.Sprintf("Invalid memory array set for register %s within %s", r.Name, context))
	}
	if !validBool(r.Volatile) {
		errs = append(errs, fmt.Sprintf("Invalid volatile value set for register %s within %s", r.Name, context))
	}
	if !v.rules.AccessAllowed(r.Access) {
		errs = append(errs, fmt.Sprintf("Invalid access %s set for register %s within %s", r.Access, r.Name, context))
	}
	errs = v.findErrorsInFields(errs, r.Fields, r.Size, r.Name, context)
	inner := within("register", r.Name, context)
	errs = v.findErrorsInAlternateRegisters(errs, r, inner)
	return v.policies.FindErrorsIn(errs, r.AccessPolicies, inner)
}

func alternateRegisterNames(alts []model.AlternateRegister) []string {
	names := make([]string, len(alts))
	for i, a := range alts {
		names[i] = a.Name
	}
	return names
}

func otherAlternateRefs(alts []model.AlternateRegister, skip int) []model.ModeReference {
	var refs []model.ModeReference
	for i, a := range alts {
		if i != skip {
			refs = append(refs, a.ModeRefs...)
		}
	}
	return refs
}

// validSelection checks how an alternate register is selected: by groups
// in revisions with alternate groups and by mode references otherwise.
func (v *RegisterValidator) validSelection(alts []model.AlternateRegister, i int) bool {
	a := &alts[i]
	if v.rules.AlternateGroups {
		if len(a.ModeRefs) > 0 || len(a.AlternateGroups) == 0 {
			return false
		}
		for _, g := range a.AlternateGroups {
			if model.IsBlank(g) {
				return false
			}
		}
		return true
	}
	if len(a.AlternateGroups) > 0 || len(a.ModeRefs) == 0 {
		return false
	}
	return v.modes.Validate(ModeReferences{Refs: a.ModeRefs, Others: otherAlternateRefs(alts, i), Remap: true})
}

func (v *RegisterValidator) validAlternateRegisters(r *model.Register) bool {
	if !NamesUnique(alternateRegisterNames(r.AlternateRegisters)) {
		return false
	}
	for i := range r.AlternateRegisters {
		a := &r.AlternateRegisters[i]
		if !validName(a.Name) || a.Name == r.Name || !v.presence(a.IsPresent) ||
			!validBool(a.Volatile) || !v.rules.AccessAllowed(a.Access) ||
			!v.validSelection(r.AlternateRegisters, i) || !v.validFields(a.Fields, r.Size) {
			return false
		}
	}
	return true
}

func (v *RegisterValidator) findErrorsInAlternateRegisters(errs []string, r *model.Register, context string) []string {
	for i := range r.AlternateRegisters {
		a := &r.AlternateRegisters[i]
		if !validName(a.Name) || a.Name == r.Name {
			errs = append(errs, fmt.Sprintf("Invalid name specified for alternate register %s within %s", a.Name, context))
		}
		if !v.presence(a.IsPresent) {
			errs = append(errs, fmt.Sprintf("Invalid isPresent set for alternate register %s within %s", a.Name, context))
		}
		if !validBool(a.Volatile) {
			errs = append(errs, fmt.Sprintf("Invalid volatile value set for alternate register %s within %s", a.Name, context))
		}
		if !v.rules.AccessAllowed(a.Access) {
			errs = append(errs, fmt.Sprintf("Invalid access %s set for alternate register %s within %s",
				a.Access, a.Name, context))
		}
		inner := within("alternate register", a.Name, context)
		switch {
		case v.rules.AlternateGroups && len(a.ModeRefs) > 0:
			errs = append(errs, fmt.Sprintf("Mode references are not allowed in %s within %s", v.rules.Revision, inner))
		case v.rules.AlternateGroups && len(a.AlternateGroups) == 0:
			errs = append(errs, fmt.Sprintf("Alternate register %s within %s must have at least one alternate group",
				a.Name, context))
		case v.rules.AlternateGroups:
			for _, g := range a.AlternateGroups {
				if model.IsBlank(g) {
					errs = append(errs, fmt.Sprintf("Empty alternate group set for alternate register %s within %s",
						a.Name, context))
				}
			}
		case len(a.AlternateGroups) > 0:
			errs = append(errs, fmt.Sprintf("Alternate groups are not allowed in %s within %s", v.rules.Revision, inner))
		case len(a.ModeRefs) == 0:
			errs = append(errs, fmt.Sprintf("Alternate register %s within %s must have at least one mode reference",
				a.Name, context))
		default:
			refs := ModeReferences{Refs: a.ModeRefs, Others: otherAlternateRefs(r.AlternateRegisters, i), Remap: true}
			errs = v.modes.FindErrorsIn(errs, refs, inner)
		}
		errs = v.findErrorsInFields(errs, a.Fields, r.Size, a.Name, context)
	}
	return FindErrorsInNames(errs, "Alternate register", alternateRegisterNames(r.AlternateRegisters), context)
}
