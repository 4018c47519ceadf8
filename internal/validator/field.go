package validator

import (
	"fmt"
	"slices"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/memory"
	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

// hardReset is the predefined reset type.
const hardReset = "HARD"

var enumeratedUsages = []string{"", "read", "write", "read-write"}

// FieldValidator validates the fields of registers.
type FieldValidator struct {
	checker
	rules     *revision.Rules
	component *model.Component
	policies  *AccessPolicyValidator
}

// NewFieldValidator returns a validator resolving reset types and modes in c.
func NewFieldValidator(eval *expression.Evaluator, c *model.Component, rules *revision.Rules) *FieldValidator {
	return &FieldValidator{
		checker:   checker{eval: eval},
		rules:     rules,
		component: c,
		policies:  NewAccessPolicyValidator(rules, NewModeReferenceValidator(c.ModeNames())),
	}
}

// Span returns the inclusive bit range of f. It fails when the offset or
// width do not evaluate or the range ends past bit 2^64-1.
func (v *FieldValidator) Span(f *model.Field) (begin, end uint64, err error) {
	offset, ok1 := v.unsigned(f.BitOffset)
	width, ok2 := v.unsigned(f.BitWidth)
	if !ok1 || !ok2 || width == 0 {
		return 0, 0, errNoSpan
	}
	end, err = memory.Last(offset, 1, 0, width)
	return offset, end, err
}

// Validate reports whether f is valid.
func (v *FieldValidator) Validate(f *model.Field) bool {
	return validName(f.Name) &&
		v.presence(f.IsPresent) &&
		v.nonNegative(f.BitOffset) &&
		v.positive(f.BitWidth) &&
		!overflows(v.Span(f)) &&
		validBool(f.Volatile) &&
		v.rules.AccessAllowed(f.Access) &&
		v.presence(f.Reserved) &&
		v.validResets(f) &&
		v.validEnumeratedValues(f) &&
		v.validWriteConstraint(f.WriteConstraint) &&
		v.policies.Validate(f.AccessPolicies)
}

// FindErrorsIn appends the defects of f.
func (v *FieldValidator) FindErrorsIn(errs []string, f *model.Field, context string) []string {
	if !validName(f.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for field %s within %s", f.Name, context))
	}
	if !v.presence(f.IsPresent) {
		errs = append(errs, fmt.Sprintf("Is present expression %s in field %s within %s must evaluate to 0 or 1",
			f.IsPresent, f.Name, context))
	}
	if !v.nonNegative(f.BitOffset) {
		errs = append(errs, fmt.Sprintf("Invalid bit offset set for field %s within %s", f.Name, context))
	}
	if !v.positive(f.BitWidth) {
		errs = append(errs, fmt.Sprintf("Invalid bit width set for field %s within %s", f.Name, context))
	}
	if overflows(v.Span(f)) {
		errs = append(errs, fmt.Sprintf("Field %s within %s exceeds the 64-bit range", f.Name, context))
	}
	if !validBool(f.Volatile) {
		errs = append(errs, fmt.Sprintf("Invalid volatile value set for field %s within %s", f.Name, context))
	}
	if !v.rules.AccessAllowed(f.Access) {
		errs = append(errs, fmt.Sprintf("Invalid access %s set for field %s within %s", f.Access, f.Name, context))
	}
	if !v.presence(f.Reserved) {
		errs = append(errs, fmt.Sprintf("Invalid reserved value set for field %s within %s", f.Name, context))
	}
	inner := within("field", f.Name, context)
	errs = v.findErrorsInResets(errs, f, inner)
	errs = v.findErrorsInEnumeratedValues(errs, f, inner)
	if !v.validWriteConstraint(f.WriteConstraint) {
		errs = append(errs, fmt.Sprintf("Invalid write constraint set for field %s within %s", f.Name, context))
	}
	return v.policies.FindErrorsIn(errs, f.AccessPolicies, inner)
}

func (v *FieldValidator) validResetType(ref string) bool {
	return ref == "" || ref == hardReset || v.component.HasResetType(ref)
}

func resetTypeRefs(resets []model.Reset) []string {
	refs := make([]string, len(resets))
	for i, r := range resets {
		refs[i] = r.ResetTypeRef
		if refs[i] == "" {
			refs[i] = hardReset
		}
	}
	return refs
}

func (v *FieldValidator) validResets(f *model.Field) bool {
	for _, r := range f.Resets {
		if !v.validResetType(r.ResetTypeRef) || !v.validExpr(r.Value) || !v.optionalExpr(r.Mask) {
			return false
		}
	}
	return NamesUnique(resetTypeRefs(f.Resets))
}

func (v *FieldValidator) findErrorsInResets(errs []string, f *model.Field, context string) []string {
	for _, r := range f.Resets {
		if !v.validResetType(r.ResetTypeRef) {
			errs = append(errs, fmt.Sprintf("Could not find reset type %s referenced by reset within %s",
				r.ResetTypeRef, context))
		}
		if !v.validExpr(r.Value) {
			errs = append(errs, fmt.Sprintf("Invalid reset value %s set within %s", r.Value, context))
		}
		if !v.optionalExpr(r.Mask) {
			errs = append(errs, fmt.Sprintf("Invalid reset mask %s set within %s", r.Mask, context))
		}
	}
	for _, ref := range Duplicates(resetTypeRefs(f.Resets)) {
		errs = append(errs, fmt.Sprintf("Multiple resets with reset type %s within %s", ref, context))
	}
	return errs
}

func enumeratedValueNames(values []model.EnumeratedValue) []string {
	names := make([]string, len(values))
	for i, e := range values {
		names[i] = e.Name
	}
	return names
}

func (v *FieldValidator) validEnumeratedValues(f *model.Field) bool {
	for _, e := range f.EnumeratedValues {
		if !validName(e.Name) || !v.validExpr(e.Value) || !slices.Contains(enumeratedUsages, e.Usage) {
			return false
		}
	}
	return NamesUnique(enumeratedValueNames(f.EnumeratedValues))
}

func (v *FieldValidator) findErrorsInEnumeratedValues(errs []string, f *model.Field, context string) []string {
	for _, e := range f.EnumeratedValues {
		if !validName(e.Name) {
			errs = append(errs, fmt.Sprintf("Invalid name specified for enumerated value %s within %s", e.Name, context))
		}
		if !v.validExpr(e.Value) {
			errs = append(errs, fmt.Sprintf("Invalid value set for enumerated value %s within %s", e.Name, context))
		}
		if !slices.Contains(enumeratedUsages, e.Usage) {
			errs = append(errs, fmt.Sprintf("Invalid usage %s set for enumerated value %s within %s",
				e.Usage, e.Name, context))
		}
	}
	return FindErrorsInNames(errs, "Enumerated value", enumeratedValueNames(f.EnumeratedValues), context)
}

// validWriteConstraint allows one kind of constraint. A range needs both
// bounds with minimum not above maximum.
func (v *FieldValidator) validWriteConstraint(wc *model.WriteConstraint) bool {
	if wc == nil {
		return true
	}
	hasRange := wc.Minimum != "" || wc.Maximum != ""
	kinds := 0
	for _, set := range []bool{wc.WriteAsRead, wc.UseEnumeratedValues, hasRange} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return false
	}
	if !hasRange {
		return true
	}
	lo, ok1 := v.integer(wc.Minimum)
	hi, ok2 := v.integer(wc.Maximum)
	return ok1 && ok2 && lo >= 0 && lo <= hi
}
