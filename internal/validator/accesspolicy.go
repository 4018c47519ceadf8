package validator

import (
	"fmt"

	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

// AccessPolicyValidator validates the access policies of a register or field.
type AccessPolicyValidator struct {
	rules *revision.Rules
	modes *ModeReferenceValidator
}

// NewAccessPolicyValidator returns a validator checking mode references with modes.
func NewAccessPolicyValidator(rules *revision.Rules, modes *ModeReferenceValidator) *AccessPolicyValidator {
	return &AccessPolicyValidator{rules: rules, modes: modes}
}

func otherPolicyRefs(policies []model.AccessPolicy, skip int) []model.ModeReference {
	var refs []model.ModeReference
	for i, p := range policies {
		if i != skip {
			refs = append(refs, p.ModeRefs...)
		}
	}
	return refs
}

// Validate reports whether every policy is valid.
func (v *AccessPolicyValidator) Validate(policies []model.AccessPolicy) bool {
	if len(policies) > 0 && !v.rules.AccessPolicies {
		return false
	}
	for i, p := range policies {
		if !v.rules.AccessAllowed(p.Access) {
			return false
		}
		if len(policies) > 1 && len(p.ModeRefs) == 0 {
			return false
		}
		refs := ModeReferences{Refs: p.ModeRefs, Others: otherPolicyRefs(policies, i)}
		if !v.modes.Validate(refs) {
			return false
		}
	}
	return true
}

// FindErrorsIn appends the defects of policies.
func (v *AccessPolicyValidator) FindErrorsIn(errs []string, policies []model.AccessPolicy, context string) []string {
	if len(policies) > 0 && !v.rules.AccessPolicies {
		return append(errs, fmt.Sprintf("Access policies are not allowed in %s within %s", v.rules.Revision, context))
	}
	missing := false
	for i, p := range policies {
		if !v.rules.AccessAllowed(p.Access) {
			errs = append(errs, fmt.Sprintf("Invalid access %s set for access policy within %s", p.Access, context))
		}
		if len(policies) > 1 && len(p.ModeRefs) == 0 {
			missing = true
		}
		refs := ModeReferences{Refs: p.ModeRefs, Others: otherPolicyRefs(policies, i)}
		errs = v.modes.FindErrorsIn(errs, refs, context)
	}
	if missing {
		errs = append(errs, fmt.Sprintf("Multiple access policies within %s must each have mode references", context))
	}
	return errs
}
