package validator

import (
	"fmt"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

// ModeValidator validates component modes. Conditions are only checked
// for syntax since they refer to port values unknown before simulation.
type ModeValidator struct{}

// NewModeValidator returns a mode validator.
func NewModeValidator() *ModeValidator { return &ModeValidator{} }

func validCondition(cond string) bool {
	return cond == "" || expression.Check(cond) == nil
}

// Validate reports whether m is valid.
func (v *ModeValidator) Validate(m *model.Mode) bool {
	return validName(m.Name) && validCondition(m.Condition)
}

// FindErrorsIn appends the defects of m.
func (v *ModeValidator) FindErrorsIn(errs []string, m *model.Mode, context string) []string {
	if !validName(m.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for mode %s within %s", m.Name, context))
	}
	if !validCondition(m.Condition) {
		errs = append(errs, fmt.Sprintf("Invalid condition %s set for mode %s within %s", m.Condition, m.Name, context))
	}
	return errs
}

// RemapStateValidator validates remap states against the ports of a component.
type RemapStateValidator struct {
	checker
	component *model.Component
}

// NewRemapStateValidator returns a validator resolving port references in c.
func NewRemapStateValidator(eval *expression.Evaluator, c *model.Component) *RemapStateValidator {
	return &RemapStateValidator{checker: checker{eval: eval}, component: c}
}

func (v *RemapStateValidator) portFound(ref string) bool {
	return v.component.Model.FindPort(ref) != nil
}

// Validate reports whether s is valid.
func (v *RemapStateValidator) Validate(s *model.RemapState) bool {
	if !validName(s.Name) {
		return false
	}
	for _, p := range s.RemapPorts {
		if !v.portFound(p.PortRef) || !v.validExpr(p.Value) {
			return false
		}
	}
	return true
}

// FindErrorsIn appends the defects of s.
func (v *RemapStateValidator) FindErrorsIn(errs []string, s *model.RemapState, context string) []string {
	if !validName(s.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for remap state %s within %s", s.Name, context))
	}
	for _, p := range s.RemapPorts {
		if !v.portFound(p.PortRef) {
			errs = append(errs, fmt.Sprintf("Could not find port %s referenced by remap state %s within %s",
				p.PortRef, s.Name, context))
		}
		if !v.validExpr(p.Value) {
			errs = append(errs, fmt.Sprintf("Invalid value set for remap port %s in remap state %s within %s",
				p.PortRef, s.Name, context))
		}
	}
	return errs
}

// ResetTypeValidator validates user defined reset types.
type ResetTypeValidator struct{}

// NewResetTypeValidator returns a reset type validator.
func NewResetTypeValidator() *ResetTypeValidator { return &ResetTypeValidator{} }

// Validate reports whether r is valid. The predefined HARD type may not be redeclared.
func (v *ResetTypeValidator) Validate(r *model.ResetType) bool {
	return validName(r.Name) && r.Name != hardReset
}

// FindErrorsIn appends the defects of r.
func (v *ResetTypeValidator) FindErrorsIn(errs []string, r *model.ResetType, context string) []string {
	if !v.Validate(r) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for reset type %s within %s", r.Name, context))
	}
	return errs
}

// PowerDomainValidator validates the power domains of a component.
type PowerDomainValidator struct {
	checker
	component *model.Component
	params    *ParameterValidator
}

// NewPowerDomainValidator returns a validator resolving parent domains in c.
func NewPowerDomainValidator(eval *expression.Evaluator, c *model.Component, rules *revision.Rules) *PowerDomainValidator {
	return &PowerDomainValidator{
		checker:   checker{eval: eval},
		component: c,
		params:    NewParameterValidator(eval, c.Choices, rules),
	}
}

func (v *PowerDomainValidator) validParent(d *model.PowerDomain) bool {
	return d.SubDomainOf == "" || (d.SubDomainOf != d.Name && v.component.HasPowerDomain(d.SubDomainOf))
}

// Validate reports whether d is valid.
func (v *PowerDomainValidator) Validate(d *model.PowerDomain) bool {
	return validName(d.Name) &&
		v.presence(d.AlwaysOn) &&
		v.validParent(d) &&
		v.params.ValidateList(d.Parameters)
}

// FindErrorsIn appends the defects of d.
func (v *PowerDomainValidator) FindErrorsIn(errs []string, d *model.PowerDomain, context string) []string {
	if !validName(d.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for power domain %s within %s", d.Name, context))
	}
	if !v.presence(d.AlwaysOn) {
		errs = append(errs, fmt.Sprintf("Always on expression %s in power domain %s within %s must evaluate to 0 or 1",
			d.AlwaysOn, d.Name, context))
	}
	if !v.validParent(d) {
		errs = append(errs, fmt.Sprintf("Could not find power domain %s referenced by power domain %s within %s",
			d.SubDomainOf, d.Name, context))
	}
	return v.params.FindErrorsInList(errs, d.Parameters, within("power domain", d.Name, context))
}
