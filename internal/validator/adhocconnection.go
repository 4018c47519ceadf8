package validator

import (
	"fmt"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/model"
)

// AdHocConnectionValidator validates the ad hoc connections of one design.
//
// Ports of components missing from the library are not checked.
type AdHocConnectionValidator struct {
	checker
	library *model.Library
	design  *model.Design
}

// NewAdHocConnectionValidator returns a validator resolving internal port
// references against the instances of design.
func NewAdHocConnectionValidator(eval *expression.Evaluator, lib *model.Library,
	design *model.Design) *AdHocConnectionValidator {
	return &AdHocConnectionValidator{checker: checker{eval: eval}, library: lib, design: design}
}

func (v *AdHocConnectionValidator) validTiedValue(value string) bool {
	return value == "" || value == model.TiedDefault || value == model.TiedOpen || v.validExpr(value)
}

func (v *AdHocConnectionValidator) validPartSelect(ps *model.PartSelect) bool {
	if ps == nil {
		return true
	}
	if ps.Range == nil && len(ps.Indices) == 0 {
		return false
	}
	if ps.Range != nil && (!v.nonNegative(ps.Range.Left) || !v.nonNegative(ps.Range.Right)) {
		return false
	}
	for _, idx := range ps.Indices {
		if !v.nonNegative(idx) {
			return false
		}
	}
	return true
}

func (v *AdHocConnectionValidator) findErrorsInPartSelect(errs []string, ps *model.PartSelect, element, context string) []string {
	if ps == nil {
		return errs
	}
	if ps.Range == nil && len(ps.Indices) == 0 {
		errs = append(errs, fmt.Sprintf("No range or index set for part select in %s within %s", element, context))
	}
	if ps.Range != nil {
		if !v.nonNegative(ps.Range.Left) {
			errs = append(errs, fmt.Sprintf("Invalid left value %s set for part select in %s within %s",
				ps.Range.Left, element, context))
		}
		if !v.nonNegative(ps.Range.Right) {
			errs = append(errs, fmt.Sprintf("Invalid right value %s set for part select in %s within %s",
				ps.Range.Right, element, context))
		}
	}
	for _, idx := range ps.Indices {
		if !v.nonNegative(idx) {
			errs = append(errs, fmt.Sprintf("Invalid index %s set for part select in %s within %s", idx, element, context))
		}
	}
	return errs
}

// port returns the port ref points at. found is false when the instance
// is missing from the design or its known component lacks the port; port
// is nil when the component is not in the library.
func (v *AdHocConnectionValidator) port(ref *model.PortReference) (port *model.Port, found bool) {
	inst := v.design.FindComponentInstance(ref.ComponentRef)
	if inst == nil {
		return nil, false
	}
	c := v.library.Component(inst.ComponentRef.VLNV)
	if c == nil {
		return nil, true
	}
	port = c.Model.FindPort(ref.PortRef)
	return port, port != nil
}

func hasDefaultValue(p *model.Port) bool {
	return p == nil || (p.Wire != nil && !model.IsBlank(p.Wire.DefaultValue))
}

func (v *AdHocConnectionValidator) validInternalReference(ref *model.PortReference, tiedValue string) bool {
	if model.IsBlank(ref.ComponentRef) || model.IsBlank(ref.PortRef) {
		return false
	}
	port, found := v.port(ref)
	if !found || (tiedValue == model.TiedDefault && !hasDefaultValue(port)) {
		return false
	}
	return v.presence(ref.IsPresent) && v.validPartSelect(ref.PartSelect)
}

func (v *AdHocConnectionValidator) findErrorsInInternalReference(errs []string, ref *model.PortReference,
	tiedValue, context string) []string {
	switch {
	case model.IsBlank(ref.ComponentRef):
		errs = append(errs, fmt.Sprintf("No component reference set for internal port reference in %s", context))
	case v.design.FindComponentInstance(ref.ComponentRef) == nil:
		errs = append(errs, fmt.Sprintf("Could not find component instance %s referenced by internal port reference in %s",
			ref.ComponentRef, context))
	case model.IsBlank(ref.PortRef):
		errs = append(errs, fmt.Sprintf("No port reference set for internal port reference in %s", context))
	default:
		port, found := v.port(ref)
		switch {
		case !found:
			errs = append(errs, fmt.Sprintf("Could not find port %s of component instance %s referenced by internal port reference in %s",
				ref.PortRef, ref.ComponentRef, context))
		case tiedValue == model.TiedDefault && !hasDefaultValue(port):
			errs = append(errs, fmt.Sprintf("No default value found for port %s referenced by internal port reference in %s",
				ref.PortRef, context))
		}
	}
	if !v.presence(ref.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for internal port reference %s in %s", ref.PortRef, context))
	}
	return v.findErrorsInPartSelect(errs, ref.PartSelect, "internal port reference "+ref.PortRef, context)
}

func (v *AdHocConnectionValidator) validExternalReference(ref *model.PortReference) bool {
	return !model.IsBlank(ref.PortRef) && v.presence(ref.IsPresent) && v.validPartSelect(ref.PartSelect)
}

func (v *AdHocConnectionValidator) findErrorsInExternalReference(errs []string, ref *model.PortReference,
	context string) []string {
	if model.IsBlank(ref.PortRef) {
		errs = append(errs, fmt.Sprintf("No port reference set for external port reference in %s", context))
	}
	if !v.presence(ref.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for external port reference %s in %s", ref.PortRef, context))
	}
	return v.findErrorsInPartSelect(errs, ref.PartSelect, "external port reference "+ref.PortRef, context)
}

func hasPortReferences(c *model.AdHocConnection) bool {
	return len(c.InternalPortReferences)+len(c.ExternalPortReferences) > 0
}

// Validate reports whether c is valid.
func (v *AdHocConnectionValidator) Validate(c *model.AdHocConnection) bool {
	if !validName(c.Name) || !v.presence(c.IsPresent) || !v.validTiedValue(c.TiedValue) || !hasPortReferences(c) {
		return false
	}
	for i := range c.InternalPortReferences {
		if !v.validInternalReference(&c.InternalPortReferences[i], c.TiedValue) {
			return false
		}
	}
	for i := range c.ExternalPortReferences {
		if !v.validExternalReference(&c.ExternalPortReferences[i]) {
			return false
		}
	}
	return true
}

// FindErrorsIn appends the defects of c.
func (v *AdHocConnectionValidator) FindErrorsIn(errs []string, c *model.AdHocConnection, context string) []string {
	if !validName(c.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name %s set for ad hoc connection within %s", c.Name, context))
	}
	if !v.presence(c.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for ad hoc connection %s within %s", c.Name, context))
	}
	if !v.validTiedValue(c.TiedValue) {
		errs = append(errs, fmt.Sprintf("Invalid tied value %s set for ad hoc connection %s within %s",
			c.TiedValue, c.Name, context))
	}
	if !hasPortReferences(c) {
		errs = append(errs, fmt.Sprintf("No port references set for ad hoc connection %s within %s", c.Name, context))
	}
	inner := within("ad hoc connection", c.Name, context)
	for i := range c.InternalPortReferences {
		errs = v.findErrorsInInternalReference(errs, &c.InternalPortReferences[i], c.TiedValue, inner)
	}
	for i := range c.ExternalPortReferences {
		errs = v.findErrorsInExternalReference(errs, &c.ExternalPortReferences[i], inner)
	}
	return errs
}
