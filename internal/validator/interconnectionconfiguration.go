package validator

import (
	"fmt"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/model"
)

// InterconnectionConfigurationValidator validates the abstractors a design
// configuration places on the interconnections of its design.
type InterconnectionConfigurationValidator struct {
	checker
	library *model.Library
	design  *model.Design
}

// NewInterconnectionConfigurationValidator returns a validator resolving
// interconnections and interfaces in design.
func NewInterconnectionConfigurationValidator(eval *expression.Evaluator, lib *model.Library,
	design *model.Design) *InterconnectionConfigurationValidator {
	return &InterconnectionConfigurationValidator{checker: checker{eval: eval}, library: lib, design: design}
}

func abstractorInstanceNames(ic *model.InterconnectionConfiguration) []string {
	var names []string
	for _, g := range ic.AbstractorGroups {
		for _, a := range g.Abstractors {
			names = append(names, a.InstanceName)
		}
	}
	return names
}

func validAbstractorInstance(a *model.AbstractorInstance) bool {
	return validName(a.InstanceName) && a.AbstractorRef.Valid() && validName(a.ViewName)
}

func (v *InterconnectionConfigurationValidator) validGroup(g *model.AbstractorGroup) bool {
	if !v.presence(g.IsPresent) || len(g.Abstractors) == 0 {
		return false
	}
	for _, ref := range g.InterfaceRefs {
		if !interfaceFound(v.library, v.design, ref) {
			return false
		}
	}
	for i := range g.Abstractors {
		if !validAbstractorInstance(&g.Abstractors[i]) {
			return false
		}
	}
	return true
}

func (v *InterconnectionConfigurationValidator) findErrorsInGroup(errs []string, g *model.AbstractorGroup,
	context string) []string {
	if !v.presence(g.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for abstractor instance group within %s", context))
	}
	for _, ref := range g.InterfaceRefs {
		switch {
		case v.design.FindComponentInstance(ref.ComponentRef) == nil:
			errs = append(errs, fmt.Sprintf("Invalid component instance reference %s set for abstractor instance group within %s",
				ref.ComponentRef, context))
		case !interfaceFound(v.library, v.design, ref):
			errs = append(errs, fmt.Sprintf("Invalid bus interface reference %s set for abstractor instance group within %s",
				ref.BusRef, context))
		}
	}
	if len(g.Abstractors) == 0 {
		errs = append(errs, fmt.Sprintf("No abstractor instances found in abstractor instance group within %s", context))
	}
	for i := range g.Abstractors {
		a := &g.Abstractors[i]
		if !validName(a.InstanceName) {
			errs = append(errs, fmt.Sprintf("Invalid instance name %s set for abstractor instance within %s",
				a.InstanceName, context))
		}
		if !a.AbstractorRef.Valid() {
			errs = append(errs, fmt.Sprintf("Invalid abstractor reference set for abstractor instance %s within %s",
				a.InstanceName, context))
		}
		if !validName(a.ViewName) {
			errs = append(errs, fmt.Sprintf("Invalid view name %s set for abstractor instance %s within %s",
				a.ViewName, a.InstanceName, context))
		}
	}
	return errs
}

// Validate reports whether ic is valid.
func (v *InterconnectionConfigurationValidator) Validate(ic *model.InterconnectionConfiguration) bool {
	if !v.presence(ic.IsPresent) || v.design.FindInterconnection(ic.InterconnectionRef) == nil ||
		len(ic.AbstractorGroups) == 0 || !NamesUnique(abstractorInstanceNames(ic)) {
		return false
	}
	for i := range ic.AbstractorGroups {
		if !v.validGroup(&ic.AbstractorGroups[i]) {
			return false
		}
	}
	return true
}

// FindErrorsIn appends the defects of ic.
func (v *InterconnectionConfigurationValidator) FindErrorsIn(errs []string, ic *model.InterconnectionConfiguration,
	context string) []string {
	if v.design.FindInterconnection(ic.InterconnectionRef) == nil {
		errs = append(errs, fmt.Sprintf("Invalid interconnection reference %s set for interconnection configuration within %s",
			ic.InterconnectionRef, context))
	}
	inner := within("interconnection configuration", ic.InterconnectionRef, context)
	if !v.presence(ic.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for %s", inner))
	}
	if len(ic.AbstractorGroups) == 0 {
		errs = append(errs, fmt.Sprintf("No abstractor instances found in interconnection configuration %s within %s",
			ic.InterconnectionRef, context))
	}
	for i := range ic.AbstractorGroups {
		errs = v.findErrorsInGroup(errs, &ic.AbstractorGroups[i], inner)
	}
	return FindErrorsInNames(errs, "Abstractor instance", abstractorInstanceNames(ic), inner)
}
