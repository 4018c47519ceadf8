package validator

import (
	"fmt"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

// DesignValidator validates design documents.
//
// A nil library skips the checks that need the instantiated components.
type DesignValidator struct {
	checker
	library *model.Library
	params  *ParameterValidator
}

// NewDesignValidator returns a validator resolving component references in lib.
func NewDesignValidator(eval *expression.Evaluator, lib *model.Library, rules *revision.Rules) *DesignValidator {
	return &DesignValidator{
		checker: checker{eval: eval},
		library: lib,
		params:  NewParameterValidator(eval, nil, rules),
	}
}

func instanceNames(d *model.Design) []string {
	names := make([]string, 0, len(d.ComponentInstances)+len(d.SWInstances))
	for _, i := range d.ComponentInstances {
		names = append(names, i.InstanceName)
	}
	for _, i := range d.SWInstances {
		names = append(names, i.InstanceName)
	}
	return names
}

func (v *DesignValidator) componentFound(ref model.VLNV) bool {
	return v.library == nil || v.library.Component(ref) != nil
}

// unknownElements returns the configurable element references that name
// no parameter of the instantiated component.
func (v *DesignValidator) unknownElements(inst *model.ComponentInstance) []string {
	c := v.library.Component(inst.ComponentRef.VLNV)
	if c == nil {
		return nil
	}
	var unknown []string
	for _, cev := range inst.ComponentRef.ConfigurableElementValues {
		found := false
		for i := range c.Parameters {
			if c.Parameters[i].ReferenceID() == cev.ReferenceID {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, cev.ReferenceID)
		}
	}
	return unknown
}

func emptyElementValues(cevs []model.ConfigurableElementValue) []string {
	var ids []string
	for _, cev := range cevs {
		if model.IsBlank(cev.ReferenceID) || model.IsBlank(cev.Value) {
			ids = append(ids, cev.ReferenceID)
		}
	}
	return ids
}

func (v *DesignValidator) validComponentInstance(inst *model.ComponentInstance) bool {
	return validName(inst.InstanceName) &&
		v.presence(inst.IsPresent) &&
		inst.ComponentRef.Valid() &&
		v.componentFound(inst.ComponentRef.VLNV) &&
		len(emptyElementValues(inst.ComponentRef.ConfigurableElementValues)) == 0 &&
		len(v.unknownElements(inst)) == 0
}

func (v *DesignValidator) findErrorsInComponentInstance(errs []string, inst *model.ComponentInstance, context string) []string {
	name := inst.InstanceName
	if !validName(name) {
		errs = append(errs, fmt.Sprintf("Invalid instance name %s set within %s", name, context))
	}
	if !v.presence(inst.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for component instance %s within %s", name, context))
	}
	switch {
	case !inst.ComponentRef.Valid():
		errs = append(errs, fmt.Sprintf("Invalid component reference set for component instance %s within %s", name, context))
	case !v.componentFound(inst.ComponentRef.VLNV):
		errs = append(errs, fmt.Sprintf("Could not find component %s referenced by component instance %s within %s",
			inst.ComponentRef.VLNV, name, context))
	}
	for _, id := range emptyElementValues(inst.ComponentRef.ConfigurableElementValues) {
		errs = append(errs, fmt.Sprintf("Configurable element value %s in component instance %s within %s is incomplete",
			id, name, context))
	}
	for _, id := range v.unknownElements(inst) {
		errs = append(errs, fmt.Sprintf("Could not find parameter %s referenced by configurable element value in component instance %s within %s",
			id, name, context))
	}
	return errs
}

func (v *DesignValidator) validSWInstance(inst *model.SWInstance) bool {
	return validName(inst.InstanceName) && inst.ComponentRef.Valid() && v.componentFound(inst.ComponentRef)
}

func (v *DesignValidator) findErrorsInSWInstance(errs []string, inst *model.SWInstance, context string) []string {
	if !validName(inst.InstanceName) {
		errs = append(errs, fmt.Sprintf("Invalid instance name %s set within %s", inst.InstanceName, context))
	}
	switch {
	case !inst.ComponentRef.Valid():
		errs = append(errs, fmt.Sprintf("Invalid component reference set for software instance %s within %s",
			inst.InstanceName, context))
	case !v.componentFound(inst.ComponentRef):
		errs = append(errs, fmt.Sprintf("Could not find component %s referenced by software instance %s within %s",
			inst.ComponentRef, inst.InstanceName, context))
	}
	return errs
}

// interfaceFound reports whether ref names a component instance of d and,
// when the instantiated component is in lib, one of its bus interfaces.
func interfaceFound(lib *model.Library, d *model.Design, ref model.InterfaceRef) bool {
	inst := d.FindComponentInstance(ref.ComponentRef)
	if inst == nil {
		return false
	}
	c := lib.Component(inst.ComponentRef.VLNV)
	return c == nil || c.FindBusInterface(ref.BusRef) != nil
}

func (v *DesignValidator) interfaceFound(d *model.Design, ref model.InterfaceRef) bool {
	return interfaceFound(v.library, d, ref)
}

func interconnectionNames(d *model.Design) []string {
	names := make([]string, len(d.Interconnections))
	for i, c := range d.Interconnections {
		names[i] = c.Name
	}
	return names
}

func interfaceKeys(ic *model.Interconnection) []string {
	keys := []string{ic.Start.ComponentRef + "." + ic.Start.BusRef}
	for _, end := range ic.Ends {
		keys = append(keys, end.ComponentRef+"."+end.BusRef)
	}
	return keys
}

func (v *DesignValidator) validInterconnection(d *model.Design, ic *model.Interconnection) bool {
	if !validName(ic.Name) || len(ic.Ends) == 0 || !v.interfaceFound(d, ic.Start) {
		return false
	}
	for _, end := range ic.Ends {
		if !v.interfaceFound(d, end) {
			return false
		}
	}
	return NamesUnique(interfaceKeys(ic))
}

func (v *DesignValidator) findErrorsInInterconnection(errs []string, d *model.Design, ic *model.Interconnection,
	context string) []string {
	if !validName(ic.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for interconnection %s within %s", ic.Name, context))
	}
	if len(ic.Ends) == 0 {
		errs = append(errs, fmt.Sprintf("Interconnection %s within %s has no connected interfaces", ic.Name, context))
	}
	for _, ref := range append([]model.InterfaceRef{ic.Start}, ic.Ends...) {
		if !v.interfaceFound(d, ref) {
			errs = append(errs, fmt.Sprintf("Could not find bus interface %s of component instance %s referenced by interconnection %s within %s",
				ref.BusRef, ref.ComponentRef, ic.Name, context))
		}
	}
	for _, key := range Duplicates(interfaceKeys(ic)) {
		errs = append(errs, fmt.Sprintf("Interface %s is connected more than once by interconnection %s within %s",
			key, ic.Name, context))
	}
	return errs
}

func adHocConnectionNames(d *model.Design) []string {
	names := make([]string, len(d.AdHocConnections))
	for i, c := range d.AdHocConnections {
		names[i] = c.Name
	}
	return names
}

// Validate reports whether d is valid.
func (v *DesignValidator) Validate(d *model.Design) bool {
	if !d.VLNV.Valid() || !NamesUnique(instanceNames(d)) || !NamesUnique(interconnectionNames(d)) ||
		!NamesUnique(adHocConnectionNames(d)) {
		return false
	}
	for i := range d.ComponentInstances {
		if !v.validComponentInstance(&d.ComponentInstances[i]) {
			return false
		}
	}
	for i := range d.SWInstances {
		if !v.validSWInstance(&d.SWInstances[i]) {
			return false
		}
	}
	for i := range d.Interconnections {
		if !v.validInterconnection(d, &d.Interconnections[i]) {
			return false
		}
	}
	adHoc := NewAdHocConnectionValidator(v.eval, v.library, d)
	for i := range d.AdHocConnections {
		if !adHoc.Validate(&d.AdHocConnections[i]) {
			return false
		}
	}
	return v.params.ValidateList(d.Parameters)
}

// FindErrorsIn appends the defects of d.
func (v *DesignValidator) FindErrorsIn(errs []string, d *model.Design, context string) []string {
	if !d.VLNV.Valid() {
		errs = append(errs, fmt.Sprintf("The type of the vlnv is invalid within %s", context))
	}
	for i := range d.ComponentInstances {
		errs = v.findErrorsInComponentInstance(errs, &d.ComponentInstances[i], context)
	}
	for i := range d.SWInstances {
		errs = v.findErrorsInSWInstance(errs, &d.SWInstances[i], context)
	}
	errs = FindErrorsInNames(errs, "Instance", instanceNames(d), context)
	for i := range d.Interconnections {
		errs = v.findErrorsInInterconnection(errs, d, &d.Interconnections[i], context)
	}
	errs = FindErrorsInNames(errs, "Interconnection", interconnectionNames(d), context)
	adHoc := NewAdHocConnectionValidator(v.eval, v.library, d)
	for i := range d.AdHocConnections {
		errs = adHoc.FindErrorsIn(errs, &d.AdHocConnections[i], context)
	}
	errs = FindErrorsInNames(errs, "Ad hoc connection", adHocConnectionNames(d), context)
	return v.params.FindErrorsInList(errs, d.Parameters, context)
}
