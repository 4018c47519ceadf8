package validator

import (
	"fmt"

	"ipxcheck/internal/model"
)

// ComponentInstantiationValidator validates the HDL instantiations of a component.
type ComponentInstantiationValidator struct {
	component *model.Component
	params    *ParameterValidator
	modules   *ModuleParameterValidator
}

// NewComponentInstantiationValidator returns a validator resolving file set
// references in c.
func NewComponentInstantiationValidator(c *model.Component, params *ParameterValidator) *ComponentInstantiationValidator {
	return &ComponentInstantiationValidator{
		component: c,
		params:    params,
		modules:   NewModuleParameterValidator(params),
	}
}

func (v *ComponentInstantiationValidator) unknownFileSets(inst *model.ComponentInstantiation) []string {
	var unknown []string
	for _, ref := range inst.FileSetRefs {
		if !v.component.HasFileSet(ref) {
			unknown = append(unknown, ref)
		}
	}
	return unknown
}

func moduleParameterNames(params []model.ModuleParameter) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

// Validate reports whether inst is valid.
func (v *ComponentInstantiationValidator) Validate(inst *model.ComponentInstantiation) bool {
	if !validName(inst.Name) || len(v.unknownFileSets(inst)) > 0 {
		return false
	}
	for i := range inst.ModuleParameters {
		if !v.modules.Validate(&inst.ModuleParameters[i]) {
			return false
		}
	}
	return NamesUnique(moduleParameterNames(inst.ModuleParameters)) && v.params.ValidateList(inst.Parameters)
}

// FindErrorsIn appends the defects of inst.
func (v *ComponentInstantiationValidator) FindErrorsIn(errs []string, inst *model.ComponentInstantiation, context string) []string {
	if !validName(inst.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name set for component instantiation %s within %s", inst.Name, context))
	}
	for _, ref := range v.unknownFileSets(inst) {
		errs = append(errs, fmt.Sprintf("Could not find file set %s referenced by the component instantiation %s within %s",
			ref, inst.Name, context))
	}
	inner := within("component instantiation", inst.Name, context)
	for i := range inst.ModuleParameters {
		errs = v.modules.FindErrorsIn(errs, &inst.ModuleParameters[i], inner)
	}
	errs = FindErrorsInNames(errs, "Module parameter", moduleParameterNames(inst.ModuleParameters), inner)
	return v.params.FindErrorsInList(errs, inst.Parameters, inner)
}

// DesignInstantiationValidator validates references from hierarchical views
// to designs. A nil library skips the lookup.
type DesignInstantiationValidator struct {
	library *model.Library
}

// NewDesignInstantiationValidator returns a validator looking up designs in lib.
func NewDesignInstantiationValidator(lib *model.Library) *DesignInstantiationValidator {
	return &DesignInstantiationValidator{library: lib}
}

func (v *DesignInstantiationValidator) found(ref model.VLNV) bool {
	return v.library == nil || v.library.Design(ref) != nil
}

// Validate reports whether inst is valid.
func (v *DesignInstantiationValidator) Validate(inst *model.DesignInstantiation) bool {
	return validName(inst.Name) && inst.DesignRef.Valid() && v.found(inst.DesignRef.VLNV)
}

// FindErrorsIn appends the defects of inst.
func (v *DesignInstantiationValidator) FindErrorsIn(errs []string, inst *model.DesignInstantiation, context string) []string {
	if !validName(inst.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name set for design instantiation %s within %s", inst.Name, context))
	}
	switch {
	case !inst.DesignRef.Valid():
		errs = append(errs, fmt.Sprintf("Invalid design reference set for design instantiation %s within %s",
			inst.Name, context))
	case !v.found(inst.DesignRef.VLNV):
		errs = append(errs, fmt.Sprintf("Could not find design %s referenced by design instantiation %s within %s",
			inst.DesignRef.VLNV, inst.Name, context))
	}
	return errs
}

// DesignConfigurationInstantiationValidator validates references from
// hierarchical views to design configurations. A nil library skips the lookup.
type DesignConfigurationInstantiationValidator struct {
	library *model.Library
	params  *ParameterValidator
}

// NewDesignConfigurationInstantiationValidator returns a validator looking
// up design configurations in lib.
func NewDesignConfigurationInstantiationValidator(lib *model.Library,
	params *ParameterValidator) *DesignConfigurationInstantiationValidator {
	return &DesignConfigurationInstantiationValidator{library: lib, params: params}
}

func (v *DesignConfigurationInstantiationValidator) found(ref model.VLNV) bool {
	return v.library == nil || v.library.DesignConfiguration(ref) != nil
}

// Validate reports whether inst is valid.
func (v *DesignConfigurationInstantiationValidator) Validate(inst *model.DesignConfigurationInstantiation) bool {
	return validName(inst.Name) &&
		inst.DesignConfigurationRef.Valid() &&
		v.found(inst.DesignConfigurationRef.VLNV) &&
		v.params.ValidateList(inst.Parameters)
}

// FindErrorsIn appends the defects of inst.
func (v *DesignConfigurationInstantiationValidator) FindErrorsIn(errs []string,
	inst *model.DesignConfigurationInstantiation, context string) []string {
	if !validName(inst.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name set for design configuration instantiation %s within %s",
			inst.Name, context))
	}
	switch {
	case !inst.DesignConfigurationRef.Valid():
		errs = append(errs, fmt.Sprintf("Invalid design configuration reference set for design configuration instantiation %s within %s",
			inst.Name, context))
	case !v.found(inst.DesignConfigurationRef.VLNV):
		errs = append(errs, fmt.Sprintf("Could not find design configuration %s referenced by design configuration instantiation %s within %s",
			inst.DesignConfigurationRef.VLNV, inst.Name, context))
	}
	return v.params.FindErrorsInList(errs, inst.Parameters, within("design configuration instantiation", inst.Name, context))
}
