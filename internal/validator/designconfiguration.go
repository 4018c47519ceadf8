package validator

import (
	"fmt"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

// HWViewConfigurationValidator validates view configurations of hardware
// component instances.
type HWViewConfigurationValidator struct {
	checker
	library *model.Library
	design  *model.Design
}

// NewHWViewConfigurationValidator returns a validator for the hardware
// instances of design.
func NewHWViewConfigurationValidator(eval *expression.Evaluator, lib *model.Library,
	design *model.Design) *HWViewConfigurationValidator {
	return &HWViewConfigurationValidator{checker: checker{eval: eval}, library: lib, design: design}
}

// viewFound reports whether the view exists in the component of the
// instance. Unknown components are not checked.
func (v *HWViewConfigurationValidator) viewFound(vc *model.ViewConfiguration) bool {
	inst := v.design.FindComponentInstance(vc.InstanceName)
	if inst == nil {
		return false
	}
	c := v.library.Component(inst.ComponentRef.VLNV)
	return c == nil || c.Model.FindView(vc.ViewRef) != nil
}

// Validate reports whether vc is valid.
func (v *HWViewConfigurationValidator) Validate(vc *model.ViewConfiguration) bool {
	return validName(vc.InstanceName) &&
		v.presence(vc.IsPresent) &&
		validName(vc.ViewRef) &&
		v.viewFound(vc) &&
		len(emptyElementValues(vc.ConfigurableElementValues)) == 0
}

// FindErrorsIn appends the defects of vc.
func (v *HWViewConfigurationValidator) FindErrorsIn(errs []string, vc *model.ViewConfiguration, context string) []string {
	if !validName(vc.InstanceName) {
		errs = append(errs, fmt.Sprintf("Invalid instance name %s set for view configuration within %s",
			vc.InstanceName, context))
	}
	if !v.presence(vc.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for view configuration %s within %s", vc.InstanceName, context))
	}
	switch {
	case !validName(vc.ViewRef):
		errs = append(errs, fmt.Sprintf("No view set for view configuration %s within %s", vc.InstanceName, context))
	case !v.viewFound(vc):
		errs = append(errs, fmt.Sprintf("Could not find view %s referenced by view configuration %s within %s",
			vc.ViewRef, vc.InstanceName, context))
	}
	for _, id := range emptyElementValues(vc.ConfigurableElementValues) {
		errs = append(errs, fmt.Sprintf("Configurable element value %s in view configuration %s within %s is incomplete",
			id, vc.InstanceName, context))
	}
	return errs
}

// SWViewConfigurationValidator validates view configurations of software
// instances against the software views of their components.
type SWViewConfigurationValidator struct {
	library *model.Library
	design  *model.Design
}

// NewSWViewConfigurationValidator returns a validator for the software
// instances of design.
func NewSWViewConfigurationValidator(lib *model.Library, design *model.Design) *SWViewConfigurationValidator {
	return &SWViewConfigurationValidator{library: lib, design: design}
}

func (v *SWViewConfigurationValidator) viewFound(vc *model.ViewConfiguration) bool {
	inst := v.design.FindSWInstance(vc.InstanceName)
	if inst == nil {
		return false
	}
	c := v.library.Component(inst.ComponentRef)
	return c == nil || c.HasSWView(vc.ViewRef)
}

// Validate reports whether vc is valid.
func (v *SWViewConfigurationValidator) Validate(vc *model.ViewConfiguration) bool {
	return validName(vc.InstanceName) && validName(vc.ViewRef) && v.viewFound(vc)
}

// FindErrorsIn appends the defects of vc.
func (v *SWViewConfigurationValidator) FindErrorsIn(errs []string, vc *model.ViewConfiguration, context string) []string {
	if !validName(vc.InstanceName) {
		errs = append(errs, fmt.Sprintf("Invalid instance name %s set for view configuration within %s",
			vc.InstanceName, context))
	}
	switch {
	case !validName(vc.ViewRef):
		errs = append(errs, fmt.Sprintf("No view set for view configuration %s within %s", vc.InstanceName, context))
	case !v.viewFound(vc):
		errs = append(errs, fmt.Sprintf("Could not find software view %s referenced by view configuration %s within %s",
			vc.ViewRef, vc.InstanceName, context))
	}
	return errs
}

// SystemDesignConfigurationValidator validates design configurations,
// dispatching each view configuration to the hardware or software
// validator depending on which kind of instance it configures.
//
// A nil library skips the checks that need the referenced design.
type SystemDesignConfigurationValidator struct {
	checker
	library *model.Library
	params  *ParameterValidator
}

// NewSystemDesignConfigurationValidator returns a validator resolving
// designs and generator chains in lib.
func NewSystemDesignConfigurationValidator(eval *expression.Evaluator, lib *model.Library,
	rules *revision.Rules) *SystemDesignConfigurationValidator {
	return &SystemDesignConfigurationValidator{
		checker: checker{eval: eval},
		library: lib,
		params:  NewParameterValidator(eval, nil, rules),
	}
}

func (v *SystemDesignConfigurationValidator) design(dc *model.DesignConfiguration) *model.Design {
	return v.library.Design(dc.DesignRef)
}

func (v *SystemDesignConfigurationValidator) designFound(dc *model.DesignConfiguration) bool {
	return v.library == nil || v.design(dc) != nil
}

func (v *SystemDesignConfigurationValidator) chainFound(ref model.VLNV) bool {
	return v.library == nil || v.library.GeneratorChain(ref) != nil
}

func generatorChainKeys(dc *model.DesignConfiguration) []string {
	keys := make([]string, len(dc.GeneratorChainConfigurations))
	for i, ref := range dc.GeneratorChainConfigurations {
		keys[i] = ref.VLNV.String()
	}
	return keys
}

func interconnectionRefs(dc *model.DesignConfiguration) []string {
	refs := make([]string, len(dc.InterconnectionConfigurations))
	for i, ic := range dc.InterconnectionConfigurations {
		refs[i] = ic.InterconnectionRef
	}
	return refs
}

func viewConfigurationNames(dc *model.DesignConfiguration) []string {
	names := make([]string, len(dc.ViewConfigurations))
	for i, vc := range dc.ViewConfigurations {
		names[i] = vc.InstanceName
	}
	return names
}

// viewConfigurations returns the validator for vc, or nil when the
// instance belongs to neither instance set of design.
func (v *SystemDesignConfigurationValidator) viewConfigurations(design *model.Design,
	vc *model.ViewConfiguration) Validator[*model.ViewConfiguration] {
	switch {
	case design.FindComponentInstance(vc.InstanceName) != nil:
		return NewHWViewConfigurationValidator(v.eval, v.library, design)
	case design.FindSWInstance(vc.InstanceName) != nil:
		return NewSWViewConfigurationValidator(v.library, design)
	}
	return nil
}

// Validate reports whether dc is valid.
func (v *SystemDesignConfigurationValidator) Validate(dc *model.DesignConfiguration) bool {
	if !dc.VLNV.Valid() || !dc.DesignRef.Valid() || !v.designFound(dc) {
		return false
	}
	for _, ref := range dc.GeneratorChainConfigurations {
		if !ref.Valid() || !v.chainFound(ref.VLNV) {
			return false
		}
	}
	if !NamesUnique(generatorChainKeys(dc)) || !NamesUnique(interconnectionRefs(dc)) ||
		!NamesUnique(viewConfigurationNames(dc)) {
		return false
	}
	if design := v.design(dc); design != nil {
		interconnections := NewInterconnectionConfigurationValidator(v.eval, v.library, design)
		for i := range dc.InterconnectionConfigurations {
			if !interconnections.Validate(&dc.InterconnectionConfigurations[i]) {
				return false
			}
		}
		for i := range dc.ViewConfigurations {
			vc := &dc.ViewConfigurations[i]
			val := v.viewConfigurations(design, vc)
			if val == nil || !val.Validate(vc) {
				return false
			}
		}
	}
	return v.params.ValidateList(dc.Parameters)
}

// FindErrorsIn appends the defects of dc.
func (v *SystemDesignConfigurationValidator) FindErrorsIn(errs []string, dc *model.DesignConfiguration, context string) []string {
	if !dc.VLNV.Valid() {
		errs = append(errs, fmt.Sprintf("The type of the vlnv is invalid within %s", context))
	}
	switch {
	case !dc.DesignRef.Valid():
		errs = append(errs, fmt.Sprintf("Invalid design reference set within %s", context))
	case !v.designFound(dc):
		errs = append(errs, fmt.Sprintf("Could not find design %s referenced within %s", dc.DesignRef, context))
	}
	for _, ref := range dc.GeneratorChainConfigurations {
		switch {
		case !ref.Valid():
			errs = append(errs, fmt.Sprintf("Invalid generator chain configuration reference set within %s", context))
		case !v.chainFound(ref.VLNV):
			errs = append(errs, fmt.Sprintf("Could not find generator chain %s referenced within %s", ref.VLNV, context))
		}
	}
	for _, key := range Duplicates(generatorChainKeys(dc)) {
		errs = append(errs, fmt.Sprintf("Generator chain configuration %s is not unique within %s", key, context))
	}
	for _, ref := range Duplicates(interconnectionRefs(dc)) {
		errs = append(errs, fmt.Sprintf("Interconnection %s is configured more than once within %s", ref, context))
	}
	errs = FindErrorsInNames(errs, "View configuration instance", viewConfigurationNames(dc), context)
	if design := v.design(dc); design != nil {
		interconnections := NewInterconnectionConfigurationValidator(v.eval, v.library, design)
		for i := range dc.InterconnectionConfigurations {
			errs = interconnections.FindErrorsIn(errs, &dc.InterconnectionConfigurations[i], context)
		}
		for i := range dc.ViewConfigurations {
			vc := &dc.ViewConfigurations[i]
			val := v.viewConfigurations(design, vc)
			if val == nil {
				errs = append(errs, fmt.Sprintf("Could not find instance %s in design %s referenced by view configuration within %s",
					vc.InstanceName, dc.DesignRef, context))
				continue
			}
			errs = val.FindErrorsIn(errs, vc, context)
		}
	}
	return v.params.FindErrorsInList(errs, dc.Parameters, context)
}
