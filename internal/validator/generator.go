package validator

import (
	"fmt"
	"slices"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

var (
	apiTypes = []string{
		"", "TGI_2009", "TGI_2014_BASE", "TGI_2014_EXTENDED", "TGI_2022_BASE", "TGI_2022_EXTENDED", "none",
	}
	generatorScopes = []string{"", "instance", "entity"}
)

// GeneratorValidator validates generators of components and generator chains.
type GeneratorValidator struct {
	checker
	params *ParameterValidator
}

// NewGeneratorValidator returns a generator validator. Generator parameters
// may not reference choices.
func NewGeneratorValidator(eval *expression.Evaluator, rules *revision.Rules) *GeneratorValidator {
	return &GeneratorValidator{
		checker: checker{eval: eval},
		params:  NewParameterValidator(eval, nil, rules),
	}
}

// Validate reports whether g is valid.
func (v *GeneratorValidator) Validate(g *model.Generator) bool {
	return validName(g.Name) &&
		v.validPhase(g.Phase) &&
		slices.Contains(apiTypes, g.APIType) &&
		validTransportMethods(g.TransportMethods) &&
		!model.IsBlank(g.GeneratorExe) &&
		v.params.ValidateList(g.Parameters)
}

// FindErrorsIn appends the defects of g.
func (v *GeneratorValidator) FindErrorsIn(errs []string, g *model.Generator, context string) []string {
	if !validName(g.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for generator %s within %s", g.Name, context))
	}
	if !v.validPhase(g.Phase) {
		errs = append(errs, fmt.Sprintf("Invalid phase value set for generator %s within %s", g.Name, context))
	}
	if !slices.Contains(apiTypes, g.APIType) {
		errs = append(errs, fmt.Sprintf("Invalid API type %s set for generator %s within %s", g.APIType, g.Name, context))
	}
	if !validTransportMethods(g.TransportMethods) {
		errs = append(errs, fmt.Sprintf("Invalid transport methods set for generator %s within %s", g.Name, context))
	}
	if model.IsBlank(g.GeneratorExe) {
		errs = append(errs, fmt.Sprintf("Invalid generator exe set for generator %s within %s", g.Name, context))
	}
	return v.params.FindErrorsInList(errs, g.Parameters, within("generator", g.Name, context))
}

// validPhase accepts an unset phase or any real valued expression.
func (v *GeneratorValidator) validPhase(phase string) bool {
	if phase == "" {
		return true
	}
	_, ok := v.decimal(phase)
	return ok
}

func validTransportMethods(methods []string) bool {
	for _, m := range methods {
		if m != "file" {
			return false
		}
	}
	return true
}

// ComponentGeneratorValidator validates generators attached to a component.
type ComponentGeneratorValidator struct {
	*GeneratorValidator
}

// NewComponentGeneratorValidator returns a component generator validator.
func NewComponentGeneratorValidator(eval *expression.Evaluator, rules *revision.Rules) *ComponentGeneratorValidator {
	return &ComponentGeneratorValidator{GeneratorValidator: NewGeneratorValidator(eval, rules)}
}

// Validate reports whether g is valid.
func (v *ComponentGeneratorValidator) Validate(g *model.ComponentGenerator) bool {
	return v.GeneratorValidator.Validate(&g.Generator) && slices.Contains(generatorScopes, g.Scope)
}

// FindErrorsIn appends the defects of g.
func (v *ComponentGeneratorValidator) FindErrorsIn(errs []string, g *model.ComponentGenerator, context string) []string {
	errs = v.GeneratorValidator.FindErrorsIn(errs, &g.Generator, context)
	if !slices.Contains(generatorScopes, g.Scope) {
		errs = append(errs, fmt.Sprintf("Invalid scope %s set for component generator %s within %s", g.Scope, g.Name, context))
	}
	return errs
}
