package validator

import (
	"fmt"
	"regexp"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/model"
)

// envIdentifier is language:tool:vendor, each part possibly empty.
var envIdentifier = regexp.MustCompile(`^[A-Za-z0-9_+*.]*:[A-Za-z0-9_+*.]*:[A-Za-z0-9_+*.]*$`)

// ViewValidator validates the views of a component model.
type ViewValidator struct {
	checker
	model *model.Model
}

// NewViewValidator returns a validator resolving instantiation references in m.
func NewViewValidator(eval *expression.Evaluator, m *model.Model) *ViewValidator {
	return &ViewValidator{checker: checker{eval: eval}, model: m}
}

// Validate reports whether view is valid.
func (v *ViewValidator) Validate(view *model.View) bool {
	return validName(view.Name) &&
		v.presence(view.IsPresent) &&
		len(badEnvIdentifiers(view)) == 0 &&
		v.hasValidComponentInstantiationRef(view) &&
		v.hasValidDesignInstantiationRef(view) &&
		v.hasValidDesignConfigurationInstantiationRef(view)
}

// FindErrorsIn appends the defects of view.
func (v *ViewValidator) FindErrorsIn(errs []string, view *model.View, context string) []string {
	if !validName(view.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for view %s within %s", view.Name, context))
	}
	if !v.presence(view.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for view %s within %s", view.Name, context))
	}
	for _, id := range badEnvIdentifiers(view) {
		errs = append(errs, fmt.Sprintf("Invalid environment identifier %s set for view %s within %s", id, view.Name, context))
	}
	if !v.hasValidComponentInstantiationRef(view) {
		errs = append(errs, fmt.Sprintf("Component instantiation %s referenced by view %s within %s was not found",
			view.ComponentInstantiationRef, view.Name, context))
	}
	if !v.hasValidDesignInstantiationRef(view) {
		errs = append(errs, fmt.Sprintf("Design instantiation %s referenced by view %s within %s was not found",
			view.DesignInstantiationRef, view.Name, context))
	}
	if !v.hasValidDesignConfigurationInstantiationRef(view) {
		errs = append(errs, fmt.Sprintf("Design configuration instantiation %s referenced by view %s within %s was not found",
			view.DesignConfigurationInstantiationRef, view.Name, context))
	}
	return errs
}

func badEnvIdentifiers(view *model.View) []string {
	var bad []string
	for _, id := range view.EnvIdentifiers {
		if !envIdentifier.MatchString(id) {
			bad = append(bad, id)
		}
	}
	return bad
}

func (v *ViewValidator) hasValidComponentInstantiationRef(view *model.View) bool {
	return view.ComponentInstantiationRef == "" || v.model.FindComponentInstantiation(view.ComponentInstantiationRef) != nil
}

func (v *ViewValidator) hasValidDesignInstantiationRef(view *model.View) bool {
	return view.DesignInstantiationRef == "" || v.model.HasDesignInstantiation(view.DesignInstantiationRef)
}

func (v *ViewValidator) hasValidDesignConfigurationInstantiationRef(view *model.View) bool {
	return view.DesignConfigurationInstantiationRef == "" ||
		v.model.HasDesignConfigurationInstantiation(view.DesignConfigurationInstantiationRef)
}
