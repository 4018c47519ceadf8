package validator

import (
	"fmt"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

// BusDefinitionValidator validates bus definition documents.
type BusDefinitionValidator struct {
	checker
	library *model.Library
	params  *ParameterValidator
}

// NewBusDefinitionValidator returns a validator resolving extended bus
// definitions in lib. A nil lib skips the lookup.
func NewBusDefinitionValidator(eval *expression.Evaluator, lib *model.Library, rules *revision.Rules) *BusDefinitionValidator {
	return &BusDefinitionValidator{
		checker: checker{eval: eval},
		library: lib,
		params:  NewParameterValidator(eval, nil, rules),
	}
}

// validExtends accepts no parent or a valid parent other than the
// definition itself that the library knows of.
func validExtends(lib *model.Library, self model.VLNV, extends *model.VLNV, found func(model.VLNV) bool) bool {
	if extends == nil {
		return true
	}
	if !extends.Valid() || *extends == self {
		return false
	}
	return lib == nil || found(*extends)
}

func (v *BusDefinitionValidator) validExtends(b *model.BusDefinition) bool {
	return validExtends(v.library, b.VLNV, b.Extends, func(id model.VLNV) bool {
		return v.library.BusDefinition(id) != nil
	})
}

func validGroupNames(names []string) bool {
	for _, n := range names {
		if model.IsBlank(n) {
			return false
		}
	}
	return NamesUnique(names)
}

// Validate reports whether b is valid.
func (v *BusDefinitionValidator) Validate(b *model.BusDefinition) bool {
	return b.VLNV.Valid() &&
		v.optionalNonNegative(b.MaxInitiators) &&
		v.optionalNonNegative(b.MaxTargets) &&
		v.validExtends(b) &&
		validGroupNames(b.SystemGroupNames) &&
		v.params.ValidateList(b.Parameters)
}

// FindErrorsIn appends the defects of b.
func (v *BusDefinitionValidator) FindErrorsIn(errs []string, b *model.BusDefinition, context string) []string {
	if !b.VLNV.Valid() {
		errs = append(errs, fmt.Sprintf("The type of the vlnv is invalid within %s", context))
	}
	if !v.optionalNonNegative(b.MaxInitiators) {
		errs = append(errs, fmt.Sprintf("Invalid maximum initiators %s set within %s", b.MaxInitiators, context))
	}
	if !v.optionalNonNegative(b.MaxTargets) {
		errs = append(errs, fmt.Sprintf("Invalid maximum targets %s set within %s", b.MaxTargets, context))
	}
	if !v.validExtends(b) {
		errs = append(errs, fmt.Sprintf("Invalid extended bus definition %s set within %s", b.Extends, context))
	}
	for _, n := range b.SystemGroupNames {
		if model.IsBlank(n) {
			errs = append(errs, fmt.Sprintf("Empty system group name set within %s", context))
		}
	}
	errs = FindErrorsInNames(errs, "System group", b.SystemGroupNames, context)
	return v.params.FindErrorsInList(errs, b.Parameters, context)
}

// AbstractionDefinitionValidator validates abstraction definition documents.
type AbstractionDefinitionValidator struct {
	checker
	rules      *revision.Rules
	library    *model.Library
	qualifiers *QualifierValidator
	params     *ParameterValidator
}

// NewAbstractionDefinitionValidator returns a validator resolving bus types
// in lib. A nil lib skips the lookup.
func NewAbstractionDefinitionValidator(eval *expression.Evaluator, lib *model.Library,
	rules *revision.Rules) *AbstractionDefinitionValidator {
	return &AbstractionDefinitionValidator{
		checker:    checker{eval: eval},
		rules:      rules,
		library:    lib,
		qualifiers: NewQualifierValidator(rules),
		params:     NewParameterValidator(eval, nil, rules),
	}
}

func (v *AbstractionDefinitionValidator) busTypeFound(a *model.AbstractionDefinition) bool {
	return v.library == nil || v.library.BusDefinition(a.BusType) != nil
}

func (v *AbstractionDefinitionValidator) validExtends(a *model.AbstractionDefinition) bool {
	return validExtends(v.library, a.VLNV, a.Extends, func(id model.VLNV) bool {
		return v.library.AbstractionDefinition(id) != nil
	})
}

func logicalNames(ports []model.PortAbstraction) []string {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.LogicalName
	}
	return names
}

func (v *AbstractionDefinitionValidator) validInitiative(s string) bool {
	return s == "" || v.rules.InitiativeAllowed(s)
}

// ValidatePort reports whether p is valid.
func (v *AbstractionDefinitionValidator) ValidatePort(p *model.PortAbstraction) bool {
	if !validName(p.LogicalName) || !v.presence(p.IsPresent) || (p.Wire == nil) == (p.Transactional == nil) {
		return false
	}
	if p.Qualifier != nil && !v.qualifiers.Validate(p.Qualifier) {
		return false
	}
	if w := p.Wire; w != nil {
		return v.optionalPositive(w.Width) && v.optionalExpr(w.DefaultValue)
	}
	return v.validInitiative(p.Transactional.Initiative) && v.optionalPositive(p.Transactional.BusWidth)
}

// FindErrorsInPort appends the defects of p.
func (v *AbstractionDefinitionValidator) FindErrorsInPort(errs []string, p *model.PortAbstraction, context string) []string {
	name := p.LogicalName
	if !validName(name) {
		errs = append(errs, fmt.Sprintf("Invalid logical name specified for port %s within %s", name, context))
	}
	if !v.presence(p.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for port %s within %s", name, context))
	}
	if (p.Wire == nil) == (p.Transactional == nil) {
		errs = append(errs, fmt.Sprintf("Port %s within %s must be either wire or transactional", name, context))
	}
	if p.Qualifier != nil {
		errs = v.qualifiers.FindErrorsIn(errs, p.Qualifier, within("port", name, context))
	}
	if w := p.Wire; w != nil {
		if !v.optionalPositive(w.Width) {
			errs = append(errs, fmt.Sprintf("Invalid width set for port %s within %s", name, context))
		}
		if !v.optionalExpr(w.DefaultValue) {
			errs = append(errs, fmt.Sprintf("Invalid default value set for port %s within %s", name, context))
		}
	}
	if t := p.Transactional; t != nil {
		if !v.validInitiative(t.Initiative) {
			errs = append(errs, fmt.Sprintf("Invalid initiative %s set for port %s within %s", t.Initiative, name, context))
		}
		if !v.optionalPositive(t.BusWidth) {
			errs = append(errs, fmt.Sprintf("Invalid bus width set for port %s within %s", name, context))
		}
	}
	return errs
}

// Validate reports whether a is valid.
func (v *AbstractionDefinitionValidator) Validate(a *model.AbstractionDefinition) bool {
	if !a.VLNV.Valid() || !a.BusType.Valid() || !v.busTypeFound(a) || !v.validExtends(a) {
		return false
	}
	if len(a.Ports) == 0 || !NamesUnique(logicalNames(a.Ports)) {
		return false
	}
	for i := range a.Ports {
		if !v.ValidatePort(&a.Ports[i]) {
			return false
		}
	}
	return v.params.ValidateList(a.Parameters)
}

// FindErrorsIn appends the defects of a.
func (v *AbstractionDefinitionValidator) FindErrorsIn(errs []string, a *model.AbstractionDefinition, context string) []string {
	if !a.VLNV.Valid() {
		errs = append(errs, fmt.Sprintf("The type of the vlnv is invalid within %s", context))
	}
	switch {
	case !a.BusType.Valid():
		errs = append(errs, fmt.Sprintf("Invalid bus type set within %s", context))
	case !v.busTypeFound(a):
		errs = append(errs, fmt.Sprintf("Could not find bus definition %s referenced within %s", a.BusType, context))
	}
	if !v.validExtends(a) {
		errs = append(errs, fmt.Sprintf("Invalid extended abstraction definition %s set within %s", a.Extends, context))
	}
	if len(a.Ports) == 0 {
		errs = append(errs, fmt.Sprintf("No ports found within %s", context))
	}
	for i := range a.Ports {
		errs = v.FindErrorsInPort(errs, &a.Ports[i], context)
	}
	errs = FindErrorsInNames(errs, "Logical port", logicalNames(a.Ports), context)
	return v.params.FindErrorsInList(errs, a.Parameters, context)
}
