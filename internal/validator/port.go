package validator

import (
	"fmt"
	"slices"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

var (
	directions         = []string{"in", "out", "inout", "phantom"}
	transactionalKinds = []string{"", "tlm_port", "tlm_socket", "simple_socket", "multi_socket", "custom"}
	protocolTypes      = []string{"tlm", "custom"}
	payloadTypes       = []string{"generic", "specific"}
)

// PortValidator validates the wire and transactional ports of a component.
type PortValidator struct {
	checker
	rules      *revision.Rules
	views      []model.View
	qualifiers *QualifierValidator
}

// NewPortValidator returns a validator resolving type definition view
// references against views.
func NewPortValidator(eval *expression.Evaluator, views []model.View, rules *revision.Rules) *PortValidator {
	return &PortValidator{
		checker:    checker{eval: eval},
		rules:      rules,
		views:      views,
		qualifiers: NewQualifierValidator(rules),
	}
}

// Validate reports whether p is valid.
func (v *PortValidator) Validate(p *model.Port) bool {
	if !validName(p.Name) || !v.presence(p.IsPresent) || !v.validArrays(p.Arrays) {
		return false
	}
	if (p.Wire == nil) == (p.Transactional == nil) {
		return false
	}
	if p.Qualifier != nil && !v.qualifiers.Validate(p.Qualifier) {
		return false
	}
	if p.Wire != nil {
		return v.validWire(p.Wire)
	}
	return v.validTransactional(p.Transactional)
}

// FindErrorsIn appends the defects of p.
func (v *PortValidator) FindErrorsIn(errs []string, p *model.Port, context string) []string {
	if !validName(p.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for port %s within %s", p.Name, context))
	}
	if !v.presence(p.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for port %s within %s", p.Name, context))
	}
	if !v.validArrays(p.Arrays) {
		errs = append(errs, fmt.Sprintf("Invalid array values set for port %s within %s", p.Name, context))
	}
	switch {
	case p.Wire == nil && p.Transactional == nil:
		errs = append(errs, fmt.Sprintf("Port %s within %s has neither wire nor transactional defined", p.Name, context))
	case p.Wire != nil && p.Transactional != nil:
		errs = append(errs, fmt.Sprintf("Port %s within %s has both wire and transactional defined", p.Name, context))
	}
	if p.Qualifier != nil {
		errs = v.qualifiers.FindErrorsIn(errs, p.Qualifier, within("port", p.Name, context))
	}
	if p.Wire != nil {
		errs = v.findErrorsInWire(errs, p.Name, p.Wire, context)
	}
	if p.Transactional != nil {
		errs = v.findErrorsInTransactional(errs, p.Name, p.Transactional, context)
	}
	return errs
}

func (v *PortValidator) validArrays(arrays []model.Array) bool {
	for _, a := range arrays {
		if !v.nonNegative(a.Left) || !v.nonNegative(a.Right) {
			return false
		}
	}
	return true
}

func (v *PortValidator) validVectors(vectors []model.Vector) bool {
	for _, vec := range vectors {
		if !v.nonNegative(vec.Left) || !v.nonNegative(vec.Right) {
			return false
		}
	}
	return true
}

// unknownViews returns the view references of defs that name no view.
func (v *PortValidator) unknownViews(defs []model.TypeDefinition) []string {
	var unknown []string
	for _, def := range defs {
		for _, ref := range def.ViewRefs {
			if !slices.ContainsFunc(v.views, func(view model.View) bool { return view.Name == ref }) {
				unknown = append(unknown, ref)
			}
		}
	}
	return unknown
}

func (v *PortValidator) validWire(w *model.Wire) bool {
	return slices.Contains(directions, w.Direction) &&
		v.validVectors(w.Vectors) &&
		len(v.unknownViews(w.TypeDefinitions)) == 0 &&
		v.optionalExpr(w.DefaultValue)
}

func (v *PortValidator) findErrorsInWire(errs []string, name string, w *model.Wire, context string) []string {
	if !slices.Contains(directions, w.Direction) {
		errs = append(errs, fmt.Sprintf("Invalid direction %s set for port %s within %s", w.Direction, name, context))
	}
	if !v.validVectors(w.Vectors) {
		errs = append(errs, fmt.Sprintf("Invalid vector values set for port %s within %s", name, context))
	}
	for _, ref := range v.unknownViews(w.TypeDefinitions) {
		errs = append(errs, fmt.Sprintf("View %s referenced by type definition of port %s within %s was not found",
			ref, name, context))
	}
	if !v.optionalExpr(w.DefaultValue) {
		errs = append(errs, fmt.Sprintf("Invalid default value set for port %s within %s", name, context))
	}
	return errs
}

func (v *PortValidator) validConnections(t *model.Transactional) bool {
	if !v.optionalNonNegative(t.MinConnections) || !v.optionalNonNegative(t.MaxConnections) {
		return false
	}
	if t.MinConnections == "" || t.MaxConnections == "" {
		return true
	}
	lo, _ := v.integer(t.MinConnections)
	hi, _ := v.integer(t.MaxConnections)
	return lo <= hi
}

func (v *PortValidator) validProtocol(p *model.Protocol) bool {
	if p == nil {
		return true
	}
	return slices.Contains(protocolTypes, p.Type) &&
		(p.Type != "custom" || !model.IsBlank(p.CustomType)) &&
		!model.IsBlank(p.PayloadName) &&
		slices.Contains(payloadTypes, p.PayloadType) &&
		(!p.ExtensionMandatory || !model.IsBlank(p.PayloadExtension))
}

func (v *PortValidator) validTransactional(t *model.Transactional) bool {
	return v.rules.InitiativeAllowed(t.Initiative) &&
		slices.Contains(transactionalKinds, t.Kind) &&
		v.optionalNonNegative(t.BusWidth) &&
		v.validConnections(t) &&
		v.validProtocol(t.Protocol) &&
		len(v.unknownViews(t.TypeDefinitions)) == 0
}

func (v *PortValidator) findErrorsInTransactional(errs []string, name string, t *model.Transactional, context string) []string {
	if !v.rules.InitiativeAllowed(t.Initiative) {
		errs = append(errs, fmt.Sprintf("Invalid initiative %s set for port %s within %s", t.Initiative, name, context))
	}
	if !slices.Contains(transactionalKinds, t.Kind) {
		errs = append(errs, fmt.Sprintf("Invalid kind %s set for port %s within %s", t.Kind, name, context))
	}
	if !v.optionalNonNegative(t.BusWidth) {
		errs = append(errs, fmt.Sprintf("Invalid bus width set for port %s within %s", name, context))
	}
	if !v.validConnections(t) {
		errs = append(errs, fmt.Sprintf("Invalid connection bounds set for port %s within %s", name, context))
	}
	if p := t.Protocol; p != nil {
		if !slices.Contains(protocolTypes, p.Type) || (p.Type == "custom" && model.IsBlank(p.CustomType)) {
			errs = append(errs, fmt.Sprintf("Invalid protocol type %s set for port %s within %s", p.Type, name, context))
		}
		if model.IsBlank(p.PayloadName) {
			errs = append(errs, fmt.Sprintf("No payload name set for port %s within %s", name, context))
		}
		if !slices.Contains(payloadTypes, p.PayloadType) {
			errs = append(errs, fmt.Sprintf("Invalid payload type %s set for port %s within %s", p.PayloadType, name, context))
		}
		if p.ExtensionMandatory && model.IsBlank(p.PayloadExtension) {
			errs = append(errs, fmt.Sprintf("Mandatory payload extension is empty for port %s within %s", name, context))
		}
	}
	for _, ref := range v.unknownViews(t.TypeDefinitions) {
		errs = append(errs, fmt.Sprintf("View %s referenced by type definition of port %s within %s was not found",
			ref, name, context))
	}
	return errs
}
