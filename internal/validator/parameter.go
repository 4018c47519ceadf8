package validator

import (
	"fmt"
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

var parameterTypes = []string{"", "bit", "byte", "shortint", "int", "longint", "shortreal", "real", "string"}

type bounds struct {
	min, max decimal.Decimal
}

var integerBounds = map[string]bounds{
	"byte":     {decimal.NewFromInt(math.MinInt8), decimal.NewFromInt(math.MaxInt8)},
	"shortint": {decimal.NewFromInt(math.MinInt16), decimal.NewFromInt(math.MaxInt16)},
	"int":      {decimal.NewFromInt(math.MinInt32), decimal.NewFromInt(math.MaxInt32)},
	"longint":  {decimal.NewFromInt(math.MinInt64), decimal.RequireFromString("18446744073709551615")},
}

// ParameterValidator validates parameters against their type, bounds and choice.
type ParameterValidator struct {
	checker
	rules   *revision.Rules
	choices []model.Choice
}

// NewParameterValidator returns a validator resolving choice references
// against choices.
func NewParameterValidator(eval *expression.Evaluator, choices []model.Choice, rules *revision.Rules) *ParameterValidator {
	return &ParameterValidator{checker: checker{eval: eval}, rules: rules, choices: choices}
}

// Validate reports whether p is valid.
func (v *ParameterValidator) Validate(p *model.Parameter) bool {
	return validName(p.Name) &&
		slices.Contains(parameterTypes, p.Type) &&
		!model.IsBlank(p.Value) &&
		v.validValueForType(p.Value, p.Type) &&
		v.validBound(p.Minimum, p.Type) &&
		v.validBound(p.Maximum, p.Type) &&
		!v.belowMinimum(p) &&
		!v.aboveMaximum(p) &&
		v.hasValidChoice(p) &&
		v.valueInChoice(p) &&
		v.rules.ResolveAllowed(p.Resolve) &&
		v.validVectors(p) &&
		v.validVectorIDs(p) &&
		v.validArrays(p.Arrays)
}

// FindErrorsIn appends the defects of p.
func (v *ParameterValidator) FindErrorsIn(errs []string, p *model.Parameter, context string) []string {
	return v.findErrorsIn(errs, p, "parameter", context)
}

func (v *ParameterValidator) findErrorsIn(errs []string, p *model.Parameter, kind, context string) []string {
	if !validName(p.Name) {
		errs = append(errs, fmt.Sprintf("No valid name specified for %s %s within %s", kind, p.Name, context))
	}
	if !slices.Contains(parameterTypes, p.Type) {
		errs = append(errs, fmt.Sprintf("Invalid type %s specified for %s %s within %s", p.Type, kind, p.Name, context))
	}
	if model.IsBlank(p.Value) {
		errs = append(errs, fmt.Sprintf("No value specified for %s %s within %s", kind, p.Name, context))
	} else if !v.validValueForType(p.Value, p.Type) {
		errs = append(errs, fmt.Sprintf("Value '%s' is not valid for type %s in %s %s within %s",
			p.Value, typeName(p.Type), kind, p.Name, context))
	}
	if !v.validBound(p.Minimum, p.Type) {
		errs = append(errs, fmt.Sprintf("Minimum value %s is not valid for format %s in %s %s within %s",
			p.Minimum, p.Type, kind, p.Name, context))
	}
	if !v.validBound(p.Maximum, p.Type) {
		errs = append(errs, fmt.Sprintf("Maximum value %s is not valid for format %s in %s %s within %s",
			p.Maximum, p.Type, kind, p.Name, context))
	}
	if v.belowMinimum(p) {
		errs = append(errs, fmt.Sprintf("Value '%s' violates minimum value %s in %s %s within %s",
			p.Value, p.Minimum, kind, p.Name, context))
	}
	if v.aboveMaximum(p) {
		errs = append(errs, fmt.Sprintf("Value '%s' violates maximum value %s in %s %s within %s",
			p.Value, p.Maximum, kind, p.Name, context))
	}
	if !v.hasValidChoice(p) {
		errs = append(errs, fmt.Sprintf("Choice %s referenced in %s %s is not specified within %s",
			p.ChoiceRef, kind, p.Name, context))
	} else if !v.valueInChoice(p) {
		errs = append(errs, fmt.Sprintf("Value '%s' references unknown enumeration for choice %s in %s %s within %s",
			p.Value, p.ChoiceRef, kind, p.Name, context))
	}
	if !v.rules.ResolveAllowed(p.Resolve) {
		errs = append(errs, fmt.Sprintf("Invalid resolve %s specified for %s %s within %s", p.Resolve, kind, p.Name, context))
	}
	if !v.validVectors(p) {
		errs = append(errs, fmt.Sprintf("Invalid bit vector values specified for %s %s within %s", kind, p.Name, context))
	}
	if !v.validVectorIDs(p) {
		errs = append(errs, fmt.Sprintf("Vector ID specified for %s %s within %s is not allowed in %s",
			kind, p.Name, context, v.rules.Revision))
	}
	if !v.validArrays(p.Arrays) {
		errs = append(errs, fmt.Sprintf("Invalid array values specified for %s %s within %s", kind, p.Name, context))
	}
	return errs
}

// ValidateList reports whether every parameter is valid and names are unique.
func (v *ParameterValidator) ValidateList(params []model.Parameter) bool {
	for i := range params {
		if !v.Validate(&params[i]) {
			return false
		}
	}
	return NamesUnique(parameterNames(params))
}

// FindErrorsInList appends the defects of every parameter and of duplicated names.
func (v *ParameterValidator) FindErrorsInList(errs []string, params []model.Parameter, context string) []string {
	for i := range params {
		errs = v.FindErrorsIn(errs, &params[i], context)
	}
	return FindErrorsInNames(errs, "Parameter", parameterNames(params), context)
}

func typeName(t string) string {
	if t == "" {
		return "untyped"
	}
	return t
}

func (v *ParameterValidator) validValueForType(value, typ string) bool {
	switch typ {
	case "string":
		return isQuoted(value)
	case "":
		return isQuoted(value) || v.validExpr(value)
	}
	d, ok := v.decimal(value)
	if !ok {
		return false
	}
	switch typ {
	case "bit":
		return d.IsInteger() && !d.IsNegative()
	case "shortreal", "real":
		return true
	}
	b, ok := integerBounds[typ]
	if !ok {
		return false
	}
	return d.IsInteger() && d.GreaterThanOrEqual(b.min) && d.LessThanOrEqual(b.max)
}

func ordered(typ string) bool {
	return typ != "" && typ != "bit" && typ != "string"
}

// validBound accepts an unset bound and bounds of types that are not compared.
func (v *ParameterValidator) validBound(bound, typ string) bool {
	if bound == "" || !ordered(typ) {
		return true
	}
	return v.validValueForType(bound, typ)
}

func (v *ParameterValidator) compare(value, bound, typ string) (int, bool) {
	if bound == "" || !ordered(typ) {
		return 0, false
	}
	a, ok := v.decimal(value)
	if !ok {
		return 0, false
	}
	b, ok := v.decimal(bound)
	if !ok {
		return 0, false
	}
	return a.Cmp(b), true
}

func (v *ParameterValidator) belowMinimum(p *model.Parameter) bool {
	c, ok := v.compare(p.Value, p.Minimum, p.Type)
	return ok && c < 0
}

func (v *ParameterValidator) aboveMaximum(p *model.Parameter) bool {
	c, ok := v.compare(p.Value, p.Maximum, p.Type)
	return ok && c > 0
}

func (v *ParameterValidator) findChoice(name string) *model.Choice {
	for i := range v.choices {
		if v.choices[i].Name == name {
			return &v.choices[i]
		}
	}
	return nil
}

func (v *ParameterValidator) hasValidChoice(p *model.Parameter) bool {
	return p.ChoiceRef == "" || v.findChoice(p.ChoiceRef) != nil
}

// valueInChoice compares evaluated values when both sides evaluate and
// raw text otherwise.
func (v *ParameterValidator) valueInChoice(p *model.Parameter) bool {
	if p.ChoiceRef == "" {
		return true
	}
	choice := v.findChoice(p.ChoiceRef)
	if choice == nil {
		return true
	}
	value, valueOK := v.decimal(p.Value)
	for _, e := range choice.Enumerations {
		if e.Value == p.Value {
			return true
		}
		if d, ok := v.decimal(e.Value); ok && valueOK && d.Equal(value) {
			return true
		}
	}
	return false
}

func (v *ParameterValidator) validVectors(p *model.Parameter) bool {
	if len(p.Vectors) == 0 {
		return true
	}
	if p.Type != "bit" {
		return false
	}
	for _, vec := range p.Vectors {
		if !v.nonNegative(vec.Left) || !v.nonNegative(vec.Right) {
			return false
		}
	}
	return true
}

func (v *ParameterValidator) validVectorIDs(p *model.Parameter) bool {
	if v.rules.VectorIDs {
		return true
	}
	for _, vec := range p.Vectors {
		if vec.ID != "" {
			return false
		}
	}
	return true
}

func (v *ParameterValidator) validArrays(arrays []model.Array) bool {
	for _, a := range arrays {
		if !v.nonNegative(a.Left) || !v.nonNegative(a.Right) {
			return false
		}
	}
	return true
}

var usageTypes = []string{"", "nontyped", "typed", "runtime"}

// ModuleParameterValidator validates the HDL parameters of an instantiation.
type ModuleParameterValidator struct {
	params *ParameterValidator
}

// NewModuleParameterValidator returns a validator sharing the rules of params.
func NewModuleParameterValidator(params *ParameterValidator) *ModuleParameterValidator {
	return &ModuleParameterValidator{params: params}
}

// Validate reports whether p is valid.
func (v *ModuleParameterValidator) Validate(p *model.ModuleParameter) bool {
	return v.params.Validate(&p.Parameter) &&
		slices.Contains(usageTypes, p.UsageType) &&
		v.params.presence(p.IsPresent)
}

// FindErrorsIn appends the defects of p.
func (v *ModuleParameterValidator) FindErrorsIn(errs []string, p *model.ModuleParameter, context string) []string {
	errs = v.params.findErrorsIn(errs, &p.Parameter, "module parameter", context)
	if !slices.Contains(usageTypes, p.UsageType) {
		errs = append(errs, fmt.Sprintf("Invalid usage type %s set for module parameter %s within %s",
			p.UsageType, p.Name, context))
	}
	if !v.params.presence(p.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for module parameter %s within %s", p.Name, context))
	}
	return errs
}
