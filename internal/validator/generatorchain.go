package validator

import (
	"fmt"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

// GeneratorChainValidator validates generator chain documents.
type GeneratorChainValidator struct {
	library    *model.Library
	generators *GeneratorValidator
}

// NewGeneratorChainValidator returns a validator resolving chain selectors
// in lib. A nil lib skips the lookup.
func NewGeneratorChainValidator(eval *expression.Evaluator, lib *model.Library, rules *revision.Rules) *GeneratorChainValidator {
	return &GeneratorChainValidator{library: lib, generators: NewGeneratorValidator(eval, rules)}
}

func (v *GeneratorChainValidator) validSelector(g *model.GeneratorChain, ref model.VLNV) bool {
	if !ref.Valid() || ref == g.VLNV {
		return false
	}
	return v.library == nil || v.library.GeneratorChain(ref) != nil
}

func generatorNames(gens []model.Generator) []string {
	names := make([]string, len(gens))
	for i, g := range gens {
		names[i] = g.Name
	}
	return names
}

func hasMembers(g *model.GeneratorChain) bool {
	return len(g.Generators)+len(g.GeneratorChainSelectors)+len(g.ComponentGeneratorSelectors) > 0
}

// Validate reports whether g is valid.
func (v *GeneratorChainValidator) Validate(g *model.GeneratorChain) bool {
	if !g.VLNV.Valid() || !hasMembers(g) || !validGroupNames(g.ChainGroups) {
		return false
	}
	for _, ref := range g.GeneratorChainSelectors {
		if !v.validSelector(g, ref) {
			return false
		}
	}
	for _, sel := range g.ComponentGeneratorSelectors {
		if model.IsBlank(sel) {
			return false
		}
	}
	for i := range g.Generators {
		if !v.generators.Validate(&g.Generators[i]) {
			return false
		}
	}
	return NamesUnique(generatorNames(g.Generators))
}

// FindErrorsIn appends the defects of g.
func (v *GeneratorChainValidator) FindErrorsIn(errs []string, g *model.GeneratorChain, context string) []string {
	if !g.VLNV.Valid() {
		errs = append(errs, fmt.Sprintf("The type of the vlnv is invalid within %s", context))
	}
	if !hasMembers(g) {
		errs = append(errs, fmt.Sprintf("At least one generator or selector must be set within %s", context))
	}
	for _, n := range g.ChainGroups {
		if model.IsBlank(n) {
			errs = append(errs, fmt.Sprintf("Empty chain group set within %s", context))
		}
	}
	errs = FindErrorsInNames(errs, "Chain group", g.ChainGroups, context)
	for _, ref := range g.GeneratorChainSelectors {
		if !v.validSelector(g, ref) {
			errs = append(errs, fmt.Sprintf("Could not find generator chain %s selected within %s", ref, context))
		}
	}
	for _, sel := range g.ComponentGeneratorSelectors {
		if model.IsBlank(sel) {
			errs = append(errs, fmt.Sprintf("Empty component generator selector set within %s", context))
		}
	}
	for i := range g.Generators {
		errs = v.generators.FindErrorsIn(errs, &g.Generators[i], context)
	}
	return FindErrorsInNames(errs, "Generator", generatorNames(g.Generators), context)
}
