package validator

import (
	"fmt"
	"strings"

	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

// QualifierValidator checks qualifier types and attributes against the
// vocabulary of a schema revision.
type QualifierValidator struct {
	rules *revision.Rules
}

// NewQualifierValidator returns a validator applying rules.
func NewQualifierValidator(rules *revision.Rules) *QualifierValidator {
	return &QualifierValidator{rules: rules}
}

// Validate reports whether q is valid.
func (v *QualifierValidator) Validate(q *model.Qualifier) bool {
	return len(q.Types) > 0 &&
		len(v.illegalTypes(q)) == 0 &&
		len(repeatedTypes(q)) == 0 &&
		v.rules.QualifierCountAllowed(len(q.Types)) &&
		v.rules.QualifierCombinationAllowed(q.Types) &&
		v.rules.LevelAllowed(q.ResetLevel) &&
		v.rules.LevelAllowed(q.ClockEnableLevel) &&
		v.rules.LevelAllowed(q.PowerEnableLevel) &&
		v.validFlowType(q) &&
		v.validUserDefined(q)
}

// FindErrorsIn appends the defects of q.
func (v *QualifierValidator) FindErrorsIn(errs []string, q *model.Qualifier, context string) []string {
	if len(q.Types) == 0 {
		errs = append(errs, fmt.Sprintf("Qualifier within %s has no types", context))
	}
	for _, t := range v.illegalTypes(q) {
		errs = append(errs, fmt.Sprintf("Qualifier type %s is not allowed in %s within %s", t, v.rules.Revision, context))
	}
	for _, t := range repeatedTypes(q) {
		errs = append(errs, fmt.Sprintf("Qualifier type %s is repeated within %s", t, context))
	}
	if !v.rules.QualifierCountAllowed(len(q.Types)) {
		errs = append(errs, fmt.Sprintf("Qualifier within %s has an illegal number of types", context))
	} else if !v.rules.QualifierCombinationAllowed(q.Types) {
		errs = append(errs, fmt.Sprintf("Qualifier types %s are an illegal combination within %s", joinTypes(q.Types), context))
	}
	if !v.rules.LevelAllowed(q.ResetLevel) {
		errs = append(errs, fmt.Sprintf("Invalid reset level %s set for qualifier within %s", q.ResetLevel, context))
	}
	if !v.rules.LevelAllowed(q.ClockEnableLevel) {
		errs = append(errs, fmt.Sprintf("Invalid clock enable level %s set for qualifier within %s", q.ClockEnableLevel, context))
	}
	if !v.rules.LevelAllowed(q.PowerEnableLevel) {
		errs = append(errs, fmt.Sprintf("Invalid power enable level %s set for qualifier within %s", q.PowerEnableLevel, context))
	}
	if !v.validFlowType(q) {
		errs = append(errs, fmt.Sprintf("Invalid flow type %s set for qualifier within %s", q.FlowType, context))
	}
	if !v.validUserDefined(q) {
		errs = append(errs, fmt.Sprintf("User defined value must be set for user qualifier within %s", context))
	}
	return errs
}

func (v *QualifierValidator) illegalTypes(q *model.Qualifier) []model.QualifierType {
	var bad []model.QualifierType
	for _, t := range q.Types {
		if !v.rules.QualifierTypeAllowed(t) {
			bad = append(bad, t)
		}
	}
	return bad
}

func repeatedTypes(q *model.Qualifier) []model.QualifierType {
	names := make([]string, len(q.Types))
	for i, t := range q.Types {
		names[i] = string(t)
	}
	var dups []model.QualifierType
	for _, n := range Duplicates(names) {
		dups = append(dups, model.QualifierType(n))
	}
	return dups
}

// validFlowType requires a known flow type when one is set or when the
// qualifier carries flow control. A user flow type must be named.
func (v *QualifierValidator) validFlowType(q *model.Qualifier) bool {
	if q.FlowType == "" {
		return !q.HasType(model.QualifierFlowControl)
	}
	if !v.rules.FlowTypeAllowed(q.FlowType) {
		return false
	}
	return q.FlowType != "user" || !model.IsBlank(q.UserFlowType)
}

func (v *QualifierValidator) validUserDefined(q *model.Qualifier) bool {
	return !q.HasType(model.QualifierUser) || !model.IsBlank(q.UserDefined)
}

func joinTypes(types []model.QualifierType) string {
	s := make([]string, len(types))
	for i, t := range types {
		s[i] = string(t)
	}
	return strings.Join(s, ", ")
}
