package validator

import (
	"fmt"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/model"
)

// ChoiceValidator validates component choices.
type ChoiceValidator struct {
	checker
}

// NewChoiceValidator returns a choice validator.
func NewChoiceValidator(eval *expression.Evaluator) *ChoiceValidator {
	return &ChoiceValidator{checker: checker{eval: eval}}
}

// validEnumeration accepts quoted strings and evaluable expressions.
func (v *ChoiceValidator) validEnumeration(e model.Enumeration) bool {
	return isQuoted(e.Value) || v.validExpr(e.Value)
}

// Validate reports whether c is valid.
func (v *ChoiceValidator) Validate(c *model.Choice) bool {
	if !validName(c.Name) || len(c.Enumerations) == 0 {
		return false
	}
	for _, e := range c.Enumerations {
		if !v.validEnumeration(e) {
			return false
		}
	}
	return true
}

// FindErrorsIn appends the defects of c.
func (v *ChoiceValidator) FindErrorsIn(errs []string, c *model.Choice, context string) []string {
	if !validName(c.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for choice %s within %s", c.Name, context))
	}
	if len(c.Enumerations) == 0 {
		errs = append(errs, fmt.Sprintf("Choice %s within %s must contain at least one enumeration", c.Name, context))
	}
	for _, e := range c.Enumerations {
		if !v.validEnumeration(e) {
			errs = append(errs, fmt.Sprintf("Invalid value %s set for enumeration in choice %s within %s",
				e.Value, c.Name, context))
		}
	}
	return errs
}

// FileSetValidator validates component file sets.
type FileSetValidator struct{}

// NewFileSetValidator returns a file set validator.
func NewFileSetValidator() *FileSetValidator { return &FileSetValidator{} }

func validFile(f model.File) bool {
	return validName(f.Name) && len(f.FileTypes) > 0
}

// Validate reports whether fs is valid.
func (v *FileSetValidator) Validate(fs *model.FileSet) bool {
	if !validName(fs.Name) {
		return false
	}
	for _, f := range fs.Files {
		if !validFile(f) {
			return false
		}
	}
	return true
}

// FindErrorsIn appends the defects of fs.
func (v *FileSetValidator) FindErrorsIn(errs []string, fs *model.FileSet, context string) []string {
	if !validName(fs.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for file set %s within %s", fs.Name, context))
	}
	for _, f := range fs.Files {
		if !validName(f.Name) {
			errs = append(errs, fmt.Sprintf("Invalid name specified for file in file set %s within %s", fs.Name, context))
		}
		if len(f.FileTypes) == 0 {
			errs = append(errs, fmt.Sprintf("No file type specified for file %s in file set %s within %s",
				f.Name, fs.Name, context))
		}
	}
	return errs
}
