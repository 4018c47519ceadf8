// Package validator checks IP-XACT elements against the rules of their
// schema revision.
//
// Every validator offers Validate, which answers whether an element is
// valid, and FindErrorsIn, which appends one message per violated rule.
// Both apply the same predicates. Neither stops at the first violation
// nor panics on malformed content.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/memory"
	"ipxcheck/internal/model"
)

// Validator is implemented by the element validators of this package.
type Validator[T any] interface {
	Validate(x T) bool
	FindErrorsIn(errs []string, x T, context string) []string
}

// checker holds the expression predicates shared by validators.
type checker struct {
	eval *expression.Evaluator
}

func (c checker) validExpr(expr string) bool {
	return !model.IsBlank(expr) && c.eval.Valid(expr)
}

// optionalExpr accepts an empty expression or one that evaluates.
func (c checker) optionalExpr(expr string) bool {
	return expr == "" || c.eval.Valid(expr)
}

func (c checker) integer(expr string) (int64, bool) {
	if model.IsBlank(expr) {
		return 0, false
	}
	n, err := c.eval.EvaluateInt(expr)
	return n, err == nil
}

// unsigned evaluates expr to a whole number in the 64-bit address range.
func (c checker) unsigned(expr string) (uint64, bool) {
	if model.IsBlank(expr) {
		return 0, false
	}
	n, err := c.eval.EvaluateUint(expr)
	return n, err == nil
}

func (c checker) nonNegative(expr string) bool {
	_, ok := c.unsigned(expr)
	return ok
}

func (c checker) positive(expr string) bool {
	n, ok := c.unsigned(expr)
	return ok && n > 0
}

func (c checker) optionalNonNegative(expr string) bool {
	return expr == "" || c.nonNegative(expr)
}

func (c checker) optionalPositive(expr string) bool {
	return expr == "" || c.positive(expr)
}

// boolExpr accepts an expression evaluating to exactly 0 or 1.
func (c checker) boolExpr(expr string) bool {
	n, ok := c.integer(expr)
	return ok && (n == 0 || n == 1)
}

// presence accepts an empty isPresent or one evaluating to 0 or 1.
// replication returns how many copies a dimension or memory array makes.
func (c checker) replication(dimension string, array *model.MemoryArray) (uint64, error) {
	if array != nil {
		dims := make([]uint64, len(array.Dimensions))
		for i, dim := range array.Dimensions {
			d, ok := c.unsigned(dim)
			if !ok || d == 0 {
				return 0, errNoSpan
			}
			dims[i] = d
		}
		return memory.Product(dims...)
	}
	if dimension != "" {
		d, ok := c.unsigned(dimension)
		if !ok || d == 0 {
			return 0, errNoSpan
		}
		return d, nil
	}
	return 1, nil
}

// stride returns the distance between the copies of a memory array, or
// fallback when the array sets none.
func (c checker) stride(array *model.MemoryArray, fallback uint64) (uint64, error) {
	if array == nil || array.Stride == "" {
		return fallback, nil
	}
	s, ok := c.unsigned(array.Stride)
	if !ok || s == 0 {
		return 0, errNoSpan
	}
	return s, nil
}

func (c checker) presence(expr string) bool {
	return expr == "" || c.boolExpr(expr)
}

// present reports whether an element with the given isPresent takes part
// in overlap and containment checks.
func (c checker) present(expr string) bool {
	if expr == "" {
		return true
	}
	n, ok := c.integer(expr)
	return !ok || n != 0
}

func (c checker) decimal(expr string) (decimal.Decimal, bool) {
	if model.IsBlank(expr) {
		return decimal.Zero, false
	}
	d, err := c.eval.Evaluate(expr)
	return d, err == nil
}

// errNoSpan marks an element whose position or size does not evaluate.
var errNoSpan = errors.New("no span")

// overflows reports whether a span ends past the 64-bit address space.
func overflows(_, _ uint64, err error) bool {
	return errors.Is(err, memory.ErrOverflow)
}

func validName(name string) bool {
	return !model.IsBlank(name)
}

// validBool accepts the xs:boolean spellings and the empty string.
func validBool(s string) bool {
	switch s {
	case "", "true", "false", "1", "0":
		return true
	}
	return false
}

func isQuoted(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

// Duplicates returns the non-blank names that occur more than once, in
// order of first occurrence.
func Duplicates(names []string) []string {
	count := make(map[string]int, len(names))
	for _, n := range names {
		if !model.IsBlank(n) {
			count[n]++
		}
	}
	var dups []string
	for _, n := range names {
		if count[n] > 1 {
			dups = append(dups, n)
			count[n] = 0
		}
	}
	return dups
}

// NamesUnique reports whether no non-blank name occurs twice.
func NamesUnique(names []string) bool {
	return len(Duplicates(names)) == 0
}

// FindErrorsInNames appends one message per duplicated name. label is the
// element kind, e.g. "Port".
func FindErrorsInNames(errs []string, label string, names []string, context string) []string {
	for _, n := range Duplicates(names) {
		errs = append(errs, fmt.Sprintf("%s name %s within %s is not unique.", label, n, context))
	}
	return errs
}

func parameterNames(params []model.Parameter) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

// within builds the context of a nested element.
func within(kind, name, context string) string {
	return fmt.Sprintf("%s %s within %s", kind, name, context)
}
