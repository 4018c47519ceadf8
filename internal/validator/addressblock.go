package validator

import (
	"fmt"
	"slices"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/memory"
	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

// defaultAddressUnitBits applies when a memory map leaves the unit unset.
const defaultAddressUnitBits = 8

// AddressBlockValidator validates address blocks and the registers and
// register files they hold.
type AddressBlockValidator struct {
	checker
	rules           *revision.Rules
	files           *RegisterFileValidator
	addressUnitBits int64
}

// NewAddressBlockValidator returns a validator for the address blocks of c
// with byte sized address units.
func NewAddressBlockValidator(eval *expression.Evaluator, c *model.Component, rules *revision.Rules) *AddressBlockValidator {
	return &AddressBlockValidator{
		checker:         checker{eval: eval},
		rules:           rules,
		files:           NewRegisterFileValidator(eval, NewRegisterValidator(eval, c, rules)),
		addressUnitBits: defaultAddressUnitBits,
	}
}

// WithAddressUnitBits returns a copy of v using aub bits per address unit.
func (v *AddressBlockValidator) WithAddressUnitBits(aub int64) *AddressBlockValidator {
	c := *v
	c.addressUnitBits = aub
	return &c
}

// Span returns the inclusive address range of b. It fails with
// memory.ErrOverflow when the range ends past the last 64-bit address.
func (v *AddressBlockValidator) Span(b *model.AddressBlock) (begin, end uint64, err error) {
	base, ok1 := v.unsigned(b.BaseAddress)
	size, ok2 := v.unsigned(b.Range)
	if !ok1 || !ok2 || size == 0 {
		return 0, 0, errNoSpan
	}
	end, err = memory.Last(base, 1, 0, size)
	return base, end, err
}

func registerNames(regs []model.Register) []string {
	names := make([]string, len(regs))
	for i, r := range regs {
		names[i] = r.Name
	}
	return names
}

func (v *AddressBlockValidator) registersAllowed(b *model.AddressBlock) bool {
	return len(b.Registers)+len(b.RegisterFiles) == 0 || (b.Usage != model.UsageMemory && b.Usage != model.UsageReserved)
}

// layout returns the validator for the register data of b.
func (v *AddressBlockValidator) layout(b *model.AddressBlock) *RegisterFileValidator {
	return v.files.inBlock(v.addressUnitBits, b.Width)
}

// uncontained returns the register data reaching past the block range.
func (v *AddressBlockValidator) uncontained(b *model.AddressBlock, spans []dataSpan) []dataSpan {
	size, ok := v.unsigned(b.Range)
	if !ok {
		return nil
	}
	return uncontainedData(spans, size)
}

func isTrue(s string) bool  { return s == "true" || s == "1" }
func isFalse(s string) bool { return s == "false" || s == "0" }

// conflicting returns the registers whose volatility or access contradicts
// the block. Only checked in revisions carrying block level consistency.
func (v *AddressBlockValidator) conflicting(b *model.AddressBlock) []string {
	if !v.rules.VolatileAccessChecks {
		return nil
	}
	var names []string
	for _, r := range b.Registers {
		volatile := isFalse(b.Volatile) && isTrue(r.Volatile)
		access := !accessContained(b.Access, r.Access)
		if volatile || access {
			names = append(names, r.Name)
		}
	}
	return names
}

var (
	readable = []string{"read-only", "read-write", "read-writeOnce"}
	writable = []string{"write-only", "read-write", "writeOnce", "read-writeOnce"}
)

// accessContained reports whether a register with access inner fits in a
// block with access outer.
func accessContained(outer, inner string) bool {
	if outer == "" || inner == "" || outer == "read-write" {
		return true
	}
	switch outer {
	case "read-only":
		return !slices.Contains(writable, inner)
	case "write-only", "writeOnce":
		return !slices.Contains(readable, inner)
	}
	return true
}

// Validate reports whether b is valid.
func (v *AddressBlockValidator) Validate(b *model.AddressBlock) bool {
	if !validName(b.Name) ||
		!v.presence(b.IsPresent) ||
		!v.nonNegative(b.BaseAddress) ||
		!v.positive(b.Range) ||
		!v.positive(b.Width) ||
		overflows(v.Span(b)) ||
		!v.rules.UsageAllowed(b.Usage) ||
		!validBool(b.Volatile) ||
		!v.rules.AccessAllowed(b.Access) ||
		!v.registersAllowed(b) {
		return false
	}
	files := v.layout(b)
	return files.validData(b.Registers, b.RegisterFiles) &&
		len(v.uncontained(b, files.spans(b.Registers, b.RegisterFiles))) == 0 &&
		len(v.conflicting(b)) == 0
}

// FindErrorsIn appends the defects of b.
func (v *AddressBlockValidator) FindErrorsIn(errs []string, b *model.AddressBlock, context string) []string {
	if !validName(b.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for address block %s within %s", b.Name, context))
	}
	if !v.presence(b.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for address block %s within %s", b.Name, context))
	}
	if !v.nonNegative(b.BaseAddress) {
		errs = append(errs, fmt.Sprintf("Invalid base address set for address block %s within %s", b.Name, context))
	}
	if !v.positive(b.Range) {
		errs = append(errs, fmt.Sprintf("Invalid range set for address block %s within %s", b.Name, context))
	}
	if !v.positive(b.Width) {
		errs = append(errs, fmt.Sprintf("Invalid width set for address block %s within %s", b.Name, context))
	}
	if overflows(v.Span(b)) {
		errs = append(errs, fmt.Sprintf("Address block %s within %s exceeds the 64-bit address space", b.Name, context))
	}
	if !v.rules.UsageAllowed(b.Usage) {
		errs = append(errs, fmt.Sprintf("Invalid usage %s set for address block %s within %s", b.Usage, b.Name, context))
	}
	if !validBool(b.Volatile) {
		errs = append(errs, fmt.Sprintf("Invalid volatile value set for address block %s within %s", b.Name, context))
	}
	if !v.rules.AccessAllowed(b.Access) {
		errs = append(errs, fmt.Sprintf("Invalid access %s set for address block %s within %s", b.Access, b.Name, context))
	}
	if !v.registersAllowed(b) {
		errs = append(errs, fmt.Sprintf("Registers are not allowed in address block %s with usage %s within %s",
			b.Name, b.Usage, context))
	}
	inner := within("address block", b.Name, context)
	files := v.layout(b)
	errs = files.findErrorsInData(errs, b.Registers, b.RegisterFiles, inner)
	for _, r := range files.oversized(b.Registers) {
		errs = append(errs, fmt.Sprintf("Size of register %s is greater than the width of address block %s within %s",
			r, b.Name, context))
	}
	spans := files.spans(b.Registers, b.RegisterFiles)
	for _, s := range overflowingData(spans) {
		errs = append(errs, fmt.Sprintf("%s %s within %s exceeds the 64-bit address space", s.kind, s.name, inner))
	}
	for _, s := range v.uncontained(b, spans) {
		errs = append(errs, fmt.Sprintf("%s %s is not contained within address block %s within %s",
			s.kind, s.name, b.Name, context))
	}
	errs = dataReserve(spans).FindErrorsInOverlap(errs, "Register data", inner)
	for _, r := range v.conflicting(b) {
		errs = append(errs, fmt.Sprintf("Volatile or access value of register %s conflicts with address block %s within %s",
			r, b.Name, context))
	}
	return errs
}
