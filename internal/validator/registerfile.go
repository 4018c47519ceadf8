package validator

import (
	"errors"
	"fmt"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/memory"
	"ipxcheck/internal/model"
)

// RegisterFileValidator validates register files and the registers and
// register files nested in them. Offsets are relative to the parent, so
// one validator serves every nesting level.
type RegisterFileValidator struct {
	checker
	registers       *RegisterValidator
	addressUnitBits int64
	blockWidth      string
}

// NewRegisterFileValidator returns a validator checking nested registers
// with registers.
func NewRegisterFileValidator(eval *expression.Evaluator, registers *RegisterValidator) *RegisterFileValidator {
	return &RegisterFileValidator{
		checker:         checker{eval: eval},
		registers:       registers,
		addressUnitBits: defaultAddressUnitBits,
	}
}

// inBlock returns a copy of v for an address block with aub bits per
// address unit and the given width.
func (v *RegisterFileValidator) inBlock(aub int64, width string) *RegisterFileValidator {
	c := *v
	c.addressUnitBits = aub
	c.blockWidth = width
	return &c
}

// Span returns the inclusive range of f in address units, relative to its
// parent. It fails with memory.ErrOverflow when the range ends past the
// last 64-bit address.
func (v *RegisterFileValidator) Span(f *model.RegisterFile) (begin, end uint64, err error) {
	offset, ok1 := v.unsigned(f.AddressOffset)
	size, ok2 := v.unsigned(f.Range)
	if !ok1 || !ok2 || size == 0 {
		return 0, 0, errNoSpan
	}
	n, err := v.replication(f.Dimension, f.MemoryArray)
	if err != nil {
		return 0, 0, err
	}
	stride, err := v.stride(f.MemoryArray, size)
	if err != nil {
		return 0, 0, err
	}
	end, err = memory.Last(offset, n, stride, size)
	return offset, end, err
}

// dataSpan is the range a register or register file takes in its parent.
type dataSpan struct {
	kind       string
	name       string
	present    bool
	begin, end uint64
	err        error
}

// spans lists the registers first, then the register files.
func (v *RegisterFileValidator) spans(regs []model.Register, files []model.RegisterFile) []dataSpan {
	out := make([]dataSpan, 0, len(regs)+len(files))
	for i := range regs {
		s := dataSpan{kind: "Register", name: regs[i].Name, present: v.present(regs[i].IsPresent)}
		s.begin, s.end, s.err = v.registers.Span(&regs[i], v.addressUnitBits)
		out = append(out, s)
	}
	for i := range files {
		s := dataSpan{kind: "Register file", name: files[i].Name, present: v.present(files[i].IsPresent)}
		s.begin, s.end, s.err = v.Span(&files[i])
		out = append(out, s)
	}
	return out
}

func dataReserve(spans []dataSpan) *memory.Reserve {
	var res memory.Reserve
	for _, s := range spans {
		if s.present && s.err == nil {
			res.AddArea(s.name, s.begin, s.end)
		}
	}
	return &res
}

func overflowingData(spans []dataSpan) []dataSpan {
	var out []dataSpan
	for _, s := range spans {
		if errors.Is(s.err, memory.ErrOverflow) {
			out = append(out, s)
		}
	}
	return out
}

// uncontainedData returns the spans reaching past size address units.
func uncontainedData(spans []dataSpan, size uint64) []dataSpan {
	var out []dataSpan
	for _, s := range spans {
		if s.err == nil && s.end >= size {
			out = append(out, s)
		}
	}
	return out
}

func registerFileNames(files []model.RegisterFile) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}

// sharedNames returns the register file names that a register also uses.
func sharedNames(regs []model.Register, files []model.RegisterFile) []string {
	taken := make(map[string]bool, len(regs))
	for _, r := range regs {
		taken[r.Name] = true
	}
	var shared []string
	for _, f := range files {
		if taken[f.Name] {
			shared = append(shared, f.Name)
		}
	}
	return shared
}

// oversized returns the registers wider than the enclosing address block.
func (v *RegisterFileValidator) oversized(regs []model.Register) []string {
	width, ok := v.unsigned(v.blockWidth)
	if !ok {
		return nil
	}
	var names []string
	for _, r := range regs {
		if size, ok := v.unsigned(r.Size); ok && size > width {
			names = append(names, r.Name)
		}
	}
	return names
}

// validData checks registers and register files sharing one parent,
// except for containment in the parent.
func (v *RegisterFileValidator) validData(regs []model.Register, files []model.RegisterFile) bool {
	if !NamesUnique(registerNames(regs)) || !NamesUnique(registerFileNames(files)) || len(sharedNames(regs, files)) > 0 {
		return false
	}
	for i := range regs {
		if !v.registers.Validate(&regs[i]) {
			return false
		}
	}
	for i := range files {
		if !v.Validate(&files[i]) {
			return false
		}
	}
	spans := v.spans(regs, files)
	return len(v.oversized(regs)) == 0 &&
		len(overflowingData(spans)) == 0 &&
		!dataReserve(spans).HasOverlap()
}

func (v *RegisterFileValidator) findErrorsInData(errs []string, regs []model.Register, files []model.RegisterFile,
	context string) []string {
	for i := range regs {
		errs = v.registers.FindErrorsIn(errs, &regs[i], context)
	}
	for i := range files {
		errs = v.FindErrorsIn(errs, &files[i], context)
	}
	errs = FindErrorsInNames(errs, "Register", registerNames(regs), context)
	errs = FindErrorsInNames(errs, "Register file", registerFileNames(files), context)
	for _, name := range sharedNames(regs, files) {
		errs = append(errs, fmt.Sprintf("Register file %s shares its name with a register within %s", name, context))
	}
	return errs
}

func (v *RegisterFileValidator) uncontained(f *model.RegisterFile, spans []dataSpan) []dataSpan {
	size, ok := v.unsigned(f.Range)
	if !ok {
		return nil
	}
	return uncontainedData(spans, size)
}

func hasRegisterData(f *model.RegisterFile) bool {
	return len(f.Registers)+len(f.RegisterFiles) > 0
}

// Validate reports whether f is valid. Reaching past the end of the
// parent is reported by the parent.
func (v *RegisterFileValidator) Validate(f *model.RegisterFile) bool {
	return validName(f.Name) &&
		v.presence(f.IsPresent) &&
		v.nonNegative(f.AddressOffset) &&
		v.positive(f.Range) &&
		v.registers.validDimension(f.Dimension) &&
		v.registers.validMemoryArray(f.MemoryArray) &&
		hasRegisterData(f) &&
		v.validData(f.Registers, f.RegisterFiles) &&
		len(v.uncontained(f, v.spans(f.Registers, f.RegisterFiles))) == 0 &&
		v.registers.policies.Validate(f.AccessPolicies)
}

// FindErrorsIn appends the defects of f.
func (v *RegisterFileValidator) FindErrorsIn(errs []string, f *model.RegisterFile, context string) []string {
	if !validName(f.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for register file %s within %s", f.Name, context))
	}
	if !v.presence(f.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for register file %s within %s", f.Name, context))
	}
	if !v.nonNegative(f.AddressOffset) {
		errs = append(errs, fmt.Sprintf("Invalid address offset set for register file %s within %s", f.Name, context))
	}
	if !v.positive(f.Range) {
		errs = append(errs, fmt.Sprintf("Invalid range set for register file %s within %s", f.Name, context))
	}
	if !v.registers.validDimension(f.Dimension) {
		errs = append(errs, fmt.Sprintf("Invalid dimension set for register file %s within %s", f.Name, context))
	}
	if !v.registers.validMemoryArray(f.MemoryArray) {
		errs = append(errs, fmt.Sprintf("Invalid memory array set for register file %s within %s", f.Name, context))
	}
	if !hasRegisterData(f) {
		errs = append(errs, fmt.Sprintf("Register file %s must contain at least one register or register file within %s",
			f.Name, context))
	}
	inner := within("register file", f.Name, context)
	errs = v.findErrorsInData(errs, f.Registers, f.RegisterFiles, inner)
	for _, r := range v.oversized(f.Registers) {
		errs = append(errs, fmt.Sprintf("Size of register %s is greater than the width of the containing address block within %s",
			r, inner))
	}
	spans := v.spans(f.Registers, f.RegisterFiles)
	for _, s := range overflowingData(spans) {
		errs = append(errs, fmt.Sprintf("%s %s within %s exceeds the 64-bit address space", s.kind, s.name, inner))
	}
	for _, s := range v.uncontained(f, spans) {
		errs = append(errs, fmt.Sprintf("%s %s is not contained within register file %s within %s",
			s.kind, s.name, f.Name, context))
	}
	errs = dataReserve(spans).FindErrorsInOverlap(errs, "Register data", inner)
	return v.registers.policies.FindErrorsIn(errs, f.AccessPolicies, inner)
}
