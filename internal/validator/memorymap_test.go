package validator

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

func memoryComponent() *model.Component {
	return &model.Component{
		Modes:       []model.Mode{{Name: "fast"}, {Name: "slow"}},
		RemapStates: []model.RemapState{{Name: "init"}},
		ResetTypes:  []model.ResetType{{Name: "soft"}},
	}
}

func block(name, base, size, width string) model.AddressBlock {
	return model.AddressBlock{Name: name, BaseAddress: base, Range: size, Width: width}
}

func TestMemoryMapBlockOverlap(t *testing.T) {
	m := &model.MemoryMap{
		Name:          "regs",
		AddressBlocks: []model.AddressBlock{block("a", "0", "256", "32"), block("b", "128", "256", "32")},
	}
	v := NewMemoryMapValidator(evaluator(nil), memoryComponent(), revision.For(model.Revision2022))
	if v.Validate(m) {
		t.Error("Validate() = true, want false")
	}
	want := []string{"Address blocks a and b overlap within memory map regs within " + ctx}
	if diff := cmp.Diff(want, v.FindErrorsIn(nil, m, ctx)); diff != "" {
		t.Errorf("FindErrorsIn() mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryMapHighAddresses(t *testing.T) {
	const inner = "memory map regs within " + ctx
	tests := []struct {
		name   string
		blocks []model.AddressBlock
		want   []string
	}{
		{
			name:   "overlap above the signed range",
			blocks: []model.AddressBlock{block("a", "'h7FFFFFFFFFFFFFF0", "'h20", "32"), block("b", "'h7FFFFFFFFFFFFFF8", "'h4", "32")},
			want:   []string{"Address blocks a and b overlap within " + inner},
		},
		{
			name:   "block in the upper half",
			blocks: []model.AddressBlock{block("hi", "'hFFFFFFFF00000000", "'h1000", "32")},
		},
		{
			name:   "block ending on the last address",
			blocks: []model.AddressBlock{block("top", "'hFFFFFFFFFFFFF000", "'h1000", "32")},
		},
		{
			name:   "block past the last address",
			blocks: []model.AddressBlock{block("top", "'hFFFFFFFFFFFFF000", "'h1001", "32")},
			want:   []string{"Address block top within " + inner + " exceeds the 64-bit address space"},
		},
		{
			name:   "base beyond 64 bits",
			blocks: []model.AddressBlock{block("big", "'h10000000000000000", "'h10", "32")},
			want:   []string{"Invalid base address set for address block big within " + inner},
		},
		{
			name: "register past the last address",
			blocks: []model.AddressBlock{{
				Name: "top", BaseAddress: "0", Range: "'hFFFFFFFFFFFFFFFF", Width: "32",
				Registers: []model.Register{{
					Name: "r", AddressOffset: "'hFFFFFFFFFFFFFFFE", Size: "32",
					Fields: []model.Field{field("f", "0", "32")},
				}},
			}},
			want: []string{
				"Register r within address block top within " + inner + " exceeds the 64-bit address space",
			},
		},
	}
	v := NewMemoryMapValidator(evaluator(nil), memoryComponent(), revision.For(model.Revision2022))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check(t, v, &model.MemoryMap{Name: "regs", AddressBlocks: tt.blocks}, tt.want)
		})
	}
}

func TestMemoryMapFindErrorsIn(t *testing.T) {
	const inner = "memory map regs within " + ctx
	tests := []struct {
		name     string
		revision model.Revision
		memory   model.MemoryMap
		want     []string
	}{
		{
			name:   "adjacent blocks",
			memory: model.MemoryMap{Name: "regs", AddressBlocks: []model.AddressBlock{block("a", "0", "'h100", "32"), block("b", "'h100", "'h100", "32")}},
		},
		{
			name:   "block absent from the map",
			memory: model.MemoryMap{Name: "regs", AddressBlocks: []model.AddressBlock{block("a", "0", "256", "32"), {Name: "b", IsPresent: "0", BaseAddress: "0", Range: "16", Width: "32"}}},
		},
		{
			name:   "width not a multiple of the unit",
			memory: model.MemoryMap{Name: "regs", AddressBlocks: []model.AddressBlock{block("a", "0", "256", "12")}},
			want:   []string{"Width of address block a is not a multiple of the address unit bits within " + inner},
		},
		{
			name:   "custom unit",
			memory: model.MemoryMap{Name: "regs", AddressUnitBits: "16", AddressBlocks: []model.AddressBlock{block("a", "0", "256", "24")}},
			want:   []string{"Width of address block a is not a multiple of the address unit bits within " + inner},
		},
		{
			name:   "zero unit",
			memory: model.MemoryMap{Name: "regs", AddressUnitBits: "0", AddressBlocks: []model.AddressBlock{block("a", "0", "256", "32")}},
			want:   []string{"Invalid address unit bits set for memory map regs within " + ctx},
		},
		{
			name:   "duplicate block names",
			memory: model.MemoryMap{Name: "regs", AddressBlocks: []model.AddressBlock{block("a", "0", "256", "32"), block("a", "512", "256", "32")}},
			want:   []string{"Address block name a within " + inner + " is not unique."},
		},
		{
			name: "remap selected twice by one mode",
			memory: model.MemoryMap{Name: "regs", MemoryRemaps: []model.MemoryRemap{
				{Name: "boot", ModeRefs: []model.ModeReference{{Priority: 1, Value: "fast"}, {Priority: 2, Value: "fast"}}},
			}},
			want: []string{"Mode reference value fast is not unique within memory remap boot within " + inner},
		},
		{
			name: "remaps sharing a mode",
			memory: model.MemoryMap{Name: "regs", MemoryRemaps: []model.MemoryRemap{
				{Name: "boot", ModeRefs: []model.ModeReference{{Priority: 1, Value: "fast"}}},
				{Name: "run", ModeRefs: []model.ModeReference{{Priority: 2, Value: "fast"}}},
			}},
			want: []string{
				"Mode reference value fast is not unique within memory remap boot within " + inner,
				"Mode reference value fast is not unique within memory remap run within " + inner,
			},
		},
		{
			name: "remaps with distinct modes",
			memory: model.MemoryMap{Name: "regs", MemoryRemaps: []model.MemoryRemap{
				{Name: "boot", ModeRefs: []model.ModeReference{{Priority: 1, Value: "fast"}}},
				{Name: "run", ModeRefs: []model.ModeReference{{Priority: 2, Value: "slow"}}},
			}},
		},
		{
			name: "remap without modes",
			memory: model.MemoryMap{Name: "regs", MemoryRemaps: []model.MemoryRemap{
				{Name: "boot"},
			}},
			want: []string{"Memory remap boot within " + inner + " must have at least one mode reference"},
		},
		{
			name: "remap state in 2022",
			memory: model.MemoryMap{Name: "regs", MemoryRemaps: []model.MemoryRemap{
				{Name: "boot", RemapState: "init"},
			}},
			want: []string{"Remap states are not allowed in 1685-2022 within memory remap boot within " + inner},
		},
		{
			name:     "remap state in 2014",
			revision: model.Revision2014,
			memory: model.MemoryMap{Name: "regs", MemoryRemaps: []model.MemoryRemap{
				{Name: "boot", RemapState: "init", AddressBlocks: []model.AddressBlock{block("a", "0", "16", "32")}},
			}},
		},
		{
			name:     "unknown remap state",
			revision: model.Revision2014,
			memory: model.MemoryMap{Name: "regs", MemoryRemaps: []model.MemoryRemap{
				{Name: "boot", RemapState: "sleep"},
			}},
			want: []string{"Could not find remap state sleep referenced by memory remap boot within " + inner},
		},
		{
			name:     "mode references in 2014",
			revision: model.Revision2014,
			memory: model.MemoryMap{Name: "regs", MemoryRemaps: []model.MemoryRemap{
				{Name: "boot", RemapState: "init", ModeRefs: []model.ModeReference{{Priority: 1, Value: "fast"}}},
			}},
			want: []string{"Mode references are not allowed in 1685-2014 within memory remap boot within " + inner},
		},
		{
			name: "overlap inside a remap",
			memory: model.MemoryMap{Name: "regs", MemoryRemaps: []model.MemoryRemap{
				{
					Name:          "boot",
					ModeRefs:      []model.ModeReference{{Priority: 1, Value: "fast"}},
					AddressBlocks: []model.AddressBlock{block("a", "0", "16", "32"), block("b", "8", "16", "32")},
				},
			}},
			want: []string{"Address blocks a and b overlap within memory remap boot within " + inner},
		},
		{
			name: "duplicate remap names",
			memory: model.MemoryMap{Name: "regs", MemoryRemaps: []model.MemoryRemap{
				{Name: "boot", ModeRefs: []model.ModeReference{{Priority: 1, Value: "fast"}}},
				{Name: "boot", ModeRefs: []model.ModeReference{{Priority: 2, Value: "slow"}}},
			}},
			want: []string{"Memory remap name boot within " + inner + " is not unique."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewMemoryMapValidator(evaluator(nil), memoryComponent(), revision.For(tt.revision))
			if diff := cmp.Diff(tt.want, v.FindErrorsIn(nil, &tt.memory, ctx)); diff != "" {
				t.Errorf("FindErrorsIn() mismatch (-want +got):\n%s", diff)
			}
			if valid := v.Validate(&tt.memory); valid != (len(tt.want) == 0) {
				t.Errorf("Validate() = %v, want %v", valid, len(tt.want) == 0)
			}
		})
	}
}
