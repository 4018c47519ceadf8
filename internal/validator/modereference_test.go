package validator

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ipxcheck/internal/model"
)

func TestModeReferenceDuplicateValueInRemap(t *testing.T) {
	v := NewModeReferenceValidator([]string{"fast", "slow"})
	refs := []model.ModeReference{{Priority: 1, Value: "fast"}, {Priority: 2, Value: "fast"}}

	for i, r := range refs {
		if v.ValueIsValid(r.Value, refs) {
			t.Errorf("ValueIsValid(refs[%d]) = true, want false", i)
		}
	}
	group := ModeReferences{Refs: refs, Remap: true}
	if v.Validate(group) {
		t.Error("Validate() = true, want false")
	}
	want := []string{"Mode reference value fast is not unique within " + ctx}
	if diff := cmp.Diff(want, v.FindErrorsIn(nil, group, ctx)); diff != "" {
		t.Errorf("FindErrorsIn() mismatch (-want +got):\n%s", diff)
	}
}

func TestModeReferenceDuplicatePriorityInAccessPolicy(t *testing.T) {
	v := NewModeReferenceValidator([]string{"fast", "slow"})
	refs := []model.ModeReference{{Priority: 1, Value: "fast"}, {Priority: 1, Value: "slow"}}

	for i, r := range refs {
		if !v.PriorityIsValid(r.Priority, refs, false) {
			t.Errorf("PriorityIsValid(refs[%d]) = false, want true", i)
		}
	}
	group := ModeReferences{Refs: refs}
	if !v.Validate(group) {
		t.Error("Validate() = false, want true")
	}
	if errs := v.FindErrorsIn(nil, group, ctx); len(errs) != 0 {
		t.Errorf("FindErrorsIn() = %q, want none", errs)
	}
}

func TestModeReferenceFindErrorsIn(t *testing.T) {
	tests := []struct {
		name  string
		group ModeReferences
		want  []string
	}{
		{
			name:  "duplicate priority in remap",
			group: ModeReferences{Refs: []model.ModeReference{{Priority: 1, Value: "fast"}, {Priority: 1, Value: "slow"}}, Remap: true},
			want:  []string{"Mode reference priority 1 is not unique within " + ctx},
		},
		{
			name:  "unknown mode",
			group: ModeReferences{Refs: []model.ModeReference{{Priority: 1, Value: "turbo"}}},
			want:  []string{"Mode turbo referenced within " + ctx + " does not exist"},
		},
		{
			name:  "empty value",
			group: ModeReferences{Refs: []model.ModeReference{{Priority: 1, Value: ""}}},
			want:  []string{"Mode reference value is empty within " + ctx},
		},
		{
			name: "value used by a sibling",
			group: ModeReferences{
				Refs:   []model.ModeReference{{Priority: 1, Value: "fast"}},
				Others: []model.ModeReference{{Priority: 2, Value: "fast"}},
				Remap:  true,
			},
			want: []string{"Mode reference value fast is not unique within " + ctx},
		},
		{
			name: "distinct values and priorities",
			group: ModeReferences{
				Refs:   []model.ModeReference{{Priority: 1, Value: "fast"}},
				Others: []model.ModeReference{{Priority: 2, Value: "slow"}},
				Remap:  true,
			},
		},
	}
	v := NewModeReferenceValidator([]string{"fast", "slow"})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, v.FindErrorsIn(nil, tt.group, ctx)); diff != "" {
				t.Errorf("FindErrorsIn() mismatch (-want +got):\n%s", diff)
			}
			if valid := v.Validate(tt.group); valid != (len(tt.want) == 0) {
				t.Errorf("Validate() = %v, want %v", valid, len(tt.want) == 0)
			}
		})
	}
}
