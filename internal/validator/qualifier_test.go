package validator

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

func TestQualifierRevisionGating(t *testing.T) {
	q := &model.Qualifier{Types: []model.QualifierType{
		model.QualifierClock, model.QualifierReset, model.QualifierAddress,
	}}

	old := NewQualifierValidator(revision.For(model.Revision2014))
	if old.Validate(q) {
		t.Errorf("Validate() under %s = true, want false", model.Revision2014)
	}
	want := []string{"Qualifier within port p within " + ctx + " has an illegal number of types"}
	if diff := cmp.Diff(want, old.FindErrorsIn(nil, q, "port p within "+ctx)); diff != "" {
		t.Errorf("FindErrorsIn() under %s mismatch (-want +got):\n%s", model.Revision2014, diff)
	}

	newer := NewQualifierValidator(revision.For(model.Revision2022))
	if !newer.Validate(q) {
		t.Errorf("Validate() under %s = false, want true", model.Revision2022)
	}
	if errs := newer.FindErrorsIn(nil, q, ctx); len(errs) != 0 {
		t.Errorf("FindErrorsIn() under %s = %q, want none", model.Revision2022, errs)
	}
}

func TestQualifierFindErrorsIn(t *testing.T) {
	tests := []struct {
		name      string
		revision  model.Revision
		qualifier model.Qualifier
		want      []string
	}{
		{
			name:      "address and data combine in 2014",
			revision:  model.Revision2014,
			qualifier: model.Qualifier{Types: []model.QualifierType{model.QualifierData, model.QualifierAddress}},
		},
		{
			name:      "clock and reset do not combine in 2014",
			revision:  model.Revision2014,
			qualifier: model.Qualifier{Types: []model.QualifierType{model.QualifierClock, model.QualifierReset}},
			want:      []string{"Qualifier types clock, reset are an illegal combination within " + ctx},
		},
		{
			name:      "type unknown to 2014",
			revision:  model.Revision2014,
			qualifier: model.Qualifier{Types: []model.QualifierType{model.QualifierValid}},
			want:      []string{"Qualifier type valid is not allowed in 1685-2014 within " + ctx},
		},
		{
			name:      "no types",
			revision:  model.Revision2022,
			qualifier: model.Qualifier{},
			want:      []string{"Qualifier within " + ctx + " has no types"},
		},
		{
			name:      "repeated type",
			revision:  model.Revision2022,
			qualifier: model.Qualifier{Types: []model.QualifierType{model.QualifierReset, model.QualifierReset}},
			want:      []string{"Qualifier type reset is repeated within " + ctx},
		},
		{
			name:     "bad reset level",
			revision: model.Revision2022,
			qualifier: model.Qualifier{
				Types:      []model.QualifierType{model.QualifierReset},
				ResetLevel: "medium",
			},
			want: []string{"Invalid reset level medium set for qualifier within " + ctx},
		},
		{
			name:     "flow control needs a flow type",
			revision: model.Revision2022,
			qualifier: model.Qualifier{
				Types: []model.QualifierType{model.QualifierFlowControl},
			},
			want: []string{"Invalid flow type  set for qualifier within " + ctx},
		},
		{
			name:     "user flow type must be named",
			revision: model.Revision2022,
			qualifier: model.Qualifier{
				Types:    []model.QualifierType{model.QualifierFlowControl},
				FlowType: "user",
			},
			want: []string{"Invalid flow type user set for qualifier within " + ctx},
		},
		{
			name:     "user type needs a definition",
			revision: model.Revision2022,
			qualifier: model.Qualifier{
				Types: []model.QualifierType{model.QualifierUser},
			},
			want: []string{"User defined value must be set for user qualifier within " + ctx},
		},
		{
			name:     "complete flow control",
			revision: model.Revision2022,
			qualifier: model.Qualifier{
				Types:        []model.QualifierType{model.QualifierFlowControl},
				FlowType:     "user",
				UserFlowType: "credit",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewQualifierValidator(revision.For(tt.revision))
			got := v.FindErrorsIn(nil, &tt.qualifier, ctx)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindErrorsIn() mismatch (-want +got):\n%s", diff)
			}
			if valid := v.Validate(&tt.qualifier); valid != (len(tt.want) == 0) {
				t.Errorf("Validate() = %v, want %v", valid, len(tt.want) == 0)
			}
		})
	}
}
