package validator

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/model"
)

func TestViewMissingInstantiation(t *testing.T) {
	m := &model.Model{
		Views: []model.View{{Name: "rtl", ComponentInstantiationRef: "foo"}},
	}
	v := NewViewValidator(expression.New(expression.NoParameters), m)

	if v.Validate(&m.Views[0]) {
		t.Error("Validate() = true, want false")
	}
	errs := v.FindErrorsIn(nil, &m.Views[0], ctx)
	want := []string{"Component instantiation foo referenced by view rtl within " + ctx + " was not found"}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("FindErrorsIn() mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(errs[0], "foo") {
		t.Errorf("error %q does not name the missing instantiation", errs[0])
	}
}

func TestViewFindErrorsIn(t *testing.T) {
	m := &model.Model{
		ComponentInstantiations:           []model.ComponentInstantiation{{Name: "impl"}},
		DesignInstantiations:              []model.DesignInstantiation{{Name: "hier"}},
		DesignConfigurationInstantiations: []model.DesignConfigurationInstantiation{{Name: "cfg"}},
	}
	tests := []struct {
		name string
		view model.View
		want []string
	}{
		{
			name: "all references resolve",
			view: model.View{
				Name:                                "rtl",
				EnvIdentifiers:                      []string{"verilog:Synopsys:", "::", "vhdl.93:*:*"},
				ComponentInstantiationRef:           "impl",
				DesignInstantiationRef:              "hier",
				DesignConfigurationInstantiationRef: "cfg",
			},
		},
		{
			name: "blank name",
			view: model.View{Name: " "},
			want: []string{"Invalid name specified for view   within " + ctx},
		},
		{
			name: "malformed environment identifiers",
			view: model.View{Name: "rtl", EnvIdentifiers: []string{"verilog", "a:b:c:d", "a b::"}},
			want: []string{
				"Invalid environment identifier verilog set for view rtl within " + ctx,
				"Invalid environment identifier a:b:c:d set for view rtl within " + ctx,
				"Invalid environment identifier a b:: set for view rtl within " + ctx,
			},
		},
		{
			name: "unknown design references",
			view: model.View{Name: "rtl", DesignInstantiationRef: "x", DesignConfigurationInstantiationRef: "y"},
			want: []string{
				"Design instantiation x referenced by view rtl within " + ctx + " was not found",
				"Design configuration instantiation y referenced by view rtl within " + ctx + " was not found",
			},
		},
		{
			name: "isPresent out of range",
			view: model.View{Name: "rtl", IsPresent: "3"},
			want: []string{"Invalid isPresent set for view rtl within " + ctx},
		},
	}
	v := NewViewValidator(expression.New(expression.NoParameters), m)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, v.FindErrorsIn(nil, &tt.view, ctx)); diff != "" {
				t.Errorf("FindErrorsIn() mismatch (-want +got):\n%s", diff)
			}
			if valid := v.Validate(&tt.view); valid != (len(tt.want) == 0) {
				t.Errorf("Validate() = %v, want %v", valid, len(tt.want) == 0)
			}
		})
	}
}
