package validator

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

func TestBusDefinitionFindErrorsIn(t *testing.T) {
	const bctx = "bus definition acme:ip:apb4:1.0"
	extends := func(name string) *model.VLNV {
		id := vlnv(name)
		return &id
	}
	tests := []struct {
		name string
		bus  model.BusDefinition
		want []string
	}{
		{
			name: "extends a known bus",
			bus:  model.BusDefinition{Extends: extends("apb"), MaxInitiators: "1", MaxTargets: "16", SystemGroupNames: []string{"clk", "rst"}},
		},
		{
			name: "extends itself",
			bus:  model.BusDefinition{Extends: extends("apb4")},
			want: []string{"Invalid extended bus definition acme:ip:apb4:1.0 set within " + bctx},
		},
		{
			name: "extends an unknown bus",
			bus:  model.BusDefinition{Extends: extends("ahb")},
			want: []string{"Invalid extended bus definition acme:ip:ahb:1.0 set within " + bctx},
		},
		{
			name: "negative limits",
			bus:  model.BusDefinition{MaxInitiators: "0-1", MaxTargets: "x"},
			want: []string{
				"Invalid maximum initiators 0-1 set within " + bctx,
				"Invalid maximum targets x set within " + bctx,
			},
		},
		{
			name: "system group names",
			bus:  model.BusDefinition{SystemGroupNames: []string{"clk", " ", "clk"}},
			want: []string{
				"Empty system group name set within " + bctx,
				"System group name clk within " + bctx + " is not unique.",
			},
		},
	}
	v := NewBusDefinitionValidator(evaluator(nil), testLibrary(t), revision.For(model.Revision2022))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.bus.VLNV = vlnv("apb4")
			if diff := cmp.Diff(tt.want, v.FindErrorsIn(nil, &tt.bus, bctx)); diff != "" {
				t.Errorf("FindErrorsIn() mismatch (-want +got):\n%s", diff)
			}
			if valid := v.Validate(&tt.bus); valid != (len(tt.want) == 0) {
				t.Errorf("Validate() = %v, want %v", valid, len(tt.want) == 0)
			}
		})
	}
}

func TestAbstractionDefinitionFindErrorsIn(t *testing.T) {
	const actx = "abstraction definition acme:ip:apb_rtl:1.0"
	clk := model.PortAbstraction{LogicalName: "clk", Wire: &model.WireAbstraction{Width: "1"}}
	req := model.PortAbstraction{LogicalName: "req", Transactional: &model.TransactionalAbstraction{Initiative: "requires"}}
	tests := []struct {
		name string
		abs  model.AbstractionDefinition
		want []string
	}{
		{
			name: "wire and transactional ports",
			abs:  model.AbstractionDefinition{BusType: vlnv("apb"), Ports: []model.PortAbstraction{clk, req}},
		},
		{
			name: "missing bus type",
			abs:  model.AbstractionDefinition{Ports: []model.PortAbstraction{clk}},
			want: []string{"Invalid bus type set within " + actx},
		},
		{
			name: "unknown bus type",
			abs:  model.AbstractionDefinition{BusType: vlnv("ahb"), Ports: []model.PortAbstraction{clk}},
			want: []string{"Could not find bus definition acme:ip:ahb:1.0 referenced within " + actx},
		},
		{
			name: "no ports",
			abs:  model.AbstractionDefinition{BusType: vlnv("apb")},
			want: []string{"No ports found within " + actx},
		},
		{
			name: "port of both styles",
			abs: model.AbstractionDefinition{BusType: vlnv("apb"), Ports: []model.PortAbstraction{{
				LogicalName:   "clk",
				Wire:          &model.WireAbstraction{},
				Transactional: &model.TransactionalAbstraction{},
			}}},
			want: []string{"Port clk within " + actx + " must be either wire or transactional"},
		},
		{
			name: "zero width",
			abs: model.AbstractionDefinition{BusType: vlnv("apb"), Ports: []model.PortAbstraction{
				{LogicalName: "clk", Wire: &model.WireAbstraction{Width: "0"}},
			}},
			want: []string{"Invalid width set for port clk within " + actx},
		},
		{
			name: "unknown initiative",
			abs: model.AbstractionDefinition{BusType: vlnv("apb"), Ports: []model.PortAbstraction{
				{LogicalName: "req", Transactional: &model.TransactionalAbstraction{Initiative: "maybe"}},
			}},
			want: []string{"Invalid initiative maybe set for port req within " + actx},
		},
		{
			name: "duplicate logical ports",
			abs:  model.AbstractionDefinition{BusType: vlnv("apb"), Ports: []model.PortAbstraction{clk, clk}},
			want: []string{"Logical port name clk within " + actx + " is not unique."},
		},
	}
	v := NewAbstractionDefinitionValidator(evaluator(nil), testLibrary(t), revision.For(model.Revision2022))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.abs.VLNV = vlnv("apb_rtl")
			if diff := cmp.Diff(tt.want, v.FindErrorsIn(nil, &tt.abs, actx)); diff != "" {
				t.Errorf("FindErrorsIn() mismatch (-want +got):\n%s", diff)
			}
			if valid := v.Validate(&tt.abs); valid != (len(tt.want) == 0) {
				t.Errorf("Validate() = %v, want %v", valid, len(tt.want) == 0)
			}
		})
	}
}
