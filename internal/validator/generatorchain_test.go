package validator

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

func TestGeneratorChainFindErrorsIn(t *testing.T) {
	const gctx = "generator chain acme:ip:flow2:1.0"
	gen := model.Generator{Name: "gen", Phase: "1.5", APIType: "TGI_2022_BASE", TransportMethods: []string{"file"}, GeneratorExe: "run.sh"}
	tests := []struct {
		name  string
		chain model.GeneratorChain
		want  []string
	}{
		{
			name: "selector and generator",
			chain: model.GeneratorChain{
				GeneratorChainSelectors: []model.VLNV{vlnv("flow")},
				Generators:              []model.Generator{gen},
			},
		},
		{
			name:  "no members",
			chain: model.GeneratorChain{},
			want:  []string{"At least one generator or selector must be set within " + gctx},
		},
		{
			name:  "selects itself",
			chain: model.GeneratorChain{GeneratorChainSelectors: []model.VLNV{vlnv("flow2")}},
			want:  []string{"Could not find generator chain acme:ip:flow2:1.0 selected within " + gctx},
		},
		{
			name:  "selects an unknown chain",
			chain: model.GeneratorChain{GeneratorChainSelectors: []model.VLNV{vlnv("other")}},
			want:  []string{"Could not find generator chain acme:ip:other:1.0 selected within " + gctx},
		},
		{
			name:  "blank component generator selector",
			chain: model.GeneratorChain{ComponentGeneratorSelectors: []string{" "}},
			want:  []string{"Empty component generator selector set within " + gctx},
		},
		{
			name: "chain groups",
			chain: model.GeneratorChain{
				ChainGroups:                 []string{"lint", "", "lint"},
				ComponentGeneratorSelectors: []string{"docs"},
			},
			want: []string{
				"Empty chain group set within " + gctx,
				"Chain group name lint within " + gctx + " is not unique.",
			},
		},
		{
			name: "malformed generator",
			chain: model.GeneratorChain{Generators: []model.Generator{
				{Name: "gen", Phase: "early", APIType: "TGI", TransportMethods: []string{"soap"}},
			}},
			want: []string{
				"Invalid phase value set for generator gen within " + gctx,
				"Invalid API type TGI set for generator gen within " + gctx,
				"Invalid transport methods set for generator gen within " + gctx,
				"Invalid generator exe set for generator gen within " + gctx,
			},
		},
		{
			name:  "duplicate generators",
			chain: model.GeneratorChain{Generators: []model.Generator{gen, gen}},
			want:  []string{"Generator name gen within " + gctx + " is not unique."},
		},
	}
	v := NewGeneratorChainValidator(evaluator(nil), testLibrary(t), revision.For(model.Revision2022))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.chain.VLNV = vlnv("flow2")
			if diff := cmp.Diff(tt.want, v.FindErrorsIn(nil, &tt.chain, gctx)); diff != "" {
				t.Errorf("FindErrorsIn() mismatch (-want +got):\n%s", diff)
			}
			if valid := v.Validate(&tt.chain); valid != (len(tt.want) == 0) {
				t.Errorf("Validate() = %v, want %v", valid, len(tt.want) == 0)
			}
		})
	}
}

func TestComponentGeneratorScope(t *testing.T) {
	v := NewComponentGeneratorValidator(evaluator(nil), revision.For(model.Revision2022))
	g := &model.ComponentGenerator{
		Generator: model.Generator{Name: "docs", GeneratorExe: "docs.sh"},
		Scope:     "global",
	}
	want := []string{"Invalid scope global set for component generator docs within " + ctx}
	if diff := cmp.Diff(want, v.FindErrorsIn(nil, g, ctx)); diff != "" {
		t.Errorf("FindErrorsIn() mismatch (-want +got):\n%s", diff)
	}
	if v.Validate(g) {
		t.Error("Validate() = true, want false")
	}
}
