package resolver

import (
	"testing"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/model"
)

func testComponent() *model.Component {
	return &model.Component{
		Parameters: []model.Parameter{
			{ID: "uuid_width", Name: "width", Value: "32"},
			{Name: "depth", Value: "uuid_width * 4"},
		},
		MemoryMaps: []model.MemoryMap{{
			Name: "regs",
			AddressBlocks: []model.AddressBlock{{
				Name:       "block",
				Parameters: []model.Parameter{{Name: "blockParam", Value: "7"}},
				Registers: []model.Register{{
					Name:       "ctrl",
					Parameters: []model.Parameter{{Name: "regParam", Value: "3"}},
				}},
				RegisterFiles: []model.RegisterFile{{
					Name: "dma",
					RegisterFiles: []model.RegisterFile{{
						Name: "ch0",
						Registers: []model.Register{{
							Name:       "len",
							Parameters: []model.Parameter{{Name: "lenParam", Value: "9"}},
						}},
					}},
				}},
			}},
		}},
		Model: model.Model{
			Views: []model.View{
				{Name: "rtl", ComponentInstantiationRef: "rtl_impl"},
				{Name: "doc"},
			},
			ComponentInstantiations: []model.ComponentInstantiation{{
				Name:       "rtl_impl",
				Parameters: []model.Parameter{{Name: "depth", Value: "64"}},
				ModuleParameters: []model.ModuleParameter{
					{Parameter: model.Parameter{ID: "uuid_width", Name: "WIDTH", Value: "16"}},
				},
			}},
		},
	}
}

func TestParameterFinderResolve(t *testing.T) {
	tests := []struct {
		name   string
		view   string
		id     string
		want   string
		wantOK bool
	}{
		{"id takes precedence over name", "", "uuid_width", "32", true},
		{"name is not an id when id is set", "", "width", "", false},
		{"name used when id is empty", "", "depth", "uuid_width * 4", true},
		{"nested block parameter", "", "blockParam", "7", true},
		{"nested register parameter", "", "regParam", "3", true},
		{"register file parameter", "", "lenParam", "9", true},
		{"unknown", "", "missing", "", false},
		{"empty id", "", "", "", false},
		{"module parameter shadows", "rtl", "uuid_width", "16", true},
		{"instantiation parameter shadows", "rtl", "depth", "64", true},
		{"view falls back to document", "rtl", "blockParam", "7", true},
		{"view without instantiation", "doc", "uuid_width", "32", true},
		{"unknown view", "nope", "depth", "uuid_width * 4", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := NewParameterFinder(testComponent())
			f.SetActiveView(test.view)
			got, ok := f.Resolve(test.id)
			if got != test.want || ok != test.wantOK {
				t.Errorf("Resolve(%q) = %q, %v, want %q, %v", test.id, got, ok, test.want, test.wantOK)
			}
		})
	}
}

func TestParameterFinderSeesEdits(t *testing.T) {
	c := testComponent()
	f := NewParameterFinder(c)
	e := expression.New(f)

	got, err := e.EvaluateInt("depth")
	if err != nil || got != 128 {
		t.Fatalf("EvaluateInt(depth) = %d, %v, want 128", got, err)
	}

	c.Parameters[0].Value = "8"
	got, err = e.EvaluateInt("depth")
	if err != nil || got != 32 {
		t.Errorf("after edit EvaluateInt(depth) = %d, %v, want 32", got, err)
	}

	f.SetActiveView("rtl")
	if f.Scope() != ScopeView {
		t.Errorf("Scope() = %v, want %v", f.Scope(), ScopeView)
	}
	got, err = e.EvaluateInt("depth")
	if err != nil || got != 64 {
		t.Errorf("view EvaluateInt(depth) = %d, %v, want 64", got, err)
	}

	f.SetActiveView("")
	if f.Scope() != ScopeDocument {
		t.Errorf("Scope() = %v, want %v", f.Scope(), ScopeDocument)
	}
}

func TestListFinder(t *testing.T) {
	f := NewListFinder(
		[]model.Parameter{{Name: "a", Value: "1"}},
		[]model.Parameter{{Name: "a", Value: "2"}, {ID: "id_b", Name: "b", Value: "a + 1"}},
	)
	f.Add([]model.Parameter{{Name: "c", Value: "id_b * 2"}})

	if got, ok := f.Resolve("a"); !ok || got != "1" {
		t.Errorf("Resolve(a) = %q, %v, want \"1\", true", got, ok)
	}
	if _, ok := f.Resolve("b"); ok {
		t.Error("Resolve(b) succeeded, want id lookup only")
	}
	got, err := expression.New(f).EvaluateInt("c")
	if err != nil || got != 4 {
		t.Errorf("EvaluateInt(c) = %d, %v, want 4", got, err)
	}
}
