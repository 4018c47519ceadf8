package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"

	"ipxcheck/internal/model"
)

func vlnv(name string) model.VLNV {
	return model.VLNV{Vendor: "acme", Library: "ip", Name: name, Version: "1.0"}
}

func header(name string) model.Header {
	return model.Header{VLNV: vlnv(name), Revision: model.Revision2022}
}

// testDocuments returns one valid document of every kind, referring to
// one another.
func testDocuments() []model.Document {
	return []model.Document{
		&model.Component{
			Header:     header("uart"),
			Parameters: []model.Parameter{{Name: "WIDTH", Value: "8", Type: "int"}},
			Model: model.Model{
				Ports: []model.Port{{Name: "tx", Wire: &model.Wire{
					Direction: "out",
					Vectors:   []model.Vector{{Left: "WIDTH-1", Right: "0"}},
				}}},
			},
		},
		&model.BusDefinition{Header: header("apb")},
		&model.AbstractionDefinition{
			Header:  header("apb_rtl"),
			BusType: vlnv("apb"),
			Ports:   []model.PortAbstraction{{LogicalName: "pclk", Wire: &model.WireAbstraction{Width: "1"}}},
		},
		&model.Design{
			Header:             header("soc"),
			ComponentInstances: []model.ComponentInstance{{InstanceName: "u0", ComponentRef: model.ConfigurableVLNV{VLNV: vlnv("uart")}}},
		},
		&model.DesignConfiguration{Header: header("soc_cfg"), DesignRef: vlnv("soc")},
		&model.Catalog{
			Header:     header("cat"),
			Components: []model.IpxactFile{{VLNV: vlnv("uart"), Name: "uart.yaml"}},
		},
		&model.GeneratorChain{
			Header:     header("flow"),
			Generators: []model.Generator{{Name: "lint", GeneratorExe: "lint.sh"}},
		},
	}
}

func testLibrary(t *testing.T, docs []model.Document) *model.Library {
	t.Helper()
	lib := model.NewLibrary()
	for _, doc := range docs {
		if err := lib.Add(doc); err != nil {
			t.Fatalf("Add(%s) failed: %v", doc.Identity(), err)
		}
	}
	return lib
}

func TestValidateEveryKind(t *testing.T) {
	docs := testDocuments()
	d := New(testLibrary(t, docs), Options{})
	for _, doc := range docs {
		t.Run(string(doc.Kind()), func(t *testing.T) {
			res := d.Validate(doc)
			want := &Result{
				Document: doc.Identity(),
				Kind:     doc.Kind(),
				Revision: model.Revision2022,
				Valid:    true,
				State:    StateAggregated,
			}
			if diff := cmp.Diff(want, res, cmpopts.IgnoreFields(Result{}, "ID")); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
			if res.ID == uuid.Nil {
				t.Error("Validate() returned a result without an ID")
			}
		})
	}
}

func TestValidateNilDocument(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Validate(nil) did not panic")
		}
	}()
	New(nil, Options{}).Validate(nil)
}

func TestValidateRevisionOverride(t *testing.T) {
	c := &model.Component{
		Header: header("uart"),
		Model: model.Model{Ports: []model.Port{{
			Name: "clk",
			Wire: &model.Wire{Direction: "in"},
			Qualifier: &model.Qualifier{Types: []model.QualifierType{
				model.QualifierClock, model.QualifierReset, model.QualifierAddress,
			}},
		}}},
	}
	tests := []struct {
		name     string
		override model.Revision
		want     *Result
	}{
		{
			name: "declared revision",
			want: &Result{Document: vlnv("uart"), Kind: model.KindComponent, Revision: model.Revision2022, Valid: true, State: StateAggregated},
		},
		{
			name:     "older revision",
			override: model.Revision2014,
			want: &Result{
				Document: vlnv("uart"),
				Kind:     model.KindComponent,
				Revision: model.Revision2014,
				Errors:   []string{"Qualifier within port clk within component acme:ip:uart:1.0 has an illegal number of types"},
				State:    StateAggregated,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New(nil, Options{Revision: tt.override}).Validate(c)
			if diff := cmp.Diff(tt.want, res, cmpopts.IgnoreFields(Result{}, "ID")); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateComponent(t *testing.T) {
	const where = "component acme:ip:uart:1.0"
	tests := []struct {
		name      string
		component model.Component
		want      []string
	}{
		{
			name: "duplicate names",
			component: model.Component{
				Parameters: []model.Parameter{{Name: "WIDTH", Value: "8"}, {Name: "WIDTH", Value: "16"}},
				Model: model.Model{Ports: []model.Port{
					{Name: "clk", Wire: &model.Wire{Direction: "in"}},
					{Name: "clk", Wire: &model.Wire{Direction: "in"}},
				}},
			},
			want: []string{
				"Parameter name WIDTH within " + where + " is not unique.",
				"Port name clk within " + where + " is not unique.",
			},
		},
		{
			name: "parameter referring to an unknown parameter",
			component: model.Component{
				Parameters: []model.Parameter{{Name: "DEPTH", Value: "WIDTH * 2"}},
			},
			want: []string{"Value 'WIDTH * 2' is not valid for type untyped in parameter DEPTH within " + where},
		},
		{
			name: "parameters referring to one another by id",
			component: model.Component{
				Parameters: []model.Parameter{
					{ID: "w", Name: "WIDTH", Value: "8"},
					{ID: "d", Name: "DEPTH", Value: "w * 2", Type: "int", Maximum: "16"},
				},
			},
		},
		{
			name: "instantiation parameters visible in its view",
			component: model.Component{
				Model: model.Model{
					Views: []model.View{{Name: "rtl", ComponentInstantiationRef: "impl"}},
					ComponentInstantiations: []model.ComponentInstantiation{{
						Name:             "impl",
						Parameters:       []model.Parameter{{Name: "N", Value: "4"}},
						ModuleParameters: []model.ModuleParameter{{Parameter: model.Parameter{Name: "W", Value: "N * 2"}}},
					}},
				},
			},
		},
		{
			name: "instantiation parameters without a view",
			component: model.Component{
				Model: model.Model{
					ComponentInstantiations: []model.ComponentInstantiation{{
						Name:             "impl",
						Parameters:       []model.Parameter{{Name: "N", Value: "4"}},
						ModuleParameters: []model.ModuleParameter{{Parameter: model.Parameter{Name: "W", Value: "N * 2"}}},
					}},
				},
			},
			want: []string{
				"Value 'N * 2' is not valid for type untyped in module parameter W within component instantiation impl within " + where,
			},
		},
		{
			name: "view referring to a missing instantiation",
			component: model.Component{
				Model: model.Model{Views: []model.View{{Name: "rtl", ComponentInstantiationRef: "foo"}}},
			},
			want: []string{"Component instantiation foo referenced by view rtl within " + where + " was not found"},
		},
		{
			name: "remap states in 2022",
			component: model.Component{
				RemapStates: []model.RemapState{{Name: "init"}},
			},
			want: []string{"Remap states are not allowed in 1685-2022 within " + where},
		},
		{
			name: "duplicate modes",
			component: model.Component{
				Modes: []model.Mode{{Name: "fast"}, {Name: "fast", Condition: "1"}},
			},
			want: []string{"Mode name fast within " + where + " is not unique."},
		},
	}
	d := New(nil, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.component.Header = header("uart")
			res := d.Validate(&tt.component)
			if diff := cmp.Diff(tt.want, res.Errors); diff != "" {
				t.Errorf("Validate() errors mismatch (-want +got):\n%s", diff)
			}
			if res.Valid != (len(tt.want) == 0) {
				t.Errorf("Validate() valid = %v, want %v", res.Valid, len(tt.want) == 0)
			}
		})
	}
}

func TestValidateAll(t *testing.T) {
	docs := testDocuments()
	docs = append(docs, &model.Component{})
	d := New(testLibrary(t, docs[:len(docs)-1]), Options{Workers: 2})

	results, err := d.ValidateAll(context.Background(), docs)
	if err != nil {
		t.Fatalf("ValidateAll() failed: %v", err)
	}
	if len(results) != len(docs) {
		t.Fatalf("ValidateAll() returned %d results, want %d", len(results), len(docs))
	}
	for i, res := range results {
		if res.Document != docs[i].Identity() || res.Kind != docs[i].Kind() {
			t.Errorf("results[%d] = %s %s, want %s %s", i, res.Kind, res.Document, docs[i].Kind(), docs[i].Identity())
		}
	}
	last := results[len(results)-1]
	want := []string{"The type of the vlnv is invalid within component :::"}
	if diff := cmp.Diff(want, last.Errors); diff != "" {
		t.Errorf("errors of the anonymous component mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateAllCanceled(t *testing.T) {
	docs := testDocuments()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := New(nil, Options{}).ValidateAll(ctx, docs)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ValidateAll() error = %v, want %v", err, context.Canceled)
	}
	for i, res := range results {
		if res != nil {
			t.Errorf("results[%d] = %v, want nil for a canceled run", i, res)
		}
	}
}

func TestValidateLibrary(t *testing.T) {
	d := New(testLibrary(t, testDocuments()), Options{})
	results, err := d.ValidateLibrary(context.Background())
	if err != nil {
		t.Fatalf("ValidateLibrary() failed: %v", err)
	}
	var got []string
	for _, res := range results {
		if !res.Valid {
			t.Errorf("%s %s is invalid: %q", res.Kind, res.Document, res.Errors)
		}
		got = append(got, res.Document.Name)
	}
	want := []string{"apb", "apb_rtl", "cat", "flow", "soc", "soc_cfg", "uart"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ValidateLibrary() order mismatch (-want +got):\n%s", diff)
	}
}

func TestContext(t *testing.T) {
	tests := []struct {
		doc  model.Document
		want string
	}{
		{&model.Component{Header: header("uart")}, "component acme:ip:uart:1.0"},
		{&model.BusDefinition{Header: header("apb")}, "bus definition acme:ip:apb:1.0"},
		{&model.DesignConfiguration{Header: header("cfg")}, "design configuration acme:ip:cfg:1.0"},
		{&model.GeneratorChain{Header: header("flow")}, "generator chain acme:ip:flow:1.0"},
	}
	for _, tt := range tests {
		if got := Context(tt.doc); got != tt.want {
			t.Errorf("Context() = %q, want %q", got, tt.want)
		}
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		StateNotStarted: "not started",
		StateValidating: "validating",
		StateAggregated: "aggregated",
		State(9):        "unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
