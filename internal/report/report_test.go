package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"ipxcheck/internal/config"
	"ipxcheck/internal/driver"
	"ipxcheck/internal/model"
)

func vlnv(name string) model.VLNV {
	return model.VLNV{Vendor: "acme", Library: "ip", Name: name, Version: "1.0"}
}

func testResults() []*driver.Result {
	return []*driver.Result{
		{
			ID:       uuid.New(),
			Document: vlnv("uart"),
			Kind:     model.KindComponent,
			Revision: model.Revision2022,
			Valid:    true,
			State:    driver.StateAggregated,
		},
		{
			ID:       uuid.New(),
			Document: vlnv("soc"),
			Kind:     model.KindDesign,
			Valid:    false,
			Errors: []string{
				"Component instance name u0 within design acme:ip:soc:1.0 is not unique.",
				"Could not find component acme:ip:spi:1.0 referenced by instance s0 within design acme:ip:soc:1.0",
			},
			State: driver.StateAggregated,
		},
	}
}

func TestWriteText(t *testing.T) {
	tests := []struct {
		name         string
		failuresOnly bool
		labels       map[string]string
		want         string
	}{
		{
			name: "every document",
			want: `Component acme:ip:uart:1.0 (1685-2022): valid
Design acme:ip:soc:1.0 (no revision): 2 errors
    Component instance name u0 within design acme:ip:soc:1.0 is not unique.
    Could not find component acme:ip:spi:1.0 referenced by instance s0 within design acme:ip:soc:1.0
1 of 2 documents invalid
`,
		},
		{
			name:         "failures only",
			failuresOnly: true,
			labels:       map[string]string{"design": "DESIGN"},
			want: `DESIGN acme:ip:soc:1.0 (no revision): 2 errors
    Component instance name u0 within design acme:ip:soc:1.0 is not unique.
    Could not find component acme:ip:spi:1.0 referenced by instance s0 within design acme:ip:soc:1.0
1 of 2 documents invalid
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Options.FailuresOnly = tt.failuresOnly
			for k, v := range tt.labels {
				cfg.KindLabels[k] = v
			}
			var buf bytes.Buffer
			if err := New(cfg).Write(testResults(), &buf); err != nil {
				t.Fatalf("Write() failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("Write() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := New(config.New()).Write(nil, &buf); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if got, want := buf.String(), "0 of 0 documents invalid\n"; got != want {
		t.Errorf("Write() = %q, want %q", got, want)
	}
}

func TestWriteEncoded(t *testing.T) {
	tests := []struct {
		format    string
		unmarshal func([]byte, any) error
	}{
		{config.FormatJSON, json.Unmarshal},
		{config.FormatYAML, yaml.Unmarshal},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := config.New()
			cfg.Options.Format = tt.format
			r := New(cfg)
			results := testResults()

			var buf bytes.Buffer
			if err := r.Write(results, &buf); err != nil {
				t.Fatalf("Write() failed: %v", err)
			}

			var got struct {
				RunID     string `json:"runId" yaml:"runId"`
				Documents int    `json:"documents" yaml:"documents"`
				Invalid   int    `json:"invalid" yaml:"invalid"`
				Results   []struct {
					ID     string   `json:"id" yaml:"id"`
					Kind   string   `json:"kind" yaml:"kind"`
					Valid  bool     `json:"valid" yaml:"valid"`
					Errors []string `json:"errors" yaml:"errors"`
				} `json:"results" yaml:"results"`
			}
			if err := tt.unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("decoding report failed: %v\n%s", err, buf.String())
			}
			if got.RunID != r.RunID().String() {
				t.Errorf("runId = %q, want %q", got.RunID, r.RunID())
			}
			if got.Documents != 2 || got.Invalid != 1 {
				t.Errorf("documents, invalid = %d, %d, want 2, 1", got.Documents, got.Invalid)
			}
			if len(got.Results) != len(results) {
				t.Fatalf("got %d results, want %d", len(got.Results), len(results))
			}
			for i, res := range results {
				g := got.Results[i]
				if g.ID != res.ID.String() || g.Kind != string(res.Kind) || g.Valid != res.Valid {
					t.Errorf("results[%d] = %+v, want %+v", i, g, res)
				}
				if len(g.Errors) != len(res.Errors) {
					t.Errorf("results[%d] has %d errors, want %d", i, len(g.Errors), len(res.Errors))
				}
			}
		})
	}
}

func TestLoadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.tmpl")
	tmpl := `{{range $i, $r := .Results}}{{lower (kindLabel $r.Kind)}}={{vlnv $r.Document}}{{if notLast $i (len $.Results)}},{{end}}{{end}}
`
	if err := os.WriteFile(path, []byte(tmpl), 0o644); err != nil {
		t.Fatal(err)
	}

	r := New(config.New())
	if err := r.LoadTemplate(path); err != nil {
		t.Fatalf("LoadTemplate() failed: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Write(testResults(), &buf); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	want := "component=acme:ip:uart:1.0,design=acme:ip:soc:1.0\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Write() mismatch (-want +got):\n%s", diff)
	}

	if err := r.LoadTemplate(filepath.Join(t.TempDir(), "missing.tmpl")); err == nil {
		t.Error("LoadTemplate() of a missing file succeeded")
	}
}

func TestPlural(t *testing.T) {
	for n, want := range map[int]string{0: "0 errors", 1: "1 error", 2: "2 errors"} {
		if got := plural(n, "error"); got != want {
			t.Errorf("plural(%d) = %q, want %q", n, got, want)
		}
	}
}
