// Package report renders validation results as text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"text/template"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"ipxcheck/internal/config"
	"ipxcheck/internal/driver"
)

// defaultTemplate is used for text output when no template file is loaded.
const defaultTemplate = `{{range .Results -}}
{{kindLabel .Kind}} {{.Document}} ({{default .Revision "no revision"}}): {{if .Valid}}valid{{else}}{{plural (len .Errors) "error"}}{{end}}
{{range .Errors}}{{indent . "    "}}
{{end}}{{end}}{{.Invalid}} of {{.Documents}} documents invalid
`

// Reporter writes the results of one validation run.
type Reporter struct {
	config   *config.Config
	template *template.Template
	runID    uuid.UUID
}

// New creates a new Reporter with a fresh run id.
func New(cfg *config.Config) *Reporter {
	r := &Reporter{
		config: cfg,
		runID:  uuid.New(),
	}
	r.template = template.Must(template.New("report").Funcs(templateFuncs(cfg)).Parse(defaultTemplate))
	return r
}

// RunID identifies the run in every report the Reporter writes.
func (r *Reporter) RunID() uuid.UUID { return r.runID }

// LoadTemplate replaces the text output template with the one in path.
func (r *Reporter) LoadTemplate(path string) error {
	tmpl, err := template.New(filepath.Base(path)).
		Funcs(templateFuncs(r.config)).
		ParseFiles(path)
	if err != nil {
		return fmt.Errorf("loading template: %w", err)
	}
	r.template = tmpl
	return nil
}

// Data is the report passed to templates and encoders.
type Data struct {
	RunID     uuid.UUID        `json:"runId" yaml:"runId"`
	Documents int              `json:"documents" yaml:"documents"`
	Invalid   int              `json:"invalid" yaml:"invalid"`
	Results   []*driver.Result `json:"results" yaml:"results"`
}

// Summarize counts results and applies the failuresOnly filter.
func (r *Reporter) Summarize(results []*driver.Result) *Data {
	data := &Data{RunID: r.runID, Documents: len(results), Results: []*driver.Result{}}
	for _, res := range results {
		if !res.Valid {
			data.Invalid++
		}
		if res.Valid && r.config.Options.FailuresOnly {
			continue
		}
		data.Results = append(data.Results, res)
	}
	return data
}

// Write renders results to w in the configured format.
func (r *Reporter) Write(results []*driver.Result, w io.Writer) error {
	data := r.Summarize(results)

	switch r.config.Options.Format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encoding JSON report: %w", err)
		}
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encoding YAML report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding YAML report: %w", err)
		}
	default:
		if err := r.template.Execute(w, data); err != nil {
			return fmt.Errorf("executing template: %w", err)
		}
	}
	return nil
}
