// ipxcheck validates IP-XACT libraries written as YAML and reports
// every semantic error it finds.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"ipxcheck/internal/config"
	"ipxcheck/internal/driver"
	"ipxcheck/internal/model"
	"ipxcheck/internal/parser"
	"ipxcheck/internal/report"
)

var (
	inputs       stringList
	templateFile string
	configFile   string
	outputFile   string
	revisionName string
	format       string
	workers      int
	failuresOnly bool
	kinds        string
	exclude      string
	verbose      bool
	showHelp     bool
)

// stringList collects the values of a repeated flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

func init() {
	flag.Var(&inputs, "input", "Library file or directory (repeatable, required)")
	flag.Var(&inputs, "i", "Library file or directory (shorthand)")

	flag.StringVar(&templateFile, "template", "", "Template file for text reports")
	flag.StringVar(&templateFile, "t", "", "Template file (shorthand)")

	flag.StringVar(&configFile, "config", "", "Config file (YAML/JSON/TOML)")
	flag.StringVar(&configFile, "c", "", "Config file (shorthand)")

	flag.StringVar(&outputFile, "output", "", "Output file (default: stdout)")
	flag.StringVar(&outputFile, "o", "", "Output file (shorthand)")

	flag.StringVar(&revisionName, "revision", "", "Validate every document against this revision (1685-2014 or 1685-2022)")
	flag.StringVar(&revisionName, "r", "", "Revision (shorthand)")
	flag.StringVar(&format, "format", "", "Report format: text, json or yaml")
	flag.StringVar(&format, "f", "", "Report format (shorthand)")
	flag.IntVar(&workers, "workers", 0, "Documents validated at once (default: one per CPU)")
	flag.IntVar(&workers, "j", 0, "Workers (shorthand)")
	flag.BoolVar(&failuresOnly, "failures", false, "Only report invalid documents")
	flag.StringVar(&kinds, "kinds", "", "Only validate these document kinds (comma-separated)")
	flag.StringVar(&kinds, "K", "", "Only validate these document kinds (shorthand)")
	flag.StringVar(&exclude, "exclude", "", "Skip these document kinds (comma-separated)")
	flag.StringVar(&exclude, "X", "", "Skip these document kinds (shorthand)")
	flag.BoolVar(&verbose, "v", false, "Verbose output")
	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")

	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, `ipxcheck - IP-XACT semantic validator

Usage:
    ipxcheck -i <library.yaml> [-i <dir>] [options]

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
    # Validate a library
    ipxcheck -i examples/library.yaml

    # Validate every library file in a directory as 1685-2014
    ipxcheck -i ipxact/ -r 1685-2014

    # Report failures of designs only, as JSON
    ipxcheck -i soc.yaml -K design,designConfiguration --failures -f json -o report.json

    # Render the report through a custom template
    ipxcheck -i soc.yaml -t summary.tmpl

    # Use a config file
    ipxcheck -i soc.yaml -c ipxcheck.toml

`)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if showHelp {
		flag.Usage()
		return nil
	}

	// Validate required flags
	if len(inputs) == 0 {
		return fmt.Errorf("input file is required (-i or --input)")
	}

	// Load configuration
	cfg := config.New()
	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Apply CLI overrides
	if revisionName != "" {
		cfg.Options.Revision = revisionName
	}
	if format != "" {
		cfg.Options.Format = format
	}
	if workers != 0 {
		cfg.Options.Workers = workers
	}
	if templateFile != "" {
		cfg.Options.Template = templateFile
	}
	if failuresOnly {
		cfg.Options.FailuresOnly = true
	}
	if kinds != "" {
		cfg.Options.IncludeKinds = parseCommaSeparated(kinds)
	}
	if exclude != "" {
		cfg.Options.ExcludeKinds = parseCommaSeparated(exclude)
	}
	if err := cfg.Check(); err != nil {
		return err
	}

	// Read libraries
	p := parser.New()
	var docs []model.Document
	for _, in := range inputs {
		d, err := parseInput(p, in)
		if err != nil {
			return fmt.Errorf("parsing input: %w", err)
		}
		docs = append(docs, d...)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Read %d documents from %d files\n", len(docs), len(p.Files()))
		for _, doc := range docs {
			fmt.Fprintf(os.Stderr, "  - %s (%s)\n", doc.Identity(), doc.Kind())
		}
	}

	var selected []model.Document
	for _, doc := range docs {
		if cfg.ShouldIncludeKind(doc.Kind()) {
			selected = append(selected, doc)
		}
	}

	// Validate
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d := driver.New(p.Library(), driver.Options{
		Revision: model.Revision(cfg.Options.Revision),
		Workers:  cfg.Options.Workers,
	})
	results, err := d.ValidateAll(ctx, selected)
	if err != nil {
		return err
	}

	// Create reporter and load template
	rep := report.New(cfg)
	if cfg.Options.Template != "" {
		if err := rep.LoadTemplate(cfg.Options.Template); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Validated %d documents, run %s\n", len(results), rep.RunID())
	}

	// Determine output destination
	output := os.Stdout
	if outputFile != "" {
		output, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer output.Close()
	}

	summary := rep.Summarize(results)
	if err := rep.Write(results, output); err != nil {
		return err
	}

	if verbose && outputFile != "" {
		fmt.Fprintf(os.Stderr, "Wrote report to %s\n", outputFile)
	}

	if summary.Invalid > 0 {
		return fmt.Errorf("%d of %d documents invalid", summary.Invalid, summary.Documents)
	}
	return nil
}

// parseInput reads a library file, or every library file of a directory.
func parseInput(p *parser.Parser, path string) ([]model.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return p.ParseDir(path)
	}
	return p.ParseFile(path)
}

// parseCommaSeparated splits a comma-separated string into a slice of trimmed strings.
func parseCommaSeparated(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
