// Package parser reads IP-XACT libraries written as YAML.
//
// A library file holds one or more YAML documents, each with a
// "documents" list. Every entry of the list carries exactly one key
// naming the document kind:
//
//	documents:
//	  - component:
//	      vlnv: {vendor: acme, library: ip, name: uart, version: "1.0"}
//	      revision: 1685-2022
//	  - busDefinition:
//	      vlnv: {vendor: acme, library: ip, name: apb, version: "1.0"}
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"ipxcheck/internal/model"
)

// Parser reads library files into a model.Library.
type Parser struct {
	library *model.Library
	files   []string
}

// New creates a new Parser with an empty library.
func New() *Parser {
	return &Parser{
		library: model.NewLibrary(),
	}
}

// Library returns every document read so far.
func (p *Parser) Library() *model.Library { return p.library }

// Files returns the paths read so far in reading order.
func (p *Parser) Files() []string { return p.files }

// libraryFile is the top level of a library file.
type libraryFile struct {
	Documents []entry `yaml:"documents"`
}

// entry is one element of the documents list.
type entry struct {
	Component             *model.Component             `yaml:"component"`
	BusDefinition         *model.BusDefinition         `yaml:"busDefinition"`
	AbstractionDefinition *model.AbstractionDefinition `yaml:"abstractionDefinition"`
	Design                *model.Design                `yaml:"design"`
	DesignConfiguration   *model.DesignConfiguration   `yaml:"designConfiguration"`
	Catalog               *model.Catalog               `yaml:"catalog"`
	GeneratorChain        *model.GeneratorChain        `yaml:"generatorChain"`
}

// document returns the single document the entry holds.
func (e *entry) document() (model.Document, error) {
	var docs []model.Document
	add := func(set bool, d model.Document) {
		if set {
			docs = append(docs, d)
		}
	}
	add(e.Component != nil, e.Component)
	add(e.BusDefinition != nil, e.BusDefinition)
	add(e.AbstractionDefinition != nil, e.AbstractionDefinition)
	add(e.Design != nil, e.Design)
	add(e.DesignConfiguration != nil, e.DesignConfiguration)
	add(e.Catalog != nil, e.Catalog)
	add(e.GeneratorChain != nil, e.GeneratorChain)

	switch len(docs) {
	case 0:
		return nil, errors.New("no document kind set")
	case 1:
		return docs[0], nil
	}
	return nil, fmt.Errorf("%d document kinds set, want one", len(docs))
}

// ParseFile reads one library file and adds its documents to the library.
func (p *Parser) ParseFile(path string) ([]model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	docs, err := p.Parse(bytes.NewReader(data), path)
	if err != nil {
		return nil, err
	}
	p.files = append(p.files, path)
	return docs, nil
}

// ParseDir reads every .yaml and .yml file directly inside dir in name order.
func (p *Parser) ParseDir(dir string) ([]model.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			if !e.IsDir() {
				names = append(names, e.Name())
			}
		}
	}
	slices.Sort(names)

	var docs []model.Document
	for _, name := range names {
		d, err := p.ParseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		docs = append(docs, d...)
	}
	return docs, nil
}

// Parse decodes library YAML from r. name is used in error messages
// only. Documents are added to the library as they are decoded and
// stay there when a later one fails.
func (p *Parser) Parse(r io.Reader, name string) ([]model.Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var docs []model.Document
	for stream := 1; ; stream++ {
		var f libraryFile
		if err := dec.Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				return docs, nil
			}
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		for i := range f.Documents {
			doc, err := f.Documents[i].document()
			if err != nil {
				return nil, fmt.Errorf("parsing %s: stream %d: document %d: %w", name, stream, i+1, err)
			}
			if err := p.library.Add(doc); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", name, err)
			}
			docs = append(docs, doc)
		}
	}
}
