package model

import (
	"errors"
	"fmt"
	"slices"
)

// ErrDuplicateDocument is returned when a VLNV is added to a library twice.
var ErrDuplicateDocument = errors.New("duplicate document")

// Library owns a set of documents keyed by VLNV. References between
// documents are resolved by VLNV lookups through the library.
//
// A Library is not safe for concurrent modification, but may be read
// from several goroutines once populated. A nil *Library is empty.
type Library struct {
	docs map[VLNV]Document
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{docs: make(map[VLNV]Document)}
}

// Add stores doc under its VLNV.
func (l *Library) Add(doc Document) error {
	if l.docs == nil {
		l.docs = make(map[VLNV]Document)
	}
	id := doc.Identity()
	if _, ok := l.docs[id]; ok {
		return fmt.Errorf("%w: %s %s", ErrDuplicateDocument, doc.Kind(), id)
	}
	l.docs[id] = doc
	return nil
}

// Len returns the number of documents in the library.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.docs)
}

// Get returns the document stored under id.
func (l *Library) Get(id VLNV) (Document, bool) {
	if l == nil {
		return nil, false
	}
	doc, ok := l.docs[id]
	return doc, ok
}

// Contains reports whether a document is stored under id.
func (l *Library) Contains(id VLNV) bool {
	_, ok := l.Get(id)
	return ok
}

// Documents returns every document ordered by VLNV.
func (l *Library) Documents() []Document {
	if l == nil {
		return nil
	}
	docs := make([]Document, 0, len(l.docs))
	for _, doc := range l.docs {
		docs = append(docs, doc)
	}
	slices.SortFunc(docs, func(a, b Document) int {
		return a.Identity().Compare(b.Identity())
	})
	return docs
}

// Component returns the component stored under id, or nil.
func (l *Library) Component(id VLNV) *Component {
	doc, _ := l.Get(id)
	c, _ := doc.(*Component)
	return c
}

// Design returns the design stored under id, or nil.
func (l *Library) Design(id VLNV) *Design {
	doc, _ := l.Get(id)
	d, _ := doc.(*Design)
	return d
}

// DesignConfiguration returns the design configuration stored under id, or nil.
func (l *Library) DesignConfiguration(id VLNV) *DesignConfiguration {
	doc, _ := l.Get(id)
	d, _ := doc.(*DesignConfiguration)
	return d
}

// BusDefinition returns the bus definition stored under id, or nil.
func (l *Library) BusDefinition(id VLNV) *BusDefinition {
	doc, _ := l.Get(id)
	b, _ := doc.(*BusDefinition)
	return b
}

// AbstractionDefinition returns the abstraction definition stored under id, or nil.
func (l *Library) AbstractionDefinition(id VLNV) *AbstractionDefinition {
	doc, _ := l.Get(id)
	a, _ := doc.(*AbstractionDefinition)
	return a
}

// GeneratorChain returns the generator chain stored under id, or nil.
func (l *Library) GeneratorChain(id VLNV) *GeneratorChain {
	doc, _ := l.Get(id)
	g, _ := doc.(*GeneratorChain)
	return g
}
