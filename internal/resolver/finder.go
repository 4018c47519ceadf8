// Package resolver maps parameter identifiers to their raw expressions.
//
// A finder never caches: every Resolve call reads the document as it is at
// the time of the call, so edits to parameters are always observed.
package resolver

import "ipxcheck/internal/model"

// Scope selects which parameters a ParameterFinder can see.
type Scope int

const (
	// ScopeDocument sees the parameters declared by the component itself
	// and by its nested elements.
	ScopeDocument Scope = iota
	// ScopeView additionally sees the parameters and module parameters of
	// the component instantiation referenced by the active view. These
	// shadow document parameters with the same identifier.
	ScopeView
)

func (s Scope) String() string {
	switch s {
	case ScopeDocument:
		return "document"
	case ScopeView:
		return "view"
	}
	return "unknown"
}

// ParameterFinder resolves parameter identifiers within a component.
//
// The active view is mutable state; it must not be changed while
// evaluations using the finder are in flight.
type ParameterFinder struct {
	component  *model.Component
	scope      Scope
	activeView string
}

// NewParameterFinder returns a document scoped finder for c.
func NewParameterFinder(c *model.Component) *ParameterFinder {
	return &ParameterFinder{component: c}
}

// Scope returns the current scope.
func (f *ParameterFinder) Scope() Scope { return f.scope }

// SetScope changes the scope of the finder.
func (f *ParameterFinder) SetScope(s Scope) { f.scope = s }

// SetActiveView re-points the view scope to the view called name and
// switches the finder to ScopeView. An empty name returns to ScopeDocument.
func (f *ParameterFinder) SetActiveView(name string) {
	f.activeView = name
	if name == "" {
		f.scope = ScopeDocument
		return
	}
	f.scope = ScopeView
}

// ActiveView returns the name of the active view.
func (f *ParameterFinder) ActiveView() string { return f.activeView }

// Resolve returns the raw value of the parameter with the given identifier.
func (f *ParameterFinder) Resolve(id string) (string, bool) {
	if p := f.Find(id); p != nil {
		return p.Value, true
	}
	return "", false
}

// Find returns the parameter with the given identifier, or nil.
func (f *ParameterFinder) Find(id string) *model.Parameter {
	if f.component == nil || id == "" {
		return nil
	}
	if f.scope == ScopeView {
		if p := f.findInView(id); p != nil {
			return p
		}
	}
	return f.findInDocument(id)
}

func (f *ParameterFinder) findInView(id string) *model.Parameter {
	view := f.component.Model.FindView(f.activeView)
	if view == nil || view.ComponentInstantiationRef == "" {
		return nil
	}
	inst := f.component.Model.FindComponentInstantiation(view.ComponentInstantiationRef)
	if inst == nil {
		return nil
	}
	for i := range inst.ModuleParameters {
		if inst.ModuleParameters[i].ReferenceID() == id {
			return &inst.ModuleParameters[i].Parameter
		}
	}
	return find(inst.Parameters, id)
}

// findInDocument searches the component parameters first, then the
// parameters of nested elements in declaration order.
func (f *ParameterFinder) findInDocument(id string) *model.Parameter {
	c := f.component
	if p := find(c.Parameters, id); p != nil {
		return p
	}
	for i := range c.BusInterfaces {
		if p := find(c.BusInterfaces[i].Parameters, id); p != nil {
			return p
		}
	}
	for i := range c.AddressSpaces {
		if p := find(c.AddressSpaces[i].Parameters, id); p != nil {
			return p
		}
	}
	for i := range c.MemoryMaps {
		if p := findInBlocks(c.MemoryMaps[i].AddressBlocks, id); p != nil {
			return p
		}
		for j := range c.MemoryMaps[i].MemoryRemaps {
			if p := findInBlocks(c.MemoryMaps[i].MemoryRemaps[j].AddressBlocks, id); p != nil {
				return p
			}
		}
	}
	for i := range c.ComponentGenerators {
		if p := find(c.ComponentGenerators[i].Parameters, id); p != nil {
			return p
		}
	}
	for i := range c.PowerDomains {
		if p := find(c.PowerDomains[i].Parameters, id); p != nil {
			return p
		}
	}
	for i := range c.CPUs {
		if p := find(c.CPUs[i].Parameters, id); p != nil {
			return p
		}
	}
	for i := range c.Model.DesignConfigurationInstantiations {
		if p := find(c.Model.DesignConfigurationInstantiations[i].Parameters, id); p != nil {
			return p
		}
	}
	return nil
}

func findInBlocks(blocks []model.AddressBlock, id string) *model.Parameter {
	for i := range blocks {
		if p := find(blocks[i].Parameters, id); p != nil {
			return p
		}
		if p := findInRegisters(blocks[i].Registers, blocks[i].RegisterFiles, id); p != nil {
			return p
		}
	}
	return nil
}

// findInRegisters searches regs, then the registers nested in files.
func findInRegisters(regs []model.Register, files []model.RegisterFile, id string) *model.Parameter {
	for i := range regs {
		if p := find(regs[i].Parameters, id); p != nil {
			return p
		}
	}
	for i := range files {
		if p := findInRegisters(files[i].Registers, files[i].RegisterFiles, id); p != nil {
			return p
		}
	}
	return nil
}

func find(params []model.Parameter, id string) *model.Parameter {
	for i := range params {
		if params[i].ReferenceID() == id {
			return &params[i]
		}
	}
	return nil
}

// ListFinder resolves identifiers against plain parameter lists, searched
// in order. It is used for documents without component scoping rules.
type ListFinder struct {
	lists [][]model.Parameter
}

// NewListFinder returns a finder over the given parameter lists.
func NewListFinder(lists ...[]model.Parameter) *ListFinder {
	return &ListFinder{lists: lists}
}

// Add appends another list searched after the existing ones.
func (f *ListFinder) Add(params []model.Parameter) {
	f.lists = append(f.lists, params)
}

// Resolve returns the raw value of the parameter with the given identifier.
func (f *ListFinder) Resolve(id string) (string, bool) {
	if p := f.Find(id); p != nil {
		return p.Value, true
	}
	return "", false
}

// Find returns the parameter with the given identifier, or nil.
func (f *ListFinder) Find(id string) *model.Parameter {
	if id == "" {
		return nil
	}
	for _, list := range f.lists {
		if p := find(list, id); p != nil {
			return p
		}
	}
	return nil
}
