// Package driver walks IP-XACT documents and aggregates the verdicts of
// the element validators into one result per document.
package driver

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/model"
	"ipxcheck/internal/resolver"
	"ipxcheck/internal/revision"
	"ipxcheck/internal/validator"
)

// State is the progress of a document validation.
type State int

const (
	StateNotStarted State = iota
	StateValidating
	StateAggregated
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateValidating:
		return "validating"
	case StateAggregated:
		return "aggregated"
	}
	return "unknown"
}

// Result is the verdict on one document.
type Result struct {
	ID       uuid.UUID      `json:"id" yaml:"id"`
	Document model.VLNV     `json:"document" yaml:"document"`
	Kind     model.Kind     `json:"kind" yaml:"kind"`
	Revision model.Revision `json:"revision" yaml:"revision"`
	Valid    bool           `json:"valid" yaml:"valid"`
	Errors   []string       `json:"errors" yaml:"errors"`
	State    State          `json:"-" yaml:"-"`
}

// Options tune a Driver.
type Options struct {
	// Revision replaces the revision every document declares. Empty keeps
	// the declared revision.
	Revision model.Revision
	// Workers bounds the documents validated at once by ValidateAll.
	// Zero means one per CPU.
	Workers int
}

// Driver validates documents whose cross references resolve through a library.
//
// A Driver may be used from several goroutines; every document pass
// builds its own evaluator, finder and validators.
type Driver struct {
	library *model.Library
	opts    Options
}

// New returns a driver resolving references in lib. A nil lib skips
// every check that needs another document.
func New(lib *model.Library, opts Options) *Driver {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Driver{library: lib, opts: opts}
}

// Library returns the library the driver resolves references in.
func (d *Driver) Library() *model.Library { return d.library }

// revision returns the revision doc is validated against.
func (d *Driver) revision(doc model.Document) model.Revision {
	if d.opts.Revision != "" {
		return d.opts.Revision
	}
	return doc.StdRevision()
}

// Context names doc in error messages, e.g. "component acme:ip:uart:1.0".
func Context(doc model.Document) string {
	return fmt.Sprintf("%s %s", kindLabel(doc.Kind()), doc.Identity())
}

func kindLabel(k model.Kind) string {
	switch k {
	case model.KindComponent:
		return "component"
	case model.KindBusDefinition:
		return "bus definition"
	case model.KindAbstractionDefinition:
		return "abstraction definition"
	case model.KindDesign:
		return "design"
	case model.KindDesignConfiguration:
		return "design configuration"
	case model.KindCatalog:
		return "catalog"
	case model.KindGeneratorChain:
		return "generator chain"
	}
	return string(k)
}

// pass accumulates the verdicts of one document walk.
type pass struct {
	valid bool
	errs  []string
}

// visit applies both entry points of v to x.
func visit[T any](p *pass, v validator.Validator[T], x T, context string) {
	if !v.Validate(x) {
		p.valid = false
	}
	p.errs = v.FindErrorsIn(p.errs, x, context)
}

// visitAll visits every element of xs in declaration order.
func visitAll[T any](p *pass, v validator.Validator[*T], xs []T, context string) {
	for i := range xs {
		visit(p, v, &xs[i], context)
	}
}

// unique reports names appearing more than once.
func (p *pass) unique(label string, names []string, context string) {
	if !validator.NamesUnique(names) {
		p.valid = false
	}
	p.errs = validator.FindErrorsInNames(p.errs, label, names, context)
}

func namesOf[T any](xs []T, name func(*T) string) []string {
	names := make([]string, len(xs))
	for i := range xs {
		names[i] = name(&xs[i])
	}
	return names
}

// Validate walks doc and returns the aggregated result. doc must be one of
// the document kinds of package model; anything else panics.
func (d *Driver) Validate(doc model.Document) *Result {
	if doc == nil {
		panic("driver: nil document")
	}
	rev := d.revision(doc)
	res := &Result{
		ID:       uuid.New(),
		Document: doc.Identity(),
		Kind:     doc.Kind(),
		Revision: rev,
		State:    StateValidating,
	}
	p := &pass{valid: true}
	rules := revision.For(rev)
	where := Context(doc)

	switch doc := doc.(type) {
	case *model.Component:
		d.component(p, doc, rules, where)
	case *model.BusDefinition:
		eval := expression.New(resolver.NewListFinder(doc.Parameters))
		visit[*model.BusDefinition](p, validator.NewBusDefinitionValidator(eval, d.library, rules), doc, where)
	case *model.AbstractionDefinition:
		eval := expression.New(resolver.NewListFinder(doc.Parameters))
		visit[*model.AbstractionDefinition](p, validator.NewAbstractionDefinitionValidator(eval, d.library, rules), doc, where)
	case *model.Design:
		eval := expression.New(resolver.NewListFinder(doc.Parameters))
		visit[*model.Design](p, validator.NewDesignValidator(eval, d.library, rules), doc, where)
	case *model.DesignConfiguration:
		eval := expression.New(resolver.NewListFinder(doc.Parameters))
		visit[*model.DesignConfiguration](p, validator.NewSystemDesignConfigurationValidator(eval, d.library, rules), doc, where)
	case *model.Catalog:
		visit[*model.Catalog](p, validator.NewCatalogValidator(d.library), doc, where)
	case *model.GeneratorChain:
		eval := expression.New(expression.NoParameters)
		visit[*model.GeneratorChain](p, validator.NewGeneratorChainValidator(eval, d.library, rules), doc, where)
	default:
		panic(fmt.Sprintf("driver: unknown document kind %T", doc))
	}

	res.Valid = p.valid
	res.Errors = p.errs
	res.State = StateAggregated
	return res
}

// component walks a component: its own parameters and choices first, then
// every top level collection, then the model.
func (d *Driver) component(p *pass, c *model.Component, rules *revision.Rules, where string) {
	finder := resolver.NewParameterFinder(c)
	eval := expression.New(finder)

	if !c.VLNV.Valid() {
		p.valid = false
		p.errs = append(p.errs, fmt.Sprintf("The type of the vlnv is invalid within %s", where))
	}

	params := validator.NewParameterValidator(eval, c.Choices, rules)
	visitAll[model.Parameter](p, params, c.Parameters, where)
	p.unique("Parameter", namesOf(c.Parameters, func(x *model.Parameter) string { return x.Name }), where)

	visitAll[model.Choice](p, validator.NewChoiceValidator(eval), c.Choices, where)
	p.unique("Choice", namesOf(c.Choices, func(x *model.Choice) string { return x.Name }), where)

	visitAll[model.BusInterface](p, validator.NewBusInterfaceValidator(eval, c, d.library, rules), c.BusInterfaces, where)
	p.unique("Bus interface", namesOf(c.BusInterfaces, func(x *model.BusInterface) string { return x.Name }), where)

	visitAll[model.AddressSpace](p, validator.NewAddressSpaceValidator(eval, c, rules), c.AddressSpaces, where)
	p.unique("Address space", namesOf(c.AddressSpaces, func(x *model.AddressSpace) string { return x.Name }), where)

	visitAll[model.MemoryMap](p, validator.NewMemoryMapValidator(eval, c, rules), c.MemoryMaps, where)
	p.unique("Memory map", namesOf(c.MemoryMaps, func(x *model.MemoryMap) string { return x.Name }), where)

	if len(c.RemapStates) > 0 && !rules.RemapStates {
		p.valid = false
		p.errs = append(p.errs, fmt.Sprintf("Remap states are not allowed in %s within %s", rules.Revision, where))
	}
	visitAll[model.RemapState](p, validator.NewRemapStateValidator(eval, c), c.RemapStates, where)
	p.unique("Remap state", namesOf(c.RemapStates, func(x *model.RemapState) string { return x.Name }), where)

	if len(c.Modes) > 0 && !rules.ModeReferences {
		p.valid = false
		p.errs = append(p.errs, fmt.Sprintf("Modes are not allowed in %s within %s", rules.Revision, where))
	}
	visitAll[model.Mode](p, validator.NewModeValidator(), c.Modes, where)
	p.unique("Mode", c.ModeNames(), where)

	visitAll[model.ComponentGenerator](p, validator.NewComponentGeneratorValidator(eval, rules), c.ComponentGenerators, where)
	p.unique("Component generator", namesOf(c.ComponentGenerators, func(x *model.ComponentGenerator) string { return x.Name }), where)

	visitAll[model.FileSet](p, validator.NewFileSetValidator(), c.FileSets, where)
	p.unique("File set", namesOf(c.FileSets, func(x *model.FileSet) string { return x.Name }), where)

	visitAll[model.CPU](p, validator.NewCPUValidator(eval, c, rules), c.CPUs, where)
	p.unique("CPU", namesOf(c.CPUs, func(x *model.CPU) string { return x.Name }), where)

	visitAll[model.PowerDomain](p, validator.NewPowerDomainValidator(eval, c, rules), c.PowerDomains, where)
	p.unique("Power domain", namesOf(c.PowerDomains, func(x *model.PowerDomain) string { return x.Name }), where)

	visitAll[model.ResetType](p, validator.NewResetTypeValidator(), c.ResetTypes, where)
	p.unique("Reset type", namesOf(c.ResetTypes, func(x *model.ResetType) string { return x.Name }), where)

	p.unique("Software view", namesOf(c.SWViews, func(x *model.SWView) string { return x.Name }), where)

	d.model(p, c, finder, params, rules, where)
}

// model walks the views, instantiations and ports of c. Each component
// instantiation is checked with the first view referencing it active, so
// its parameters may refer to one another.
func (d *Driver) model(p *pass, c *model.Component, finder *resolver.ParameterFinder, params *validator.ParameterValidator,
	rules *revision.Rules, where string) {
	m := &c.Model
	eval := expression.New(finder)

	visitAll[model.View](p, validator.NewViewValidator(eval, m), m.Views, where)
	p.unique("View", namesOf(m.Views, func(x *model.View) string { return x.Name }), where)

	instantiations := validator.NewComponentInstantiationValidator(c, params)
	for i := range m.ComponentInstantiations {
		inst := &m.ComponentInstantiations[i]
		finder.SetActiveView(viewOf(m, inst.Name))
		visit[*model.ComponentInstantiation](p, instantiations, inst, where)
	}
	finder.SetActiveView("")
	p.unique("Component instantiation",
		namesOf(m.ComponentInstantiations, func(x *model.ComponentInstantiation) string { return x.Name }), where)

	visitAll[model.DesignInstantiation](p, validator.NewDesignInstantiationValidator(d.library), m.DesignInstantiations, where)
	p.unique("Design instantiation",
		namesOf(m.DesignInstantiations, func(x *model.DesignInstantiation) string { return x.Name }), where)

	visitAll[model.DesignConfigurationInstantiation](p,
		validator.NewDesignConfigurationInstantiationValidator(d.library, params), m.DesignConfigurationInstantiations, where)
	p.unique("Design configuration instantiation",
		namesOf(m.DesignConfigurationInstantiations, func(x *model.DesignConfigurationInstantiation) string { return x.Name }), where)

	visitAll[model.Port](p, validator.NewPortValidator(eval, m.Views, rules), m.Ports, where)
	p.unique("Port", namesOf(m.Ports, func(x *model.Port) string { return x.Name }), where)
}

// viewOf returns the first view referencing the component instantiation
// called name, or "" when no view does.
func viewOf(m *model.Model, name string) string {
	for _, v := range m.Views {
		if v.ComponentInstantiationRef == name {
			return v.Name
		}
	}
	return ""
}

// ValidateAll validates docs concurrently and returns their results in
// input order. Cancelling ctx stops scheduling further documents; the
// results of documents never started are nil and ctx's error is returned.
func (d *Driver) ValidateAll(ctx context.Context, docs []model.Document) ([]*Result, error) {
	results := make([]*Result, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Workers)
	for i, doc := range docs {
		if gctx.Err() != nil {
			break
		}
		i, doc := i, doc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = d.Validate(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("validating documents: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("validating documents: %w", err)
	}
	return results, nil
}

// ValidateLibrary validates every document of the library in VLNV order.
func (d *Driver) ValidateLibrary(ctx context.Context) ([]*Result, error) {
	return d.ValidateAll(ctx, d.library.Documents())
}
