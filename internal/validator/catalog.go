package validator

import (
	"fmt"

	"ipxcheck/internal/model"
)

// CatalogValidator validates catalog documents.
//
// Entries whose VLNV is known to the library must name a document of
// the kind their list implies. A nil library skips that check.
type CatalogValidator struct {
	library *model.Library
}

// NewCatalogValidator returns a validator cross checking entries against lib.
func NewCatalogValidator(lib *model.Library) *CatalogValidator {
	return &CatalogValidator{library: lib}
}

type catalogEntry struct {
	kind model.Kind
	file model.IpxactFile
}

func catalogEntries(c *model.Catalog) []catalogEntry {
	var entries []catalogEntry
	for _, list := range []struct {
		kind  model.Kind
		files []model.IpxactFile
	}{
		{model.KindCatalog, c.Catalogs},
		{model.KindBusDefinition, c.BusDefinitions},
		{model.KindAbstractionDefinition, c.AbstractionDefinitions},
		{model.KindComponent, c.Components},
		{model.KindDesign, c.Designs},
		{model.KindDesignConfiguration, c.DesignConfigurations},
		{model.KindGeneratorChain, c.GeneratorChains},
	} {
		for _, f := range list.files {
			entries = append(entries, catalogEntry{kind: list.kind, file: f})
		}
	}
	return entries
}

func entryVLNVs(entries []catalogEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.file.VLNV.String()
	}
	return ids
}

// kindMismatch reports whether the library holds a document of another
// kind under the entry's VLNV.
func (v *CatalogValidator) kindMismatch(e catalogEntry) (model.Kind, bool) {
	doc, ok := v.library.Get(e.file.VLNV)
	if !ok || doc.Kind() == e.kind {
		return "", false
	}
	return doc.Kind(), true
}

// Validate reports whether c is valid.
func (v *CatalogValidator) Validate(c *model.Catalog) bool {
	if !c.VLNV.Valid() {
		return false
	}
	entries := catalogEntries(c)
	for _, e := range entries {
		if !e.file.VLNV.Valid() || model.IsBlank(e.file.Name) {
			return false
		}
		if _, bad := v.kindMismatch(e); bad {
			return false
		}
	}
	return NamesUnique(entryVLNVs(entries))
}

// FindErrorsIn appends the defects of c.
func (v *CatalogValidator) FindErrorsIn(errs []string, c *model.Catalog, context string) []string {
	if !c.VLNV.Valid() {
		errs = append(errs, fmt.Sprintf("The type of the vlnv is invalid within %s", context))
	}
	entries := catalogEntries(c)
	for _, e := range entries {
		if !e.file.VLNV.Valid() {
			errs = append(errs, fmt.Sprintf("Invalid vlnv %s set for %s file within %s", e.file.VLNV, e.kind, context))
		}
		if model.IsBlank(e.file.Name) {
			errs = append(errs, fmt.Sprintf("No file name set for %s %s within %s", e.kind, e.file.VLNV, context))
		}
		if kind, bad := v.kindMismatch(e); bad {
			errs = append(errs, fmt.Sprintf("Catalog lists %s as a %s, but the library holds a %s, within %s",
				e.file.VLNV, e.kind, kind, context))
		}
	}
	for _, id := range Duplicates(entryVLNVs(entries)) {
		errs = append(errs, fmt.Sprintf("VLNV %s is listed multiple times within %s", id, context))
	}
	return errs
}
