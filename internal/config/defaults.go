// Package config provides configuration handling for ipxcheck.
package config

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultKindLabels returns the report headings of every document kind.
func DefaultKindLabels() map[string]string {
	return map[string]string{
		"component":             "Component",
		"busDefinition":         "Bus definition",
		"abstractionDefinition": "Abstraction definition",
		"design":                "Design",
		"designConfiguration":   "Design configuration",
		"catalog":               "Catalog",
		"generatorChain":        "Generator chain",
	}
}

// DefaultOptions returns default validation options.
func DefaultOptions() Options {
	return Options{
		Format: FormatText,
	}
}
