package report

import (
	"fmt"
	"strings"
	"text/template"

	"ipxcheck/internal/config"
	"ipxcheck/internal/model"
)

// templateFuncs returns custom template functions.
func templateFuncs(cfg *config.Config) template.FuncMap {
	return template.FuncMap{
		"kindLabel": cfg.KindLabel,

		// String manipulation
		"lower":     strings.ToLower,
		"upper":     strings.ToUpper,
		"trim":      strings.TrimSpace,
		"replace":   strings.ReplaceAll,
		"hasPrefix": strings.HasPrefix,
		"hasSuffix": strings.HasSuffix,
		"indent":    indent,

		// List helpers
		"join":     strings.Join,
		"contains": containsStr,

		// Conditional helpers
		"default": defaultValue,
		"ternary": ternary,
		"plural":  plural,

		// Result helpers
		"vlnv":    func(v model.VLNV) string { return v.String() },
		"notLast": func(i, length int) bool { return i < length-1 },
	}
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = prefix + strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// containsStr checks if a slice contains a string.
func containsStr(slice []string, s string) bool {
	for _, item := range slice {
		if item == s {
			return true
		}
	}
	return false
}

// defaultValue returns the string form of val, or def when it is empty.
func defaultValue(val any, def string) string {
	if s := fmt.Sprint(val); s != "" {
		return s
	}
	return def
}

// ternary returns a if condition is true, else b.
func ternary(condition bool, a, b string) string {
	if condition {
		return a
	}
	return b
}

// plural formats a count of nouns, e.g. "1 error" or "3 errors".
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
