package tui

import (
	"sort"
	"strings"
)

// Completer offers dataset names that start with the typed prefix, ignoring case.
type Completer struct {
	names []string
}

// NewCompleter sorts names case-insensitively for display.
func NewCompleter(names []string) *Completer {
	sorted := append([]string(nil), names...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i]) < strings.ToLower(sorted[j])
	})
	return &Completer{names: sorted}
}

// Names returns every known name in display order.
func (c *Completer) Names() []string { return c.names }

// Match returns the names starting with prefix. An empty prefix matches nothing
// so the dropdown stays closed until the user types.
func (c *Completer) Match(prefix string) []string {
	if prefix == "" {
		return nil
	}
	p := strings.ToLower(prefix)
	var hits []string
	for _, n := range c.names {
		if strings.HasPrefix(strings.ToLower(n), p) {
			hits = append(hits, n)
		}
	}
	return hits
}

// Has reports whether name is known exactly.
func (c *Completer) Has(name string) bool {
	for _, n := range c.names {
		if n == name {
			return true
		}
	}
	return false
}
