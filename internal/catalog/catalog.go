// Package catalog holds the controlled vocabulary of canonical exercise
// names. The index is built once at process start from an ordered entry
// list and is read-only afterwards, so it is safe to share across
// concurrent pipeline invocations.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/claude/setforge/internal/normalize"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Entry is one canonical exercise with its category keywords.
type Entry struct {
	Name       string   `yaml:"name" json:"name"`
	Categories []string `yaml:"categories,omitempty" json:"categories,omitempty"`
}

// Index is the in-memory catalog. Entry order is the catalog's insertion
// order and is the tie-break for equal match scores.
type Index struct {
	entries      []Entry
	normalized   []string
	byNormalized map[string]int
}

// New builds an index from an ordered entry list. An empty catalog is an
// error: the host must refuse to serve rather than match against nothing.
func New(entries []Entry) (*Index, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	ix := &Index{
		entries:      entries,
		normalized:   make([]string, len(entries)),
		byNormalized: make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog entry %d has no name", i)
		}
		norm := normalize.Name(e.Name)
		ix.normalized[i] = norm
		// First entry wins on normalized collisions, matching insertion
		// order tie-break semantics.
		if _, exists := ix.byNormalized[norm]; !exists {
			ix.byNormalized[norm] = i
		}
	}
	return ix, nil
}

// Load reads a catalog YAML file and builds the index.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	return New(entries)
}

// Default builds the index from the catalog embedded in the binary.
func Default() (*Index, error) {
	var entries []Entry
	if err := yaml.Unmarshal(defaultCatalog, &entries); err != nil {
		return nil, fmt.Errorf("parsing embedded catalog: %w", err)
	}
	return New(entries)
}

// Len returns the number of catalog entries.
func (ix *Index) Len() int { return len(ix.entries) }

// Entry returns the entry at insertion position i.
func (ix *Index) Entry(i int) Entry { return ix.entries[i] }

// Normalized returns the pre-normalized form of entry i.
func (ix *Index) Normalized(i int) string { return ix.normalized[i] }

// Entries returns all entries in insertion order.
func (ix *Index) Entries() []Entry { return ix.entries }

// LookupNormalized finds an entry by its normalized name.
func (ix *Index) LookupNormalized(norm string) (Entry, bool) {
	i, ok := ix.byNormalized[norm]
	if !ok {
		return Entry{}, false
	}
	return ix.entries[i], true
}

// ByCategory returns all entries carrying the given category keyword,
// in insertion order.
func (ix *Index) ByCategory(keyword string) []Entry {
	var out []Entry
	for _, e := range ix.entries {
		for _, c := range e.Categories {
			if c == keyword {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
