package symptoms

import (
	"github.com/swasthyasetu/health-assistant/internal/language"
)

// Entry is a keyword/phrase-to-advice mapping in a single language.
type Entry struct {
	Phrase         string `json:"-"`
	Response       string `json:"response"`
	IsEmergency    bool   `json:"emergency"`
	CulturalAdvice string `json:"cultural_advice,omitempty"`
}

// Table holds one language's symptom entries. Insertion order is preserved:
// the matcher breaks score ties in favor of the earliest entry, and that
// ordering must be stable across runs.
type Table struct {
	entries []Entry
	seen    map[string]int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{seen: make(map[string]int)}
}

// Add appends an entry, replacing in place if the phrase was already present
// so a re-add cannot change tie-break ordering.
func (t *Table) Add(e Entry) {
	if i, ok := t.seen[e.Phrase]; ok {
		t.entries[i] = e
		return
	}
	t.seen[e.Phrase] = len(t.entries)
	t.entries = append(t.entries, e)
}

// Entries returns the entries in insertion order. Callers must not mutate.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Len reports the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Catalog is an immutable set of per-language tables. It is safe to share
// across concurrent request handlers; reloads swap whole catalogs.
type Catalog struct {
	tables map[language.Language]*Table
}

// NewCatalog builds a catalog from per-language tables.
func NewCatalog(tables map[language.Language]*Table) *Catalog {
	if tables == nil {
		tables = make(map[language.Language]*Table)
	}
	return &Catalog{tables: tables}
}

// Table returns the table for lang, or an empty table if none is loaded.
func (c *Catalog) Table(lang language.Language) *Table {
	if t, ok := c.tables[lang]; ok {
		return t
	}
	return NewTable()
}

// Counts reports entries per language, for the health endpoint.
func (c *Catalog) Counts() map[language.Language]int {
	out := make(map[language.Language]int, len(c.tables))
	for lang, t := range c.tables {
		out[lang] = t.Len()
	}
	return out
}
