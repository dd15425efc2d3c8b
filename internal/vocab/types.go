// internal/vocab/types.go
//
// Core type definitions for the vocabulary catalog.
// Defines:
//   - Entry: one sense of a word (polysemous words appear once per sense).
//   - Example: usage sentence with its translation.
//   - Families: word -> family root table.
//   - Catalog: the loaded static tables.

package vocab

// Example is a usage sentence for an entry.
type Example struct {
	Sentence    string `json:"sentence" yaml:"sentence"`
	Translation string `json:"translation" yaml:"translation"`
}

// Entry is one vocabulary item. Several entries may share Word when the
// word has more than one sense; Definition tells them apart.
type Entry struct {
	Word       string   `json:"word"`       // English spelling (lowercase a–z).
	Definition string   `json:"definition"` // Sense-specific definition, leading "(pos.)" tag included.
	Images     []string `json:"images"`     // Glyph hints (emoji).
	EnglishDef string   `json:"englishDef"` // English gloss.
	Example    Example  `json:"example"`
}

// GroupKey identifies the sense of an entry. Two cards pair only when
// their group keys are equal.
func (e Entry) GroupKey() string { return e.Word + e.Definition }

// Families maps a word to its family root.
type Families map[string]string

// Root returns the family root of word, or word itself if unmapped.
func (f Families) Root(word string) string {
	if r, ok := f[word]; ok && r != "" {
		return r
	}
	return word
}

// Catalog bundles the vocabulary entries with the family table.
type Catalog struct {
	Entries  []Entry
	Families Families
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.Entries) }

// Roots returns the number of distinct family roots in the catalog.
func (c *Catalog) Roots() int {
	seen := make(map[string]struct{}, len(c.Entries))
	for _, e := range c.Entries {
		seen[c.Families.Root(e.Word)] = struct{}{}
	}
	return len(seen)
}
