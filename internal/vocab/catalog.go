// internal/vocab/catalog.go
//
// Loads the vocabulary catalog and the word-family table.
//
// Initialization behavior (Load):
//   1. If Source.CatalogFile is set, entries are read from that JSON file,
//      otherwise from the embedded assets/vocabulary.json.
//   2. If Source.FamiliesFile is set, the family table is read from that YAML
//      file, otherwise from the embedded assets/families.yaml.
//
// Constraints:
//   • Words must be non-empty lowercase a–z.
//   • Every entry needs a definition.
//   • The catalog must not be empty.

package vocab

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/vocabgame/assets"
)

// ErrEmptyCatalog is returned when no entries could be loaded.
var ErrEmptyCatalog = errors.New("vocab: catalog is empty")

// Source names optional override files for the embedded tables.
type Source struct {
	CatalogFile  string
	FamiliesFile string
}

// Load reads the catalog and family table described by src.
func Load(src Source) (*Catalog, error) {
	var (
		raw []byte
		err error
	)
	if src.CatalogFile != "" {
		raw, err = os.ReadFile(src.CatalogFile)
	} else {
		raw, err = assets.Vocabulary()
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	entries, err := ParseEntries(raw)
	if err != nil {
		return nil, err
	}

	if src.FamiliesFile != "" {
		raw, err = os.ReadFile(src.FamiliesFile)
	} else {
		raw, err = assets.Families()
	}
	if err != nil {
		return nil, fmt.Errorf("read families: %w", err)
	}
	fam, err := ParseFamilies(raw)
	if err != nil {
		return nil, err
	}
	return &Catalog{Entries: entries, Families: fam}, nil
}

// ParseEntries decodes and validates a JSON array of entries.
func ParseEntries(raw []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i := range entries {
		e := &entries[i]
		e.Word = strings.TrimSpace(e.Word)
		e.Definition = strings.TrimSpace(e.Definition)
		if !isWord(e.Word) {
			return nil, fmt.Errorf("entry %d: invalid word %q", i, e.Word)
		}
		if e.Definition == "" {
			return nil, fmt.Errorf("entry %d (%s): missing definition", i, e.Word)
		}
	}
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	return entries, nil
}

// ParseFamilies decodes a YAML mapping of word -> root. Keys and values
// are lowercased; empty roots are dropped.
func ParseFamilies(raw []byte) (Families, error) {
	var m map[string]string
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode families: %w", err)
	}
	fam := make(Families, len(m))
	for w, r := range m {
		w = strings.ToLower(strings.TrimSpace(w))
		r = strings.ToLower(strings.TrimSpace(r))
		if w == "" || r == "" {
			continue
		}
		fam[w] = r
	}
	return fam, nil
}

// isWord reports whether s is non-empty lowercase ASCII letters.
func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
