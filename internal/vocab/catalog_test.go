package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	cat, err := Load(Source{})
	require.NoError(t, err)

	assert.Equal(t, 40, cat.Len())
	assert.Equal(t, "economy", cat.Families.Root("economical"))
	assert.Equal(t, "legal", cat.Families.Root("illegally"))
	assert.Less(t, cat.Roots(), cat.Len())

	for _, e := range cat.Entries {
		assert.NotEmpty(t, e.Definition, e.Word)
	}
}

func TestLoad_OverrideFiles(t *testing.T) {
	dir := t.TempDir()
	catPath := filepath.Join(dir, "catalog.json")
	famPath := filepath.Join(dir, "families.yaml")
	require.NoError(t, os.WriteFile(catPath, []byte(`[
		{"word":"tame","definition":"(vt.) 馴服"},
		{"word":"tamed","definition":"(adj.) 馴服的"}
	]`), 0o644))
	require.NoError(t, os.WriteFile(famPath, []byte("Tamed: TAME\n"), 0o644))

	cat, err := Load(Source{CatalogFile: catPath, FamiliesFile: famPath})
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, "tame", cat.Families.Root("tamed"))
	assert.Equal(t, 1, cat.Roots())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(Source{CatalogFile: filepath.Join(t.TempDir(), "nope.json")})
	require.Error(t, err)
}

func TestParseEntries_Validation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", `[]`},
		{"bad json", `{`},
		{"uppercase word", `[{"word":"Abuse","definition":"(n.) x"}]`},
		{"missing definition", `[{"word":"abuse","definition":"  "}]`},
		{"empty word", `[{"word":"","definition":"(n.) x"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEntries([]byte(tt.raw))
			assert.Error(t, err)
		})
	}

	_, err := ParseEntries([]byte(`[]`))
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestFamilies_DefaultRoot(t *testing.T) {
	var fam Families
	assert.Equal(t, "herd", fam.Root("herd"))

	fam = Families{"operator": "operate", "blank": ""}
	assert.Equal(t, "operate", fam.Root("operator"))
	assert.Equal(t, "blank", fam.Root("blank"))
}

func TestSplitPartOfSpeech(t *testing.T) {
	tests := []struct {
		in, tag, rest string
	}{
		{"(n. [U]) 虐待", "(n. [U])", "虐待"},
		{"(vt.) 強調", "(vt.)", "強調"},
		{"(n. [usually sing.]) 誘惑；吸引力", "(n. [usually sing.])", "誘惑；吸引力"},
		{"(adj.) 經濟上的；經濟學的", "(adj.)", "經濟上的；經濟學的"},
		{"no tag here", "", "no tag here"},
		{"(N.) upper", "", "(N.) upper"},
	}
	for _, tt := range tests {
		tag, rest := SplitPartOfSpeech(tt.in)
		assert.Equal(t, tt.tag, tag, tt.in)
		assert.Equal(t, tt.rest, rest, tt.in)
	}
}
