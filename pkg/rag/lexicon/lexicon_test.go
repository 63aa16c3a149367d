package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexicon_IsPolicy(t *testing.T) {
	lex := Default()

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"return keyword", "iade politikası", true},
		{"multi word keyword", "kredi kartı ile alabilir miyim", true},
		{"turkish capital dotted i", "İADE nasıl yapılır", true},
		{"product only", "vineda 5696", false},
		{"unknown", "xyz123notfound", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lex.IsPolicy(lex.Lower(tt.query)))
		})
	}
}

func TestLexicon_MatchAliasAndName(t *testing.T) {
	lex := Default()

	id, ok := lex.MatchAlias(lex.Lower("Vineda5696 var mı"))
	require.True(t, ok)
	assert.Equal(t, "vineda_5696", id)

	_, ok = lex.MatchAlias("vineda")
	assert.False(t, ok)

	// table order decides when both names appear
	m, ok := lex.MatchName("vineda mı retro mu")
	require.True(t, ok)
	assert.Equal(t, "retro_2660", m.ID)
}

func TestLexicon_ColorsInTableOrder(t *testing.T) {
	lex := Default()

	groups := lex.ColorsIn("mavi ve siyah çanta")
	require.Len(t, groups, 2)
	assert.Equal(t, "siyah", groups[0].Keyword)
	assert.Equal(t, "mavi", groups[1].Keyword)
	assert.Equal(t, []string{"Flother Mat Mavi", "Napa Mavi"}, groups[1].Variants)
}

func TestLexicon_NewCopiesInput(t *testing.T) {
	f := DefaultFile()
	lex := New(f)

	f.Colors[0].Variants[0] = "mutated"

	assert.Equal(t, "Flother Mat Siyah", lex.ColorsIn("siyah")[0].Variants[0])
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	content := `
locale: en
policy_keywords: [refund, shipping]
names:
  - phrase: classic
    id: classic_100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lex, err := Load(path)
	require.NoError(t, err)

	assert.True(t, lex.IsPolicy("what is the refund window"))
	assert.False(t, lex.IsPolicy("iade"))

	m, ok := lex.MatchName("the classic wallet")
	require.True(t, ok)
	assert.Equal(t, "classic_100", m.ID)

	// untouched sections fall back to the defaults
	assert.Equal(t, "Renk bilgisi yok", lex.Prompt().NoColors)
	assert.Len(t, lex.ColorsIn("siyah"), 1)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy_keywords: [unterminated"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)

	lex, err := Load("")
	require.NoError(t, err)
	assert.NotNil(t, lex)
}

func TestLexicon_Folds(t *testing.T) {
	lex := Default()

	assert.Equal(t, []string{"vineda"}, lex.Folds("vineda"))
	assert.Equal(t, []string{"vıneda", "vineda"}, lex.Folds("VINEDA"))

	folds := lex.Folds("İADE")
	require.NotEmpty(t, folds)
	assert.Equal(t, "iade", folds[0])

	root := New(File{Locale: ""})
	assert.Equal(t, []string{"iade"}, root.Folds("IADE"))
}
