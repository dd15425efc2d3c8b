package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vocabgame/internal/random"
	"github.com/robalobadob/vocabgame/internal/vocab"
)

func TestBuildDeck_SizeAndPairing(t *testing.T) {
	cat, err := vocab.Load(vocab.Source{})
	require.NoError(t, err)
	entries := cat.Entries[:12]

	deck := BuildDeck(entries, random.New(4))
	require.Len(t, deck, 2*len(entries))

	groups := map[string][]Card{}
	ids := map[string]bool{}
	for _, c := range deck {
		require.False(t, ids[c.ID], "duplicate id %s", c.ID)
		ids[c.ID] = true
		assert.False(t, c.Matched)
		groups[c.GroupKey] = append(groups[c.GroupKey], c)
	}
	require.Len(t, groups, len(entries))
	for key, cs := range groups {
		require.Len(t, cs, 2, key)
		assert.NotEqual(t, cs[0].Side, cs[1].Side, key)
	}
}

func TestBuildDeck_Faces(t *testing.T) {
	entries := []vocab.Entry{
		{Word: "abuse", Definition: "(n. [U]) 虐待"},
		{Word: "herd", Definition: "獸群"},
	}
	deck := BuildDeck(entries, random.New(1))

	faces := map[string]Card{}
	for _, c := range deck {
		faces[c.ID] = c
	}
	assert.Equal(t, "abuse\n(n. [U])", faces["source-0"].Face)
	assert.Equal(t, SideSource, faces["source-0"].Side)
	assert.Equal(t, "虐待", faces["target-0"].Face)
	assert.Equal(t, SideTarget, faces["target-0"].Side)
	assert.Equal(t, "abuse(n. [U]) 虐待", faces["target-0"].GroupKey)

	assert.Equal(t, "herd\n", faces["source-1"].Face)
	assert.Equal(t, "獸群", faces["target-1"].Face)
}

func TestBuildDeck_ShuffleIsUniform(t *testing.T) {
	entries := testEntries()
	rng := random.New(99)
	counts := map[string]int{}
	const trials = 6000
	for i := 0; i < trials; i++ {
		counts[BuildDeck(entries, rng)[0].ID]++
	}
	require.Len(t, counts, 6)
	for id, n := range counts {
		assert.InDeltaf(t, trials/6, n, trials/24, "card %s first", id)
	}
}

func TestBuildDuelDecks_IndependentBoards(t *testing.T) {
	cat, err := vocab.Load(vocab.Source{})
	require.NoError(t, err)
	entries := cat.Entries[:9]

	decks := BuildDuelDecks(entries, random.New(8))
	keys := func(cs []Card) map[string]int {
		m := map[string]int{}
		for _, c := range cs {
			m[c.GroupKey]++
		}
		return m
	}
	assert.Equal(t, keys(decks[0]), keys(decks[1]))

	for _, c := range decks[0] {
		assert.True(t, strings.HasPrefix(c.ID, "p1-"), c.ID)
	}
	for _, c := range decks[1] {
		assert.True(t, strings.HasPrefix(c.ID, "p2-"), c.ID)
	}
}
