package match

import (
	"math/rand/v2"
	"strconv"

	"github.com/robalobadob/vocabgame/internal/vocab"
)

// BuildDeck returns two cards per entry, uniformly shuffled.
// Card ids are "source-<i>" and "target-<i>" where i is the entry index.
func BuildDeck(entries []vocab.Entry, rng *rand.Rand) []Card {
	return buildDeck("", entries, rng)
}

// BuildDuelDecks returns one deck per duel board. Both decks hold the same
// pairs, shuffled independently, with ids prefixed by the board name.
func BuildDuelDecks(entries []vocab.Entry, rng *rand.Rand) [2][]Card {
	return [2][]Card{
		buildDeck(string(BoardP1)+"-", entries, rng),
		buildDeck(string(BoardP2)+"-", entries, rng),
	}
}

func buildDeck(prefix string, entries []vocab.Entry, rng *rand.Rand) []Card {
	cards := make([]Card, 0, 2*len(entries))
	for i, e := range entries {
		tag, rest := vocab.SplitPartOfSpeech(e.Definition)
		key := e.GroupKey()
		n := strconv.Itoa(i)
		cards = append(cards,
			Card{ID: prefix + "source-" + n, GroupKey: key, Face: e.Word + "\n" + tag, Side: SideSource},
			Card{ID: prefix + "target-" + n, GroupKey: key, Face: rest, Side: SideTarget},
		)
	}
	// Fisher–Yates.
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	return cards
}
