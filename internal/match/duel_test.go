package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vocabgame/internal/clock"
	"github.com/robalobadob/vocabgame/internal/random"
)

func duelSelect(t *testing.T, d *Duel, b Board, id string) Outcome {
	t.Helper()
	out, err := d.Select(b, id)
	require.NoError(t, err)
	return out
}

func TestDuel_BoardsAreIndependent(t *testing.T) {
	clk := clock.NewManual(t0)
	d := NewDuel(testEntries(), random.New(5), Options{Clock: clk})

	duelSelect(t, d, BoardP1, "p1-source-0")
	out := duelSelect(t, d, BoardP1, "p1-target-0")
	require.Equal(t, ResultMatched, out.Result)

	// A pending selection on p1 does not block p2.
	duelSelect(t, d, BoardP1, "p1-source-1")
	out = duelSelect(t, d, BoardP2, "p2-source-2")
	assert.Equal(t, ResultSelected, out.Result)

	snap := d.Snapshot()
	assert.Equal(t, 1, snap.Boards[BoardP1].MatchedPairs)
	assert.Zero(t, snap.Boards[BoardP2].MatchedPairs)
	assert.Equal(t, []string{"p1-source-1"}, snap.Boards[BoardP1].Selected)
	assert.Equal(t, []string{"p2-source-2"}, snap.Boards[BoardP2].Selected)
	assert.Equal(t, 3, snap.TotalPairs)

	// Cards of one board are unknown on the other.
	_, err := d.Select(BoardP2, "p1-target-1")
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestDuel_FirstToFinishWinsAndFreezesBoth(t *testing.T) {
	clk := clock.NewManual(t0)
	matches := 0
	d := NewDuel(testEntries(), random.New(6), Options{
		Clock:   clk,
		OnMatch: func(int, int) { matches++ },
	})

	duelSelect(t, d, BoardP2, "p2-source-0")
	duelSelect(t, d, BoardP2, "p2-target-0")
	duelSelect(t, d, BoardP2, "p2-source-1") // left pending on the losing board

	for _, i := range []string{"2", "0", "1"} {
		duelSelect(t, d, BoardP1, "p1-source-"+i)
		duelSelect(t, d, BoardP1, "p1-target-"+i)
	}

	assert.Equal(t, BoardP1, d.Winner())
	assert.Equal(t, 4, matches)

	before := d.Snapshot()
	assert.True(t, before.Boards[BoardP1].Finished)
	assert.True(t, before.Boards[BoardP2].Frozen)
	assert.Equal(t, 1, before.Boards[BoardP2].MatchedPairs)
	assert.Equal(t, []string{"p2-source-1"}, before.Boards[BoardP2].Selected)

	out := duelSelect(t, d, BoardP2, "p2-target-1")
	assert.Equal(t, ResultIgnored, out.Result)
	out = duelSelect(t, d, BoardP1, "p1-source-0")
	assert.Equal(t, ReasonFinished, out.Reason)
	assert.Equal(t, before, d.Snapshot())
}

func TestDuel_UnknownBoard(t *testing.T) {
	d := NewDuel(testEntries(), random.New(1), Options{Clock: clock.NewManual(t0)})
	_, err := d.Select("p3", "p1-source-0")
	assert.ErrorIs(t, err, ErrUnknownBoard)
}

func TestDuel_CloseCancelsTimers(t *testing.T) {
	clk := clock.NewManual(t0)
	d := NewDuel(testEntries(), random.New(2), Options{Clock: clk})
	duelSelect(t, d, BoardP1, "p1-source-0")
	duelSelect(t, d, BoardP1, "p1-target-1")
	duelSelect(t, d, BoardP2, "p2-source-0")
	duelSelect(t, d, BoardP2, "p2-target-2")
	require.Equal(t, 2, clk.Pending())

	d.Close()
	assert.Zero(t, clk.Pending())

	out := duelSelect(t, d, BoardP1, "p1-source-2")
	assert.Equal(t, ReasonClosed, out.Reason)
}

func TestDuel_OnMatchMayReadDuelState(t *testing.T) {
	var (
		d       *Duel
		winners []Board
	)
	d = NewDuel(testEntries(), random.New(9), Options{
		Clock: clock.NewManual(t0),
		OnMatch: func(matched, total int) {
			winners = append(winners, d.Winner())
			assert.Equal(t, matched, d.Snapshot().Boards[BoardP1].MatchedPairs)
		},
	})

	for _, i := range []string{"0", "1", "2"} {
		duelSelect(t, d, BoardP1, "p1-source-"+i)
		duelSelect(t, d, BoardP1, "p1-target-"+i)
	}
	assert.Equal(t, []Board{"", "", BoardP1}, winners)
}
