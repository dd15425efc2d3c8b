package match

import (
	"math/rand/v2"
	"sync"

	"github.com/robalobadob/vocabgame/internal/vocab"
)

// Board names a side of a duel.
type Board string

const (
	BoardP1 Board = "p1"
	BoardP2 Board = "p2"
)

// Duel is a two-board race over the same pairs. Boards never share state;
// the first board to match every pair wins and both boards freeze.
type Duel struct {
	mu     sync.Mutex
	boards map[Board]*Round
	winner Board
	closed bool
	notify []func() // caller callbacks queued during Select
}

// DuelSnapshot is a point-in-time copy of a duel.
type DuelSnapshot struct {
	Boards     map[Board]Snapshot `json:"boards"`
	Winner     Board              `json:"winner,omitempty"`
	TotalPairs int                `json:"totalPairs"`
}

// NewDuel builds independently shuffled decks for both boards.
// opts.OnMatch, if set, is called for matches on either board. It runs
// inside the Select call that made the match, after the duel's lock is
// released, so it may call Winner or Snapshot; the board is the one passed
// to that Select.
func NewDuel(entries []vocab.Entry, rng *rand.Rand, opts Options) *Duel {
	d := &Duel{boards: make(map[Board]*Round, 2)}
	decks := BuildDuelDecks(entries, rng)
	for i, b := range []Board{BoardP1, BoardP2} {
		board := b
		o := opts
		o.OnMatch = func(matched, total int) {
			d.boardMatched(board, matched, total)
			if cb := opts.OnMatch; cb != nil {
				d.notify = append(d.notify, func() { cb(matched, total) })
			}
		}
		d.boards[board] = NewRound(decks[i], o)
	}
	return d
}

// Select applies a click on board. Once a winner exists every selection
// is ignored.
func (d *Duel) Select(board Board, cardID string) (Outcome, error) {
	d.mu.Lock()
	out, err := d.selectLocked(board, cardID)
	notify := d.notify
	d.notify = nil
	d.mu.Unlock()
	for _, f := range notify {
		f()
	}
	return out, err
}

func (d *Duel) selectLocked(board Board, cardID string) (Outcome, error) {
	r, ok := d.boards[board]
	if !ok {
		return Outcome{}, ErrUnknownBoard
	}
	if d.closed {
		return ignored(ReasonClosed), nil
	}
	if d.winner != "" {
		return ignored(ReasonFinished), nil
	}
	// boardMatched runs inside this call with d.mu held.
	return r.Select(cardID)
}

// boardMatched records the winner. Called with d.mu held, after the
// board's own lock has been released.
func (d *Duel) boardMatched(board Board, matched, total int) {
	if matched < total || d.winner != "" {
		return
	}
	d.winner = board
	for _, r := range d.boards {
		r.Freeze()
	}
}

// Winner returns the winning board, or "" while the race is on.
func (d *Duel) Winner() Board {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.winner
}

// Close aborts both boards.
func (d *Duel) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	for _, r := range d.boards {
		r.Close()
	}
}

// Snapshot copies both boards.
func (d *Duel) Snapshot() DuelSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := DuelSnapshot{Boards: make(map[Board]Snapshot, len(d.boards)), Winner: d.winner}
	for b, r := range d.boards {
		s := r.Snapshot()
		out.Boards[b] = s
		out.TotalPairs = s.TotalPairs
	}
	return out
}
