// internal/match/engine.go
//
// Pair-selection state machine for one board.
// Responsibilities:
//   - Hold the deck, the selection buffer (0–2 cards) and the matched-pair counter.
//   - Compare two selected cards: same group key and different side is a match.
//   - Clear a mismatched pair after a delay via a task on the round's clock.
//   - Finish when every pair is matched; freeze/close on demand.
//
// States: idle (0 selected) → one selected → comparing (2 selected) → idle.
// While comparing, further selections are ignored until the buffer clears.
//
// Notes:
//   - Selections on a finished, frozen or closed round are ignored.
//   - The on-match callback runs after the round's lock is released.

package match

import (
	"slices"
	"sync"
	"time"

	"github.com/robalobadob/vocabgame/internal/clock"
)

// Options configures a Round. Zero values pick defaults.
type Options struct {
	Clock         clock.Clock
	MismatchDelay time.Duration
	// OnMatch is called after every match with the updated counter.
	OnMatch func(matched, total int)
}

// Round is the state of one board from deck generation to completion or abort.
type Round struct {
	mu       sync.Mutex
	clock    clock.Clock
	delay    time.Duration
	onMatch  func(matched, total int)
	cards    []Card
	index    map[string]int // card id -> position in cards
	selected []string       // at most two card ids
	matched  int
	total    int
	started  time.Time
	ended    time.Time
	finished bool // all pairs matched
	frozen   bool // no further selections (duel over)
	closed   bool // aborted
	pending  clock.Timer
	gen      int // bumps whenever a pending clear becomes stale
}

// NewRound starts a round over deck. The round owns deck from here on.
func NewRound(deck []Card, opts Options) *Round {
	if opts.Clock == nil {
		opts.Clock = clock.System()
	}
	if opts.MismatchDelay <= 0 {
		opts.MismatchDelay = DefaultMismatchDelay
	}
	r := &Round{
		clock:   opts.Clock,
		delay:   opts.MismatchDelay,
		onMatch: opts.OnMatch,
		cards:   deck,
		index:   make(map[string]int, len(deck)),
		total:   len(deck) / 2,
		started: opts.Clock.Now(),
	}
	for i, c := range deck {
		r.index[c.ID] = i
	}
	if r.total == 0 {
		r.finished, r.frozen, r.ended = true, true, r.started
	}
	return r
}

// Select applies a click on cardID.
// Returns ErrUnknownCard for ids not in the deck; every other rejected
// click is a silent no-op reported as ResultIgnored.
func (r *Round) Select(cardID string) (Outcome, error) {
	r.mu.Lock()
	out, notify, err := r.selectLocked(cardID)
	r.mu.Unlock()
	if notify != nil {
		notify()
	}
	return out, err
}

func (r *Round) selectLocked(cardID string) (Outcome, func(), error) {
	pos, ok := r.index[cardID]
	if !ok {
		return Outcome{}, nil, ErrUnknownCard
	}
	switch {
	case r.closed:
		return ignored(ReasonClosed), nil, nil
	case r.finished || r.frozen:
		return ignored(ReasonFinished), nil, nil
	case r.cards[pos].Matched:
		return ignored(ReasonMatched), nil, nil
	case slices.Contains(r.selected, cardID):
		return ignored(ReasonSelected), nil, nil
	case len(r.selected) >= 2:
		return ignored(ReasonBusy), nil, nil
	}

	r.selected = append(r.selected, cardID)
	if len(r.selected) < 2 {
		return Outcome{Result: ResultSelected, Cards: []string{cardID}}, nil, nil
	}

	ids := []string{r.selected[0], r.selected[1]}
	c1, c2 := &r.cards[r.index[ids[0]]], &r.cards[r.index[ids[1]]]

	if c1.GroupKey != c2.GroupKey || c1.Side == c2.Side {
		r.scheduleClearLocked()
		return Outcome{Result: ResultMismatched, Cards: ids}, nil, nil
	}

	c1.Matched, c2.Matched = true, true
	r.matched++
	r.selected = r.selected[:0]
	if r.matched == r.total {
		r.finished = true
		r.ended = r.clock.Now()
	}

	var notify func()
	if r.onMatch != nil {
		matched, total, cb := r.matched, r.total, r.onMatch
		notify = func() { cb(matched, total) }
	}
	return Outcome{Result: ResultMatched, Cards: ids, Finished: r.finished}, notify, nil
}

// scheduleClearLocked arms the mismatch-clear task.
func (r *Round) scheduleClearLocked() {
	r.gen++
	gen := r.gen
	r.pending = r.clock.AfterFunc(r.delay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.gen != gen || r.closed {
			return
		}
		r.selected = r.selected[:0]
		r.pending = nil
	})
}

// cancelPendingLocked stops a scheduled mismatch clear, if any.
func (r *Round) cancelPendingLocked() {
	r.gen++
	if r.pending != nil {
		r.pending.Stop()
		r.pending = nil
	}
}

// Freeze rejects further selections and cancels pending tasks, keeping the
// current state readable. Used when the other duel board wins.
func (r *Round) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return
	}
	r.cancelPendingLocked()
	r.frozen = true
	if r.ended.IsZero() {
		r.ended = r.clock.Now()
	}
}

// Close aborts the round: pending tasks are cancelled and no callback will
// touch the round afterwards.
func (r *Round) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.cancelPendingLocked()
	r.closed = true
	r.onMatch = nil
	if r.ended.IsZero() {
		r.ended = r.clock.Now()
	}
}

// Finished reports whether every pair has been matched.
func (r *Round) Finished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finished
}

// Elapsed is the time from round start to completion (or to now while
// the round is still running).
func (r *Round) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.elapsedLocked()
}

func (r *Round) elapsedLocked() time.Duration {
	end := r.ended
	if end.IsZero() {
		end = r.clock.Now()
	}
	return end.Sub(r.started)
}

// Snapshot copies the round state.
func (r *Round) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		Cards:          slices.Clone(r.cards),
		Selected:       append([]string{}, r.selected...),
		MatchedPairs:   r.matched,
		TotalPairs:     r.total,
		Finished:       r.finished,
		Frozen:         r.frozen || r.closed,
		ElapsedSeconds: r.elapsedLocked().Seconds(),
	}
}

func ignored(reason string) Outcome {
	return Outcome{Result: ResultIgnored, Reason: reason}
}
