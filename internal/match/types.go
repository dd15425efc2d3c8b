// internal/match/types.go
//
// Core type definitions for the matching game.
// Defines:
//   - Side: which face of a pair a card shows (source word / target definition).
//   - Card: one card on a board.
//   - Result/Outcome: what a selection did to the round.
//   - Snapshot: a copy of round state for the presentation layer.

package match

import (
	"errors"
	"time"
)

// Side represents the face of a card.
//   - "source": the English word plus its part-of-speech tag.
//   - "target": the definition text with the tag stripped.
type Side string

const (
	SideSource Side = "source"
	SideTarget Side = "target"
)

// Card is a single card on a board.
type Card struct {
	ID       string `json:"id"`       // Unique within the deck.
	GroupKey string `json:"-"`        // Word + definition of the owning entry; never sent to clients.
	Face     string `json:"face"`     // Rendered text.
	Side     Side   `json:"side"`     // Source or target.
	Matched  bool   `json:"isMatched"` // True once paired.
}

// Result is the coarse effect of a selection.
type Result string

const (
	ResultIgnored    Result = "ignored"    // No state change.
	ResultSelected   Result = "selected"   // First card of a pair held.
	ResultMatched    Result = "matched"    // Pair completed.
	ResultMismatched Result = "mismatched" // Pair rejected; buffer clears after the delay.
)

// Reasons attached to ResultIgnored.
const (
	ReasonMatched  = "already_matched"
	ReasonSelected = "already_selected"
	ReasonBusy     = "comparing"
	ReasonFinished = "finished"
	ReasonClosed   = "closed"
)

// Outcome reports what a selection did.
type Outcome struct {
	Result   Result   `json:"result"`
	Reason   string   `json:"reason,omitempty"`
	Cards    []string `json:"cards,omitempty"` // Card ids involved in a match/mismatch.
	Finished bool     `json:"finished"`        // True if this selection completed the round.
}

// Snapshot is a point-in-time copy of a round.
type Snapshot struct {
	Cards          []Card   `json:"cards"`
	Selected       []string `json:"selected"`
	MatchedPairs   int      `json:"matchedPairs"`
	TotalPairs     int      `json:"totalPairs"`
	Finished       bool     `json:"finished"`
	Frozen         bool     `json:"frozen"`
	ElapsedSeconds float64  `json:"elapsedSeconds"`
}

// Errors returned by Round and Duel.
var (
	ErrUnknownCard  = errors.New("match: unknown card")
	ErrUnknownBoard = errors.New("match: unknown board")
)

// DefaultMismatchDelay is how long a mismatched pair stays selected.
const DefaultMismatchDelay = 800 * time.Millisecond
