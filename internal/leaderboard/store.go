// internal/leaderboard/store.go
//
// Leaderboard for timed matching challenges.
// Responsibilities:
//   - Record a challenger's completion time for a challenge.
//   - List entries fastest first (ties keep insertion order).
//   - Report a time's rank and reset a challenge's board.
//
// Times are stored in whole milliseconds in the match_results table.

package leaderboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultLimit caps Top when no limit is given.
const DefaultLimit = 20

// ErrEmptyName is returned when recording an entry without a name.
var ErrEmptyName = errors.New("leaderboard: name required")

// Entry is one finished round.
type Entry struct {
	Name             string  `json:"name"`
	TimeTakenSeconds float64 `json:"timeTakenSeconds"`
}

// FromDuration builds an Entry from a measured round time, rounded to the
// whole milliseconds the store keeps.
func FromDuration(name string, d time.Duration) Entry {
	return Entry{Name: name, TimeTakenSeconds: float64(d.Round(time.Millisecond).Milliseconds()) / 1000}
}

func (e Entry) millis() int64 {
	return int64(e.TimeTakenSeconds*1000 + 0.5)
}

// Sort orders entries fastest first, keeping the order of equal times.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TimeTakenSeconds < entries[j].TimeTakenSeconds
	})
}

// Store persists leaderboard entries in SQLite.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record appends e to the challenge's board.
func (s *Store) Record(ctx context.Context, challengeID string, e Entry) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return ErrEmptyName
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO match_results (challenge_id, name, time_taken_ms) VALUES (?, ?, ?)`,
		challengeID, e.Name, e.millis(),
	)
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	return nil
}

// Top returns up to limit entries, fastest first.
func (s *Store) Top(ctx context.Context, challengeID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT name, time_taken_ms
        FROM match_results
        WHERE challenge_id=?
        ORDER BY time_taken_ms ASC, id ASC
        LIMIT ?`, challengeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			name string
			ms   int64
		)
		if err := rows.Scan(&name, &ms); err != nil {
			return nil, err
		}
		out = append(out, Entry{Name: name, TimeTakenSeconds: float64(ms) / 1000})
	}
	return out, rows.Err()
}

// Rank returns the 1-based position a time of d would take on the board,
// counting only strictly faster entries ahead of it.
func (s *Store) Rank(ctx context.Context, challengeID string, d time.Duration) (int, error) {
	var faster int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM match_results WHERE challenge_id=? AND time_taken_ms < ?`,
		challengeID, FromDuration("", d).millis(),
	).Scan(&faster)
	if err != nil {
		return 0, fmt.Errorf("rank: %w", err)
	}
	return faster + 1, nil
}

// Reset deletes every entry of a challenge and reports how many were removed.
func (s *Store) Reset(ctx context.Context, challengeID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM match_results WHERE challenge_id=?`, challengeID)
	if err != nil {
		return 0, fmt.Errorf("reset leaderboard: %w", err)
	}
	return res.RowsAffected()
}
