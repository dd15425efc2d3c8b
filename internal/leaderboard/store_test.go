package leaderboard

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vocabgame/assets"
	"github.com/robalobadob/vocabgame/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	conn, err := db.Open(db.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	migrations, err := assets.Migrations()
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn, migrations))
	return NewStore(conn)
}

func TestStore_TopIsAscendingByTime(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for _, e := range []Entry{
		{Name: "s103", TimeTakenSeconds: 42.5},
		{Name: "s101", TimeTakenSeconds: 31.2},
		{Name: "s102", TimeTakenSeconds: 58},
		{Name: "s104", TimeTakenSeconds: 31.2},
	} {
		require.NoError(t, s.Record(ctx, "class-a", e))
	}
	require.NoError(t, s.Record(ctx, "class-b", Entry{Name: "other", TimeTakenSeconds: 1}))

	top, err := s.Top(ctx, "class-a", 0)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "s101", TimeTakenSeconds: 31.2},
		{Name: "s104", TimeTakenSeconds: 31.2},
		{Name: "s103", TimeTakenSeconds: 42.5},
		{Name: "s102", TimeTakenSeconds: 58},
	}, top)

	top, err = s.Top(ctx, "class-a", 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestStore_Rank(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, "c", Entry{Name: "a", TimeTakenSeconds: 10}))
	require.NoError(t, s.Record(ctx, "c", Entry{Name: "b", TimeTakenSeconds: 20}))

	rank, err := s.Rank(ctx, "c", 15*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2, rank)

	rank, err = s.Rank(ctx, "c", 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
}

func TestStore_ResetAndValidation(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, "c", Entry{Name: "a", TimeTakenSeconds: 3}))
	assert.ErrorIs(t, s.Record(ctx, "c", Entry{Name: "   ", TimeTakenSeconds: 3}), ErrEmptyName)

	n, err := s.Reset(ctx, "c")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	top, err := s.Top(ctx, "c", 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestStore_ClosedDB(t *testing.T) {
	conn, err := sql.Open("sqlite3", db.MemoryDSN)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	_, err = NewStore(conn).Top(context.Background(), "c", 1)
	assert.Error(t, err)
}

func TestSort_Stable(t *testing.T) {
	entries := []Entry{{"c", 3}, {"a", 1}, {"b", 3}, {"d", 2}}
	Sort(entries)
	assert.Equal(t, []Entry{{"a", 1}, {"d", 2}, {"c", 3}, {"b", 3}}, entries)
}

func TestFromDuration(t *testing.T) {
	e := FromDuration("amy", 12345*time.Millisecond)
	assert.InDelta(t, 12.345, e.TimeTakenSeconds, 1e-9)
	assert.EqualValues(t, 12345, e.millis())

	// Sub-millisecond parts round to what the store keeps.
	e = FromDuration("amy", 1234567*time.Microsecond)
	assert.Equal(t, 1.235, e.TimeTakenSeconds)
	assert.Equal(t, float64(e.millis())/1000, e.TimeTakenSeconds)
}
