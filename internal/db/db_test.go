package db

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vocabgame/assets"
)

func TestMigrate_EmbeddedIsIdempotent(t *testing.T) {
	db, err := Open(MemoryDSN)
	require.NoError(t, err)
	defer db.Close()

	migrations, err := assets.Migrations()
	require.NoError(t, err)
	require.NoError(t, Migrate(db, migrations))
	require.NoError(t, Migrate(db, migrations))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)

	_, err = db.Exec(`INSERT INTO match_results (challenge_id, name, time_taken_ms) VALUES ('c', 'amy', 1000)`)
	assert.NoError(t, err)
}

func TestMigrate_OrderAndFailure(t *testing.T) {
	db, err := Open(MemoryDSN)
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"002_b.sql": {Data: []byte(`ALTER TABLE a ADD COLUMN extra TEXT;`)},
		"001_a.sql": {Data: []byte(`CREATE TABLE a (id INTEGER);`)},
		"notes.txt": {Data: []byte(`ignored`)},
	}
	require.NoError(t, Migrate(db, fsys))

	bad := fstest.MapFS{"003_bad.sql": {Data: []byte(`CREATE TABLE;`)}}
	err = Migrate(db, bad)
	require.Error(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations WHERE name='003_bad.sql'`).Scan(&n))
	assert.Zero(t, n, "failed migration must not be recorded")
}

func TestOpen_FileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()
	assert.NoError(t, db.Ping())
	assert.FileExists(t, path)
}
