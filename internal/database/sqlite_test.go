package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) *SQLiteDriver {
	t.Helper()
	db := &SQLiteDriver{}
	require.NoError(t, db.Connect(":memory:"))
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Setup(context.Background()))
	return db
}

func countRows(t *testing.T, db *SQLiteDriver, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func seedSong(t *testing.T, db *SQLiteDriver) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, db.ExecuteTx(ctx, func(ctx context.Context) error {
		if err := db.ExecContext(ctx, OpSongInsert, "SOAAAAA", "Song A", "ARXXXXX", 2004, 180.5); err != nil {
			return err
		}
		return db.ExecContext(ctx, OpArtistInsert, "ARXXXXX", "Artist X", "", nil, nil)
	}))
}

func TestSongIndex_Lookup(t *testing.T) {
	db := newSQLite(t)
	seedSong(t, db)
	index := NewSongIndex(db)
	ctx := context.Background()

	songID, artistID, found, err := index.LookupSong(ctx, "Song A", "Artist X", 180.5)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "SOAAAAA", songID)
	assert.Equal(t, "ARXXXXX", artistID)

	misses := []struct {
		title, artist string
		duration      float64
	}{
		{"Song A", "Artist X", 999.9},
		{"Song A", "Artist Z", 180.5},
		{"song a", "Artist X", 180.5},
	}
	for _, m := range misses {
		_, _, found, err := index.LookupSong(ctx, m.title, m.artist, m.duration)
		require.NoError(t, err)
		assert.False(t, found, "%+v", m)
	}
}

func TestQueryRowContext_NoRows(t *testing.T) {
	db := newSQLite(t)
	var songID, artistID string
	err := db.QueryRowContext(context.Background(), OpSongSelect, "x", "y", 1.0).Scan(&songID, &artistID)
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestExecContext_UnknownOp(t *testing.T) {
	db := newSQLite(t)
	assert.Error(t, db.ExecContext(context.Background(), "drop_everything"))

	err := db.QueryRowContext(context.Background(), "drop_everything").Scan()
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoRows))
}

func TestExecuteTx_RollsBackOnError(t *testing.T) {
	db := newSQLite(t)
	boom := errors.New("boom")

	err := db.ExecuteTx(context.Background(), func(ctx context.Context) error {
		if err := db.ExecContext(ctx, OpSongInsert, "S1", "T", "A1", 2000, 1.0); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countRows(t, db, "songs"))
}

func TestConflictPolicies(t *testing.T) {
	db := newSQLite(t)
	ctx := context.Background()
	start := time.UnixMilli(1541121934796).UTC()

	exec := func(op Op, args ...interface{}) {
		t.Helper()
		require.NoError(t, db.ExecContext(ctx, op, args...))
	}

	exec(OpSongInsert, "S1", "First", "A1", 2000, 1.0)
	exec(OpSongInsert, "S1", "Second", "A1", 2001, 2.0)
	exec(OpUserUpsert, "10", "Lily", "Koch", "F", "free")
	exec(OpUserUpsert, "10", "Lily", "Koch", "F", "paid")
	exec(OpTimeInsert, start, 1, 2, 44, 11, 2018, "Friday")
	exec(OpTimeInsert, start, 1, 2, 44, 11, 2018, "Friday")
	exec(OpSongplayInsert, start, "10", "paid", nil, nil, int64(139), "loc", "ua")
	exec(OpSongplayInsert, start, "10", "paid", nil, nil, int64(139), "loc", "ua")

	var title, level string
	require.NoError(t, db.db.QueryRow("SELECT title FROM songs WHERE song_id = 'S1'").Scan(&title))
	require.NoError(t, db.db.QueryRow("SELECT level FROM users WHERE user_id = '10'").Scan(&level))

	assert.Equal(t, "First", title, "songs keep the existing row")
	assert.Equal(t, "paid", level, "users take the last write")
	assert.Equal(t, 1, countRows(t, db, "time"))
	assert.Equal(t, 2, countRows(t, db, "songplays"))
}

func TestReset_DropsTables(t *testing.T) {
	db := newSQLite(t)
	seedSong(t, db)

	require.NoError(t, db.Reset(context.Background()))
	var n int
	require.NoError(t, db.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('songs','artists','users','time','songplays')").Scan(&n))
	assert.Zero(t, n)

	require.NoError(t, db.Setup(context.Background()))
	assert.Equal(t, 0, countRows(t, db, "songs"))
}
