package database

import "fmt"

// Op names one parameterized operation against the star schema. Callers pass
// positional arguments in the column order documented on each Op.
type Op string

const (
	// song_id, title, artist_id, year, duration
	OpSongInsert Op = "song_insert"
	// artist_id, name, location, latitude, longitude
	OpArtistInsert Op = "artist_insert"
	// user_id, first_name, last_name, gender, level
	OpUserUpsert Op = "user_upsert"
	// start_time, hour, day, week, month, year, weekday
	OpTimeInsert Op = "time_insert"
	// start_time, user_id, level, song_id, artist_id, session_id, location, user_agent
	OpSongplayInsert Op = "songplay_insert"
	// title, artist name, duration -> song_id, artist_id
	OpSongSelect Op = "song_select"
)

// ConflictPolicy is what a write does when its natural key already exists.
type ConflictPolicy int

const (
	// AppendOnly rows have no natural key; every write adds a row.
	AppendOnly ConflictPolicy = iota
	// KeepExisting ignores the write and leaves the stored row untouched.
	KeepExisting
	// LastWriteWins overwrites the non-key columns of the stored row.
	LastWriteWins
)

func (p ConflictPolicy) String() string {
	switch p {
	case AppendOnly:
		return "append-only"
	case KeepExisting:
		return "keep-existing"
	case LastWriteWins:
		return "last-write-wins"
	}
	return fmt.Sprintf("ConflictPolicy(%d)", int(p))
}

// Policies is the deduplication contract of the destination. The pipeline
// emits repeated user and time rows and relies on these to collapse them.
var Policies = map[Op]ConflictPolicy{
	OpSongInsert:     KeepExisting,
	OpArtistInsert:   KeepExisting,
	OpUserUpsert:     LastWriteWins,
	OpTimeInsert:     KeepExisting,
	OpSongplayInsert: AppendOnly,
}

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite"
)

var statements = map[Dialect]map[Op]string{
	DialectPostgres: {
		OpSongInsert: `INSERT INTO songs (song_id, title, artist_id, year, duration)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (song_id) DO NOTHING`,
		OpArtistInsert: `INSERT INTO artists (artist_id, name, location, latitude, longitude)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (artist_id) DO NOTHING`,
		OpUserUpsert: `INSERT INTO users (user_id, first_name, last_name, gender, level)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id) DO UPDATE SET
				first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name,
				gender = EXCLUDED.gender,
				level = EXCLUDED.level`,
		OpTimeInsert: `INSERT INTO time (start_time, hour, day, week, month, year, weekday)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (start_time) DO NOTHING`,
		OpSongplayInsert: `INSERT INTO songplays (start_time, user_id, level, song_id, artist_id, session_id, location, user_agent)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		OpSongSelect: `SELECT s.song_id, s.artist_id
			FROM songs s JOIN artists a ON s.artist_id = a.artist_id
			WHERE s.title = $1 AND a.name = $2 AND s.duration = $3
			LIMIT 1`,
	},
	DialectMySQL: {
		OpSongInsert: `INSERT INTO songs (song_id, title, artist_id, year, duration)
			VALUES (?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE song_id = song_id`,
		OpArtistInsert: `INSERT INTO artists (artist_id, name, location, latitude, longitude)
			VALUES (?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE artist_id = artist_id`,
		OpUserUpsert: `INSERT INTO users (user_id, first_name, last_name, gender, level)
			VALUES (?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				first_name = VALUES(first_name),
				last_name = VALUES(last_name),
				gender = VALUES(gender),
				level = VALUES(level)`,
		OpTimeInsert: "INSERT INTO `time` (start_time, hour, day, week, month, year, weekday)" + `
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE start_time = start_time`,
		OpSongplayInsert: `INSERT INTO songplays (start_time, user_id, level, song_id, artist_id, session_id, location, user_agent)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		OpSongSelect: `SELECT s.song_id, s.artist_id
			FROM songs s JOIN artists a ON s.artist_id = a.artist_id
			WHERE s.title = ? AND a.name = ? AND s.duration = ?
			LIMIT 1`,
	},
	DialectSQLite: {
		OpSongInsert: `INSERT INTO songs (song_id, title, artist_id, year, duration)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (song_id) DO NOTHING`,
		OpArtistInsert: `INSERT INTO artists (artist_id, name, location, latitude, longitude)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (artist_id) DO NOTHING`,
		OpUserUpsert: `INSERT INTO users (user_id, first_name, last_name, gender, level)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (user_id) DO UPDATE SET
				first_name = excluded.first_name,
				last_name = excluded.last_name,
				gender = excluded.gender,
				level = excluded.level`,
		OpTimeInsert: `INSERT INTO time (start_time, hour, day, week, month, year, weekday)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (start_time) DO NOTHING`,
		OpSongplayInsert: `INSERT INTO songplays (start_time, user_id, level, song_id, artist_id, session_id, location, user_agent)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		OpSongSelect: `SELECT s.song_id, s.artist_id
			FROM songs s JOIN artists a ON s.artist_id = a.artist_id
			WHERE s.title = ? AND a.name = ? AND s.duration = ?
			LIMIT 1`,
	},
}

// Statement returns the SQL text registered for op in the given dialect.
func Statement(dialect Dialect, op Op) (string, error) {
	ops, ok := statements[dialect]
	if !ok {
		return "", fmt.Errorf("no statements registered for dialect %q", dialect)
	}
	query, ok := ops[op]
	if !ok {
		return "", fmt.Errorf("no %s statement registered for %q", dialect, op)
	}
	return query, nil
}
