package database

// Tables in drop order: the fact table first, then the dimensions.
var Tables = []string{"songplays", "users", "songs", "artists", "time"}

func GetSchema(dialect Dialect) []string {
	switch dialect {
	case DialectPostgres:
		return postgresSchema
	case DialectMySQL:
		return mysqlSchema
	case DialectSQLite:
		return sqliteSchema
	}
	return nil
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS songs (
		song_id VARCHAR(64) PRIMARY KEY,
		title TEXT NOT NULL,
		artist_id VARCHAR(64) NOT NULL,
		year INT,
		duration DOUBLE PRECISION
	);`,
	`CREATE TABLE IF NOT EXISTS artists (
		artist_id VARCHAR(64) PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id VARCHAR(64) PRIMARY KEY,
		first_name TEXT,
		last_name TEXT,
		gender VARCHAR(8),
		level VARCHAR(16) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS time (
		start_time TIMESTAMP PRIMARY KEY,
		hour INT NOT NULL,
		day INT NOT NULL,
		week INT NOT NULL,
		month INT NOT NULL,
		year INT NOT NULL,
		weekday VARCHAR(16) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS songplays (
		songplay_id SERIAL PRIMARY KEY,
		start_time TIMESTAMP NOT NULL,
		user_id VARCHAR(64) NOT NULL,
		level VARCHAR(16) NOT NULL,
		song_id VARCHAR(64),
		artist_id VARCHAR(64),
		session_id BIGINT NOT NULL,
		location TEXT,
		user_agent TEXT
	);`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS songs (
		song_id VARCHAR(64) PRIMARY KEY,
		title VARCHAR(512) NOT NULL,
		artist_id VARCHAR(64) NOT NULL,
		year INT,
		duration DOUBLE
	);`,
	`CREATE TABLE IF NOT EXISTS artists (
		artist_id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(512) NOT NULL,
		location VARCHAR(512),
		latitude DOUBLE,
		longitude DOUBLE
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id VARCHAR(64) PRIMARY KEY,
		first_name VARCHAR(255),
		last_name VARCHAR(255),
		gender VARCHAR(8),
		level VARCHAR(16) NOT NULL
	);`,
	"CREATE TABLE IF NOT EXISTS `time` (" + `
		start_time DATETIME(3) PRIMARY KEY,
		hour INT NOT NULL,
		day INT NOT NULL,
		week INT NOT NULL,
		month INT NOT NULL,
		year INT NOT NULL,
		weekday VARCHAR(16) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS songplays (
		songplay_id BIGINT AUTO_INCREMENT PRIMARY KEY,
		start_time DATETIME(3) NOT NULL,
		user_id VARCHAR(64) NOT NULL,
		level VARCHAR(16) NOT NULL,
		song_id VARCHAR(64),
		artist_id VARCHAR(64),
		session_id BIGINT NOT NULL,
		location VARCHAR(512),
		user_agent TEXT
	);`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS songs (
		song_id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		artist_id TEXT NOT NULL,
		year INTEGER,
		duration REAL
	);`,
	`CREATE TABLE IF NOT EXISTS artists (
		artist_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT,
		latitude REAL,
		longitude REAL
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		first_name TEXT,
		last_name TEXT,
		gender TEXT,
		level TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS time (
		start_time TIMESTAMP PRIMARY KEY,
		hour INTEGER NOT NULL,
		day INTEGER NOT NULL,
		week INTEGER NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL,
		weekday TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS songplays (
		songplay_id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_time TIMESTAMP NOT NULL,
		user_id TEXT NOT NULL,
		level TEXT NOT NULL,
		song_id TEXT,
		artist_id TEXT,
		session_id INTEGER NOT NULL,
		location TEXT,
		user_agent TEXT
	);`,
}

/*
MongoDB document structure:

songs:     { _id: <song_id>, song_id, title, artist_id, year, duration }
artists:   { _id: <artist_id>, artist_id, name, location, latitude, longitude }
users:     { _id: <user_id>, user_id, first_name, last_name, gender, level }
time:      { _id: <start_time>, start_time, hour, day, week, month, year, weekday }
songplays: { _id: <uuid>, start_time, user_id, level, song_id, artist_id, session_id, location, user_agent }

*/
