package database

import (
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDriver writes the warehouse to a single SQLite file. ":memory:" keeps
// it in process for tests.
type SQLiteDriver struct {
	sqlDriver
}

func (sd *SQLiteDriver) Connect(dsn string) error {
	sd.dialect = DialectSQLite
	if err := sd.open("sqlite3", dsn); err != nil {
		return err
	}
	// An in-memory database lives and dies with its connection.
	sd.db.SetMaxOpenConns(1)
	return nil
}
