package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// sqlDriver runs the registry over database/sql. MySQL and SQLite share it.
type sqlDriver struct {
	db      *sql.DB
	dialect Dialect
}

func (sd *sqlDriver) open(driverName, dsn string) error {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return err
	}
	sd.db = db
	return nil
}

func (sd *sqlDriver) Close() error {
	return sd.db.Close()
}

func (sd *sqlDriver) Setup(ctx context.Context) error {
	for _, ddl := range GetSchema(sd.dialect) {
		if _, err := sd.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func (sd *sqlDriver) Reset(ctx context.Context) error {
	// SQLite drops one table per statement, so both dialects go table by table.
	for _, table := range Tables {
		if _, err := sd.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+sd.quote(table)); err != nil {
			return err
		}
	}
	return nil
}

func (sd *sqlDriver) quote(table string) string {
	if sd.dialect == DialectMySQL {
		return "`" + table + "`"
	}
	return table
}

func (sd *sqlDriver) ExecuteTx(ctx context.Context, txFunc func(ctx context.Context) error) (err error) {
	tx, err := sd.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = txFunc(withTx(ctx, tx))
	return err
}

func (sd *sqlDriver) ExecContext(ctx context.Context, op Op, args ...interface{}) error {
	query, err := Statement(sd.dialect, op)
	if err != nil {
		return err
	}
	if tx, ok := txFrom(ctx).(*sql.Tx); ok {
		_, err = tx.ExecContext(ctx, query, args...)
		return err
	}
	_, err = sd.db.ExecContext(ctx, query, args...)
	return err
}

func (sd *sqlDriver) QueryRowContext(ctx context.Context, op Op, args ...interface{}) Row {
	query, err := Statement(sd.dialect, op)
	if err != nil {
		return errRow{err: err}
	}
	if tx, ok := txFrom(ctx).(*sql.Tx); ok {
		return sqlRow{row: tx.QueryRowContext(ctx, query, args...)}
	}
	return sqlRow{row: sd.db.QueryRowContext(ctx, query, args...)}
}

type sqlRow struct {
	row *sql.Row
}

func (r sqlRow) Scan(dest ...interface{}) error {
	err := r.row.Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	return err
}

type MySQLDriver struct {
	sqlDriver
}

func (md *MySQLDriver) Connect(dsn string) error {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return err
	}
	// start_time is written as time.Time and must round-trip as one.
	cfg.ParseTime = true
	md.dialect = DialectMySQL
	return md.open("mysql", cfg.FormatDSN())
}
