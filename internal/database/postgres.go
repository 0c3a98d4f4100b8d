package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

type PostgresDriver struct {
	conn *pgx.Conn
}

func (pd *PostgresDriver) Connect(dsn string) error {
	conn, err := pgx.Connect(context.Background(), dsn)
	if err != nil {
		return err
	}
	pd.conn = conn
	return nil
}

func (pd *PostgresDriver) Close() error {
	return pd.conn.Close(context.Background())
}

func (pd *PostgresDriver) Setup(ctx context.Context) error {
	for _, ddl := range GetSchema(DialectPostgres) {
		if _, err := pd.conn.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func (pd *PostgresDriver) Reset(ctx context.Context) error {
	_, err := pd.conn.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", strings.Join(Tables, ", ")))
	return err
}

func (pd *PostgresDriver) ExecuteTx(ctx context.Context, txFunc func(ctx context.Context) error) (err error) {
	tx, err := pd.conn.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback(ctx)
			panic(p) // re-panic after rollback
		} else if err != nil {
			tx.Rollback(ctx) // err is non-nil; don't change it
		} else {
			err = tx.Commit(ctx) // err is nil; if Commit returns error, update err
		}
	}()

	err = txFunc(withTx(ctx, tx))
	return err
}

func (pd *PostgresDriver) ExecContext(ctx context.Context, op Op, args ...interface{}) error {
	query, err := Statement(DialectPostgres, op)
	if err != nil {
		return err
	}
	if tx, ok := txFrom(ctx).(pgx.Tx); ok {
		_, err = tx.Exec(ctx, query, args...)
		return err
	}
	_, err = pd.conn.Exec(ctx, query, args...)
	return err
}

func (pd *PostgresDriver) QueryRowContext(ctx context.Context, op Op, args ...interface{}) Row {
	query, err := Statement(DialectPostgres, op)
	if err != nil {
		return errRow{err: err}
	}
	if tx, ok := txFrom(ctx).(pgx.Tx); ok {
		return pgRow{row: tx.QueryRow(ctx, query, args...)}
	}
	return pgRow{row: pd.conn.QueryRow(ctx, query, args...)}
}

type pgRow struct {
	row pgx.Row
}

func (r pgRow) Scan(dest ...interface{}) error {
	err := r.row.Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoRows
	}
	return err
}
