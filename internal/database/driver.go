package database

import (
	"context"
	"errors"
)

// ErrNoRows is returned by Row.Scan when a lookup matched nothing, whatever
// the underlying driver reports.
var ErrNoRows = errors.New("database: no rows in result set")

type Row interface {
	Scan(dest ...interface{}) error
}

// DatabaseDriver is the destination store. Statements are addressed by Op;
// each driver owns the text (or document mapping) behind an Op.
//
// ExecuteTx calls txFunc with a context bound to a single transaction.
// ExecContext and QueryRowContext called with that context run inside it.
// The transaction commits when txFunc returns nil and rolls back otherwise.
type DatabaseDriver interface {
	Connect(dsn string) error
	Close() error
	Setup(ctx context.Context) error
	Reset(ctx context.Context) error
	ExecuteTx(ctx context.Context, txFunc func(ctx context.Context) error) error
	ExecContext(ctx context.Context, op Op, args ...interface{}) error
	QueryRowContext(ctx context.Context, op Op, args ...interface{}) Row
}

// New returns an unconnected driver for the named destination.
func New(name string) (DatabaseDriver, error) {
	switch name {
	case "postgres":
		return &PostgresDriver{}, nil
	case "mysql":
		return &MySQLDriver{}, nil
	case "mongo":
		return &MongoDriver{}, nil
	case "sqlite":
		return &SQLiteDriver{}, nil
	}
	return nil, &UnsupportedError{Destination: name}
}

type UnsupportedError struct {
	Destination string
}

func (e *UnsupportedError) Error() string {
	return "unsupported database type: " + e.Destination
}

type txKey struct{}

func withTx(ctx context.Context, tx interface{}) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFrom(ctx context.Context) interface{} {
	return ctx.Value(txKey{})
}

// errRow is a Row whose Scan always fails with err.
type errRow struct {
	err error
}

func (r errRow) Scan(dest ...interface{}) error {
	return r.err
}
