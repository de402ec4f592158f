package testutil

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexanderramin/wellplan/internal/db"
)

// ErrInjected is what FailingUoW returns when Err is unset.
var ErrInjected = errors.New("injected write failure")

// FailingUoW runs each transaction through Inner and fails its FailOn-th
// write. Writes are ExecContext calls counted from 1; reads pass through.
type FailingUoW struct {
	Inner  db.UnitOfWork
	FailOn int
	Err    error
}

// NewFailingUoW wraps the SQLite unit of work for database.
func NewFailingUoW(database *sql.DB, failOn int) *FailingUoW {
	return &FailingUoW{Inner: NewTestUoW(database), FailOn: failOn}
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	injected := u.Err
	if injected == nil {
		injected = ErrInjected
	}
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingConn{DBTX: tx, failOn: u.FailOn, err: injected})
	})
}

type failingConn struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (c *failingConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.writes++
	if c.writes == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
