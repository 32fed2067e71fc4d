package postgres

import (
	"context"
	"database/sql"
)

// Rows is the cursor the read repositories iterate. *sql.Rows satisfies it.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Querier runs read queries. Repositories depend on it instead of *sql.DB so
// tests can feed scripted rows.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
}

var _ Rows = (*sql.Rows)(nil)

type querier struct {
	db *sql.DB
}

func NewQuerier(db *sql.DB) Querier {
	return &querier{db: db}
}

func (q *querier) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
