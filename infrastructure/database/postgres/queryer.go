package postgres

import (
	"context"
	"database/sql"
)

// Queryer é satisfeito por *sql.DB e *sql.Tx, permitindo que os repositórios
// executem a mesma query dentro ou fora de uma transação.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
