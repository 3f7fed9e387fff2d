package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxBeginner is the slice of the pool the services need to open their own
// transactions. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
