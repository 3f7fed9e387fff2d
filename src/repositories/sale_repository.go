package repositories

import (
	"context"

	"server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *models.SaleRecord, tx pgx.Tx) error
	ListByUserID(ctx context.Context, userID string) ([]models.SaleRecord, error)
	ListByLotID(ctx context.Context, userID string, lotID int64) ([]models.SaleRecord, error)
}

type saleRepo struct {
	db *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) SaleRepository {
	return &saleRepo{db: db}
}

// Create inserts an immutable sale record. When tx is nil the repository opens
// its own transaction; the sell flow always passes the shared transaction so
// the record and the lot mutation commit together.
func (r *saleRepo) Create(ctx context.Context, sale *models.SaleRecord, tx pgx.Tx) error {
	query := `
		INSERT INTO sale_records (user_id, lot_id, asset_type, amount, buy_price, sell_price, sold_at, purchase_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	if tx == nil {
		ownTx, err := r.db.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				_ = ownTx.Rollback(ctx)
			}
		}()

		err = ownTx.QueryRow(ctx, query,
			sale.UserID, sale.LotID, sale.Type, sale.Amount, sale.BuyPrice, sale.SellPrice, sale.SoldAt, sale.PurchaseDate,
		).Scan(&sale.ID, &sale.CreatedAt)
		if err != nil {
			return err
		}
		return ownTx.Commit(ctx)
	}

	return tx.QueryRow(ctx, query,
		sale.UserID, sale.LotID, sale.Type, sale.Amount, sale.BuyPrice, sale.SellPrice, sale.SoldAt, sale.PurchaseDate,
	).Scan(&sale.ID, &sale.CreatedAt)
}

func (r *saleRepo) ListByUserID(ctx context.Context, userID string) ([]models.SaleRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, lot_id, asset_type, amount, buy_price, sell_price, sold_at, purchase_date, created_at
		FROM sale_records
		WHERE user_id = $1
		ORDER BY sold_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSales(rows)
}

// ListByLotID returns the sales carved from one lot, oldest first. Used to
// re-derive a lot's remaining amount when reconciling a suspected partial
// write.
func (r *saleRepo) ListByLotID(ctx context.Context, userID string, lotID int64) ([]models.SaleRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, lot_id, asset_type, amount, buy_price, sell_price, sold_at, purchase_date, created_at
		FROM sale_records
		WHERE user_id = $1 AND lot_id = $2
		ORDER BY sold_at ASC, id ASC`,
		userID, lotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSales(rows)
}

func scanSales(rows pgx.Rows) ([]models.SaleRecord, error) {
	var sales []models.SaleRecord
	for rows.Next() {
		var s models.SaleRecord
		if err := rows.Scan(&s.ID, &s.UserID, &s.LotID, &s.Type, &s.Amount, &s.BuyPrice, &s.SellPrice, &s.SoldAt, &s.PurchaseDate, &s.CreatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
