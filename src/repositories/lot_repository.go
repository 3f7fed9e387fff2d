package repositories

import (
	"context"
	"errors"

	"server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LotRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]models.InvestmentLot, error)
	GetByID(ctx context.Context, userID string, id int64) (*models.InvestmentLot, error)
	Create(ctx context.Context, lot *models.InvestmentLot) error
	UpdateAmount(ctx context.Context, id int64, currentAmount, newAmount float64, tx pgx.Tx) error
	Delete(ctx context.Context, userID string, id int64, tx pgx.Tx) error
	DeleteIfAmount(ctx context.Context, userID string, id int64, amount float64, tx pgx.Tx) error
	UpdatePortfolio(ctx context.Context, userID string, id int64, portfolioID *int64) error
	ClearPortfolio(ctx context.Context, userID string, portfolioID int64, tx pgx.Tx) error
	ListUserIDs(ctx context.Context) ([]string, error)
}

type lotRepo struct {
	db *pgxpool.Pool
}

func NewLotRepository(db *pgxpool.Pool) LotRepository {
	return &lotRepo{db: db}
}

func (r *lotRepo) ListByUserID(ctx context.Context, userID string) ([]models.InvestmentLot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, asset_type, amount, purchase_price, purchase_date, portfolio_id, created_at
		FROM investment_lots
		WHERE user_id = $1
		ORDER BY purchase_date DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lots []models.InvestmentLot
	for rows.Next() {
		var l models.InvestmentLot
		if err := rows.Scan(&l.ID, &l.UserID, &l.Type, &l.Amount, &l.PurchasePrice, &l.PurchaseDate, &l.PortfolioID, &l.CreatedAt); err != nil {
			return nil, err
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

// GetByID returns nil without error when no lot with that id belongs to the
// user; ownership and existence are indistinguishable on purpose.
func (r *lotRepo) GetByID(ctx context.Context, userID string, id int64) (*models.InvestmentLot, error) {
	var l models.InvestmentLot
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, asset_type, amount, purchase_price, purchase_date, portfolio_id, created_at
		FROM investment_lots
		WHERE id = $1 AND user_id = $2`,
		id, userID).Scan(&l.ID, &l.UserID, &l.Type, &l.Amount, &l.PurchasePrice, &l.PurchaseDate, &l.PortfolioID, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *lotRepo) Create(ctx context.Context, lot *models.InvestmentLot) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO investment_lots (user_id, asset_type, amount, purchase_price, purchase_date, portfolio_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		lot.UserID, lot.Type, lot.Amount, lot.PurchasePrice, lot.PurchaseDate, lot.PortfolioID,
	).Scan(&lot.ID, &lot.CreatedAt)
}

// UpdateAmount writes the new amount only while the stored amount still equals
// currentAmount. 0 rows (pgx.ErrNoRows) means another sell changed the lot in
// between; callers treat it as a conflict, never as an applied write.
func (r *lotRepo) UpdateAmount(ctx context.Context, id int64, currentAmount, newAmount float64, tx pgx.Tx) error {
	query := `UPDATE investment_lots SET amount = $3 WHERE id = $1 AND amount = $2`

	var tag pgconn.CommandTag
	var err error
	if tx != nil {
		tag, err = tx.Exec(ctx, query, id, currentAmount, newAmount)
	} else {
		tag, err = r.db.Exec(ctx, query, id, currentAmount, newAmount)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *lotRepo) Delete(ctx context.Context, userID string, id int64, tx pgx.Tx) error {
	query := `DELETE FROM investment_lots WHERE id = $1 AND user_id = $2`

	var tag pgconn.CommandTag
	var err error
	if tx != nil {
		tag, err = tx.Exec(ctx, query, id, userID)
	} else {
		tag, err = r.db.Exec(ctx, query, id, userID)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteIfAmount removes the lot only while the stored amount still equals
// amount, carrying the same guard as UpdateAmount into full closes.
func (r *lotRepo) DeleteIfAmount(ctx context.Context, userID string, id int64, amount float64, tx pgx.Tx) error {
	query := `DELETE FROM investment_lots WHERE id = $1 AND user_id = $2 AND amount = $3`

	var tag pgconn.CommandTag
	var err error
	if tx != nil {
		tag, err = tx.Exec(ctx, query, id, userID, amount)
	} else {
		tag, err = r.db.Exec(ctx, query, id, userID, amount)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *lotRepo) UpdatePortfolio(ctx context.Context, userID string, id int64, portfolioID *int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE investment_lots SET portfolio_id = $3 WHERE id = $1 AND user_id = $2`,
		id, userID, portfolioID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ClearPortfolio moves every lot of the portfolio back to uncategorized.
func (r *lotRepo) ClearPortfolio(ctx context.Context, userID string, portfolioID int64, tx pgx.Tx) error {
	query := `UPDATE investment_lots SET portfolio_id = NULL WHERE user_id = $1 AND portfolio_id = $2`

	var err error
	if tx != nil {
		_, err = tx.Exec(ctx, query, userID, portfolioID)
	} else {
		_, err = r.db.Exec(ctx, query, userID, portfolioID)
	}
	return err
}

func (r *lotRepo) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT user_id FROM investment_lots`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}
