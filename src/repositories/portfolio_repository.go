package repositories

import (
	"context"
	"errors"

	"server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PortfolioRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]models.Portfolio, error)
	GetByID(ctx context.Context, userID string, id int64) (*models.Portfolio, error)
	Create(ctx context.Context, p *models.Portfolio) error
	Update(ctx context.Context, p *models.Portfolio) error
	Delete(ctx context.Context, userID string, id int64, tx pgx.Tx) error
}

type portfolioRepo struct {
	db *pgxpool.Pool
}

func NewPortfolioRepository(db *pgxpool.Pool) PortfolioRepository {
	return &portfolioRepo{db: db}
}

func (r *portfolioRepo) ListByUserID(ctx context.Context, userID string) ([]models.Portfolio, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, color, description, created_at
		FROM portfolios
		WHERE user_id = $1
		ORDER BY name ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var portfolios []models.Portfolio
	for rows.Next() {
		var p models.Portfolio
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Color, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		portfolios = append(portfolios, p)
	}
	return portfolios, rows.Err()
}

func (r *portfolioRepo) GetByID(ctx context.Context, userID string, id int64) (*models.Portfolio, error) {
	var p models.Portfolio
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, color, description, created_at
		FROM portfolios
		WHERE id = $1 AND user_id = $2`,
		id, userID).Scan(&p.ID, &p.UserID, &p.Name, &p.Color, &p.Description, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *portfolioRepo) Create(ctx context.Context, p *models.Portfolio) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO portfolios (user_id, name, color, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		p.UserID, p.Name, p.Color, p.Description,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *portfolioRepo) Update(ctx context.Context, p *models.Portfolio) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE portfolios SET name = $3, color = $4, description = $5
		WHERE id = $1 AND user_id = $2`,
		p.ID, p.UserID, p.Name, p.Color, p.Description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *portfolioRepo) Delete(ctx context.Context, userID string, id int64, tx pgx.Tx) error {
	query := `DELETE FROM portfolios WHERE id = $1 AND user_id = $2`

	if tx != nil {
		tag, err := tx.Exec(ctx, query, id, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	}

	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
