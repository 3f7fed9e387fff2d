package repositories

import (
	"context"
	"time"

	"server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HistoryRepository is append-only: points are inserted and range-read, never
// updated or deleted.
type HistoryRepository interface {
	Insert(ctx context.Context, point *models.PortfolioHistoryPoint) error
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]models.PortfolioHistoryPoint, error)
}

type historyRepo struct {
	db *pgxpool.Pool
}

func NewHistoryRepository(db *pgxpool.Pool) HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Insert(ctx context.Context, point *models.PortfolioHistoryPoint) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO portfolio_history (user_id, value, recorded_at)
		VALUES ($1, $2, $3)
		RETURNING id`,
		point.UserID, point.Value, point.RecordedAt,
	).Scan(&point.ID)
}

func (r *historyRepo) ListRange(ctx context.Context, userID string, from, to time.Time) ([]models.PortfolioHistoryPoint, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, value, recorded_at
		FROM portfolio_history
		WHERE user_id = $1 AND recorded_at BETWEEN $2 AND $3
		ORDER BY recorded_at ASC`,
		userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []models.PortfolioHistoryPoint
	for rows.Next() {
		var p models.PortfolioHistoryPoint
		if err := rows.Scan(&p.ID, &p.UserID, &p.Value, &p.RecordedAt); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
