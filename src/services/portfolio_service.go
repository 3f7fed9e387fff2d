package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"server/src/models"
	"server/src/repositories"
	"server/src/schemas"
	"server/src/utils"

	"github.com/jackc/pgx/v5"
)

type PortfolioServiceI interface {
	List(ctx context.Context, userID string) ([]models.Portfolio, error)
	Create(ctx context.Context, userID string, req *schemas.CreatePortfolioRequest) (*models.Portfolio, error)
	Update(ctx context.Context, userID string, id int64, req *schemas.UpdatePortfolioRequest) (*models.Portfolio, error)
	Delete(ctx context.Context, userID string, id int64) error
	GroupValue(ctx context.Context, userID string, scope string) (*schemas.PortfolioValueResponse, error)
}

type PortfolioService struct {
	db                  repositories.TxBeginner
	portfolioRepository repositories.PortfolioRepository
	lotRepository       repositories.LotRepository
	priceService        PriceServiceI
}

func NewPortfolioService(db repositories.TxBeginner, portfolioRepository repositories.PortfolioRepository, lotRepository repositories.LotRepository, priceService PriceServiceI) *PortfolioService {
	return &PortfolioService{
		db:                  db,
		portfolioRepository: portfolioRepository,
		lotRepository:       lotRepository,
		priceService:        priceService,
	}
}

func (s *PortfolioService) List(ctx context.Context, userID string) ([]models.Portfolio, error) {
	return s.portfolioRepository.ListByUserID(ctx, userID)
}

func (s *PortfolioService) Create(ctx context.Context, userID string, req *schemas.CreatePortfolioRequest) (*models.Portfolio, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, utils.BadRequest("portfolio name is required")
	}

	portfolio := &models.Portfolio{
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		Color:       req.Color,
		Description: req.Description,
	}
	if err := s.portfolioRepository.Create(ctx, portfolio); err != nil {
		return nil, err
	}
	return portfolio, nil
}

func (s *PortfolioService) Update(ctx context.Context, userID string, id int64, req *schemas.UpdatePortfolioRequest) (*models.Portfolio, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, utils.BadRequest("portfolio name is required")
	}

	portfolio, err := s.portfolioRepository.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if portfolio == nil {
		return nil, utils.NotFound("portfolio not found")
	}

	portfolio.Name = strings.TrimSpace(req.Name)
	portfolio.Color = req.Color
	portfolio.Description = req.Description
	if err := s.portfolioRepository.Update(ctx, portfolio); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFound("portfolio not found")
		}
		return nil, err
	}
	return portfolio, nil
}

// Delete removes a portfolio and moves its lots back to uncategorized in the
// same transaction. Lots are never deleted with their portfolio.
func (s *PortfolioService) Delete(ctx context.Context, userID string, id int64) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := s.lotRepository.ClearPortfolio(ctx, userID, id, tx); err != nil {
		return err
	}
	if err := s.portfolioRepository.Delete(ctx, userID, id, tx); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound("portfolio not found")
		}
		return err
	}
	return tx.Commit(ctx)
}

// GroupValue values the lots selected by scope: a portfolio id, "all", or
// "uncategorized".
func (s *PortfolioService) GroupValue(ctx context.Context, userID string, scope string) (*schemas.PortfolioValueResponse, error) {
	if scope != schemas.PortfolioScopeAll && scope != schemas.PortfolioScopeUncategorized {
		id, err := strconv.ParseInt(scope, 10, 64)
		if err != nil {
			return nil, utils.BadRequest("scope must be a portfolio id, 'all' or 'uncategorized'")
		}
		portfolio, err := s.portfolioRepository.GetByID(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if portfolio == nil {
			return nil, utils.NotFound("portfolio not found")
		}
	}

	lots, err := s.lotRepository.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	prices, _ := s.priceService.Snapshot()
	selected := FilterLotsByPortfolio(lots, scope)
	return &schemas.PortfolioValueResponse{
		Scope:    scope,
		Value:    TotalPortfolioValue(selected, prices),
		LotCount: len(selected),
	}, nil
}
