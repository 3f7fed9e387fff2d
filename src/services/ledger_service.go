package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"server/src/models"
	"server/src/repositories"
	"server/src/schemas"
	"server/src/utils"

	"github.com/jackc/pgx/v5"
)

// amountEpsilon absorbs float noise in fractional gram amounts: a sell within
// epsilon of the full lot amount closes the lot, and only an excess beyond
// epsilon counts as an oversell.
const amountEpsilon = 1e-9

// sellLockTTL bounds a sell lease so a crashed instance cannot wedge a lot.
const sellLockTTL = 10 * time.Second

// PartialWriteError reports a sell whose commit failed and whose durability
// could not be resolved by reading the sale back. It must never be swallowed:
// the ledger needs reconciliation before the lot is trusted again.
type PartialWriteError struct {
	LotID int64
	Err   error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("sell of lot %d may or may not have committed: %v", e.LotID, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}

// LotLocker serializes sells per lot across server instances. Satisfied by
// the redis handler; a nil locker degrades to single-instance operation.
type LotLocker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

type LedgerServiceI interface {
	List(ctx context.Context, userID string) ([]models.InvestmentLot, error)
	ListWithValuation(ctx context.Context, userID string) (*schemas.LotsValuationResponse, error)
	Add(ctx context.Context, userID string, req *schemas.CreateLotRequest) (*models.InvestmentLot, error)
	Delete(ctx context.Context, userID string, lotID int64) error
	Sell(ctx context.Context, userID string, lotID int64, req *schemas.SellLotRequest) (*models.SaleRecord, error)
	AssignPortfolio(ctx context.Context, userID string, lotID int64, portfolioID *int64) error
	ListSales(ctx context.Context, userID string) (*schemas.SalesResponse, error)
	Summary(ctx context.Context, userID string) (*schemas.AssetSummaryResponse, error)
}

type LedgerService struct {
	db             repositories.TxBeginner
	lotRepository  repositories.LotRepository
	saleRepository repositories.SaleRepository
	priceService   PriceServiceI
	locker         LotLocker
}

func NewLedgerService(db repositories.TxBeginner, lotRepository repositories.LotRepository, saleRepository repositories.SaleRepository, priceService PriceServiceI, locker LotLocker) *LedgerService {
	return &LedgerService{
		db:             db,
		lotRepository:  lotRepository,
		saleRepository: saleRepository,
		priceService:   priceService,
		locker:         locker,
	}
}

func (s *LedgerService) List(ctx context.Context, userID string) ([]models.InvestmentLot, error) {
	return s.lotRepository.ListByUserID(ctx, userID)
}

// ListWithValuation decorates the user's lots with live valuation figures.
// PriceLoaded separates "quote not fetched yet" from a genuine zero value.
func (s *LedgerService) ListWithValuation(ctx context.Context, userID string) (*schemas.LotsValuationResponse, error) {
	lots, err := s.lotRepository.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	prices, lastUpdated := s.priceService.Snapshot()
	response := &schemas.LotsValuationResponse{
		Lots:        make([]schemas.LotValuation, 0, len(lots)),
		LastUpdated: lastUpdated,
	}
	for _, lot := range lots {
		valuation := schemas.LotValuation{
			InvestmentLot:  lot,
			CurrentValue:   CurrentValue(lot, prices),
			UnrealizedGain: UnrealizedGain(lot, prices),
			GainPercent:    GainPercent(lot, prices),
			PriceLoaded:    prices[lot.Type].SellingPrice > 0,
		}
		response.Lots = append(response.Lots, valuation)
		response.TotalValue += valuation.CurrentValue
	}
	return response, nil
}

func (s *LedgerService) Add(ctx context.Context, userID string, req *schemas.CreateLotRequest) (*models.InvestmentLot, error) {
	if !req.Type.Valid() {
		return nil, utils.BadRequest(fmt.Sprintf("unknown asset type: %s", req.Type))
	}
	if req.Amount <= 0 {
		return nil, utils.BadRequest("amount must be greater than zero")
	}
	if req.PurchasePrice < 0 {
		return nil, utils.BadRequest("purchase price cannot be negative")
	}
	if req.PurchaseDate.After(time.Now()) {
		return nil, utils.BadRequest("purchase date cannot be in the future")
	}

	lot := &models.InvestmentLot{
		UserID:        userID,
		Type:          req.Type,
		Amount:        req.Amount,
		PurchasePrice: req.PurchasePrice,
		PurchaseDate:  req.PurchaseDate,
		PortfolioID:   req.PortfolioID,
	}
	if err := s.lotRepository.Create(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

// Delete removes a lot without emitting a sale record; it is a correction,
// not a realized transaction.
func (s *LedgerService) Delete(ctx context.Context, userID string, lotID int64) error {
	err := s.lotRepository.Delete(ctx, userID, lotID, nil)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.NotFound("lot not found")
	}
	return err
}

// Sell realizes part or all of a lot. The sale record insert and the lot
// mutation share one transaction, sale first, so a crash can never leave a
// sell half-applied: either both commit or neither does.
func (s *LedgerService) Sell(ctx context.Context, userID string, lotID int64, req *schemas.SellLotRequest) (*models.SaleRecord, error) {
	if req.SellPrice <= 0 {
		return nil, utils.BadRequest("sell price must be greater than zero")
	}
	if req.Amount <= 0 {
		return nil, utils.BadRequest("sell amount must be greater than zero")
	}

	if s.locker != nil {
		lockKey := fmt.Sprintf("lots:sell:%d", lotID)
		acquired, err := s.locker.AcquireLock(ctx, lockKey, sellLockTTL)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, utils.NewHTTPError(409, "another sell is in progress for this lot")
		}
		defer func() {
			_ = s.locker.ReleaseLock(ctx, lockKey)
		}()
	}

	lot, err := s.lotRepository.GetByID(ctx, userID, lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, utils.NotFound("lot not found")
	}
	if req.Amount > lot.Amount+amountEpsilon {
		return nil, utils.BadRequest("sell amount exceeds lot amount")
	}

	soldAt := time.Now()
	if req.SaleDate != nil {
		soldAt = *req.SaleDate
	}
	sale := &models.SaleRecord{
		UserID:       userID,
		LotID:        lot.ID,
		Type:         lot.Type,
		Amount:       req.Amount,
		BuyPrice:     lot.PurchasePrice,
		SellPrice:    req.SellPrice,
		SoldAt:       soldAt,
		PurchaseDate: lot.PurchaseDate,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := s.saleRepository.Create(ctx, sale, tx); err != nil {
		return nil, err
	}

	// The amount guard on the lot mutation is the serialization fallback when
	// no locker is configured: a concurrent sell that already changed or
	// closed the lot turns this write into a conflict instead of an oversell.
	fullClose := req.Amount >= lot.Amount-amountEpsilon
	if fullClose {
		err = s.lotRepository.DeleteIfAmount(ctx, userID, lot.ID, lot.Amount, tx)
	} else {
		err = s.lotRepository.UpdateAmount(ctx, lot.ID, lot.Amount, lot.Amount-req.Amount, tx)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.NewHTTPError(409, "lot changed during the sell, retry")
	}
	if err != nil {
		// Rolls back the sale record too; nothing is persisted.
		return nil, fmt.Errorf("sell of lot %d aborted: %w", lot.ID, err)
	}

	// A failed commit is ambiguous, so resolve it by reading the sale back:
	// the record and the lot mutation commit together, meaning a durable sale
	// record proves the whole sell applied.
	if commitErr := tx.Commit(ctx); commitErr != nil {
		recorded, readErr := s.saleRepository.ListByLotID(ctx, userID, lot.ID)
		if readErr != nil {
			return nil, &PartialWriteError{LotID: lot.ID, Err: commitErr}
		}
		for _, r := range recorded {
			if r.ID == sale.ID {
				return sale, nil
			}
		}
		return nil, fmt.Errorf("sell of lot %d did not commit: %w", lot.ID, commitErr)
	}
	return sale, nil
}

func (s *LedgerService) AssignPortfolio(ctx context.Context, userID string, lotID int64, portfolioID *int64) error {
	err := s.lotRepository.UpdatePortfolio(ctx, userID, lotID, portfolioID)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.NotFound("lot not found")
	}
	return err
}

func (s *LedgerService) ListSales(ctx context.Context, userID string) (*schemas.SalesResponse, error) {
	sales, err := s.saleRepository.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := &schemas.SalesResponse{
		Sales: make([]schemas.SaleWithProfit, 0, len(sales)),
	}
	for _, sale := range sales {
		withProfit := schemas.SaleWithProfit{
			SaleRecord:    sale,
			Profit:        RealizedProfit(sale),
			ProfitPercent: ProfitPercent(sale),
		}
		response.Sales = append(response.Sales, withProfit)
		response.TotalProfit += withProfit.Profit
	}
	return response, nil
}

func (s *LedgerService) Summary(ctx context.Context, userID string) (*schemas.AssetSummaryResponse, error) {
	lots, err := s.lotRepository.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	prices, lastUpdated := s.priceService.Snapshot()
	return &schemas.AssetSummaryResponse{
		Summary:     AssetSummary(lots, prices),
		TotalValue:  TotalPortfolioValue(lots, prices),
		LastUpdated: lastUpdated,
	}, nil
}
