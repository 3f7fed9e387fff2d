package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"server/src/clients/frankfurter"
	"server/src/clients/truncgil"
	"server/src/schemas"
	"server/src/utils"
)

type PriceServiceI interface {
	Refresh(ctx context.Context)
	Snapshot() (schemas.PriceTable, *time.Time)
}

// PriceService owns the process-wide price table. It is built once and handed
// to its consumers; nothing reads prices through package state.
type PriceService struct {
	frankfurterClient frankfurter.FrankfurterServiceClientI
	truncgilClient    truncgil.TruncgilServiceClientI

	mu          sync.RWMutex
	prices      schemas.PriceTable
	lastUpdated time.Time

	// refreshing keeps overlapping timer firings from interleaving merges.
	refreshing atomic.Bool
}

func NewPriceService(frankfurterClient frankfurter.FrankfurterServiceClientI, truncgilClient truncgil.TruncgilServiceClientI) *PriceService {
	return &PriceService{
		frankfurterClient: frankfurterClient,
		truncgilClient:    truncgilClient,
		prices:            BaselinePrices(),
	}
}

// Refresh fetches both feeds concurrently and merges whatever succeeded onto
// the current table. A feed failure is logged and its assets keep their stale
// values; only when at least one feed succeeds does lastUpdated move. Refresh
// never returns an error to its caller.
func (s *PriceService) Refresh(ctx context.Context) {
	if !s.refreshing.CompareAndSwap(false, true) {
		return
	}
	defer s.refreshing.Store(false)

	logger := utils.LoggerFromContext(ctx)

	var wg sync.WaitGroup
	var currencyUpdates, metalUpdates schemas.PriceTable
	var currencyErr, metalErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		resp, err := s.frankfurterClient.GetLatestRates(ctx, "TRY", []string{"USD", "EUR"})
		if err != nil {
			currencyErr = err
			return
		}
		currencyUpdates = NormalizeCurrencyRates(resp)
	}()
	go func() {
		defer wg.Done()
		resp, err := s.truncgilClient.GetToday(ctx)
		if err != nil {
			metalErr = err
			return
		}
		metalUpdates = NormalizeMetals(resp)
	}()
	wg.Wait()

	if currencyErr != nil {
		logger.WithError(currencyErr).Warn("currency feed unavailable, keeping cached rates")
	}
	if metalErr != nil {
		logger.WithError(metalErr).Warn("metals feed unavailable, keeping cached prices")
	}
	if currencyErr != nil && metalErr != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	MergePrices(s.prices, currencyUpdates)
	MergePrices(s.prices, metalUpdates)
	s.lastUpdated = time.Now()
}

// Snapshot returns a copy of the current table plus the last successful
// refresh time, nil when no refresh has succeeded yet.
func (s *PriceService) Snapshot() (schemas.PriceTable, *time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table := make(schemas.PriceTable, len(s.prices))
	for assetType, price := range s.prices {
		table[assetType] = price
	}
	if s.lastUpdated.IsZero() {
		return table, nil
	}
	updated := s.lastUpdated
	return table, &updated
}
