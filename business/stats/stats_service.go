package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"shopmarket/domain"
	"shopmarket/pkg/logger"
)

// OrdersRepository is the read-only aggregation slice of the order store.
type OrdersRepository interface {
	SumUnitsByProduct(ctx context.Context, dateFrom, dateTo time.Time) ([]domain.TopProduct, error)
}

type statsService struct {
	orderRepo    OrdersRepository
	defaultLimit int
	maxLimit     int
}

func NewStatsService(orderRepo OrdersRepository, defaultLimit, maxLimit int) *statsService {
	return &statsService{
		orderRepo:    orderRepo,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// TopProducts returns the most ordered products within [dateFrom, dateTo]
// inclusive, sorted by summed units descending with ties broken by
// ascending product id. limit == 0 means "use the default"; a negative
// limit or one above the configured maximum is rejected. An empty range
// yields an empty slice, not an error.
func (s *statsService) TopProducts(ctx context.Context, dateFrom, dateTo time.Time, limit int) ([]domain.TopProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if dateFrom.After(dateTo) {
		return nil, fmt.Errorf("%w: date_from must not be after date_to", domain.ErrValidation)
	}

	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be a positive integer", domain.ErrValidation)
	}
	if limit > s.maxLimit {
		return nil, fmt.Errorf("%w: limit must not exceed %d", domain.ErrValidation, s.maxLimit)
	}
	if limit == 0 {
		limit = s.defaultLimit
	}

	rows, err := s.orderRepo.SumUnitsByProduct(ctx, dateFrom, dateTo)
	if err != nil {
		logger.Error("Failed to aggregate top products", err)
		return nil, err
	}

	// The sort lives here, not in SQL, so the deterministic order does not
	// depend on database collation or group-by quirks.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].UnitsOrdered != rows[j].UnitsOrdered {
			return rows[i].UnitsOrdered > rows[j].UnitsOrdered
		}
		return rows[i].ProductID < rows[j].ProductID
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}

	if rows == nil {
		rows = []domain.TopProduct{}
	}

	return rows, nil
}
