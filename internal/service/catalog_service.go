package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
)

// planCatalog is the fixed offer: weekly frequency and base monthly price in BRL.
var planCatalog = map[models.PlanID]models.Plan{
	models.Plan1x: {ID: models.Plan1x, WeeklySessions: 1, BasePrice: 110.00},
	models.Plan2x: {ID: models.Plan2x, WeeklySessions: 2, BasePrice: 130.00},
	models.Plan3x: {ID: models.Plan3x, WeeklySessions: 3, BasePrice: 150.00},
}

// LookupPlan resolves a plan identifier against the catalog.
func LookupPlan(id models.PlanID) (models.Plan, error) {
	plan, ok := planCatalog[id]
	if !ok {
		return models.Plan{}, appErrors.Clone(appErrors.ErrUnknownPlan, fmt.Sprintf("plano desconhecido: %s", id))
	}
	return plan, nil
}

// Plans returns the catalog in ascending frequency order.
func Plans() []models.Plan {
	return []models.Plan{
		planCatalog[models.Plan1x],
		planCatalog[models.Plan2x],
		planCatalog[models.Plan3x],
	}
}

type weekdayProvider interface {
	DiasSemana(ctx context.Context, token string) ([]models.WeekDay, error)
}

type catalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CatalogService serves the plan catalog and the weekday list used by the
// day selector. Weekdays come from the upstream API and change rarely, so
// they are cached when a cache is available.
type CatalogService struct {
	upstream weekdayProvider
	cache    catalogCache
	ttl      time.Duration
	logger   *zap.Logger
}

const weekdayCacheKey = "catalog:diassemana"

// NewCatalogService constructs the catalog service. cache may be nil.
func NewCatalogService(upstream weekdayProvider, cache catalogCache, ttl time.Duration, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CatalogService{upstream: upstream, cache: cache, ttl: ttl, logger: logger}
}

// Plans returns the static plan catalog.
func (s *CatalogService) Plans() []models.Plan {
	return Plans()
}

// WeekDays returns the selectable weekdays, preferring the cache.
func (s *CatalogService) WeekDays(ctx context.Context, token string) ([]models.WeekDay, error) {
	if s.cache != nil {
		var cached []models.WeekDay
		if hit, err := s.cache.Get(ctx, weekdayCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}
	days, err := s.upstream.DiasSemana(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, weekdayCacheKey, days, s.ttl); err != nil {
			s.logger.Warn("failed to cache weekday list", zap.Error(err))
		}
	}
	return days, nil
}
