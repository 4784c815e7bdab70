package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/edubel/exemption-gateway/pkg/errors"

	"github.com/edubel/exemption-gateway/internal/models"
	"github.com/edubel/exemption-gateway/internal/repository"
)

// CatalogService serves reference data (sections and teaching units) from the
// dossier store, cached at the gateway because it only changes between
// academic years.
type CatalogService interface {
	Sections(ctx context.Context) ([]models.Section, error)
	Units(ctx context.Context, sectionID string) ([]models.CatalogUnit, error)
	Unit(ctx context.Context, code string) (*models.CatalogUnit, error)
}

type catalogService struct {
	store   repository.DossierStore
	cache   repository.CacheRepository
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCatalogService builds the catalog service. The cache may be nil, in
// which case every call goes straight to the dossier store.
func NewCatalogService(store repository.DossierStore, cache repository.CacheRepository, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) CatalogService {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &catalogService{store: store, cache: cache, metrics: metrics, ttl: ttl, logger: logger}
}

func (s *catalogService) Sections(ctx context.Context) ([]models.Section, error) {
	var sections []models.Section
	err := s.cached(ctx, "catalog:sections", &sections, func(ctx context.Context) (interface{}, error) {
		fresh, err := s.store.ListSections(ctx)
		if err != nil {
			return nil, err
		}
		sections = fresh
		return fresh, nil
	})
	return sections, err
}

func (s *catalogService) Units(ctx context.Context, sectionID string) ([]models.CatalogUnit, error) {
	var units []models.CatalogUnit
	key := fmt.Sprintf("catalog:units:%s", sectionID)
	err := s.cached(ctx, key, &units, func(ctx context.Context) (interface{}, error) {
		fresh, err := s.store.ListCatalogUnits(ctx, sectionID)
		if err != nil {
			return nil, err
		}
		units = fresh
		return fresh, nil
	})
	return units, err
}

func (s *catalogService) Unit(ctx context.Context, code string) (*models.CatalogUnit, error) {
	var unit models.CatalogUnit
	key := fmt.Sprintf("catalog:unit:%s", code)
	err := s.cached(ctx, key, &unit, func(ctx context.Context) (interface{}, error) {
		fresh, err := s.store.GetCatalogUnit(ctx, code)
		if err != nil {
			return nil, err
		}
		unit = *fresh
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

// cached resolves through the cache, falling back to the loader on a miss and
// writing the fresh value back. Cache failures degrade to direct loads.
func (s *catalogService) cached(ctx context.Context, key string, dest interface{}, load func(context.Context) (interface{}, error)) error {
	if s.cache == nil {
		_, err := load(ctx)
		return err
	}

	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		s.metrics.RecordCacheOperation(true)
		return nil
	}
	if !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Sugar().Warnw("cache read failed", "key", key, "error", err)
	}
	s.metrics.RecordCacheOperation(false)

	fresh, err := load(ctx)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, key, fresh, s.ttl); err != nil {
		s.logger.Sugar().Warnw("cache write failed", "key", key, "error", err)
	}
	return nil
}
