package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sheikhstore/storefront/internal/domain/catalog"
	"github.com/sheikhstore/storefront/internal/domain/shared"
)

// Fetcher retrieves the raw category tree from the backend.
type Fetcher interface {
	FetchCategories(ctx context.Context) ([]catalog.Category, error)
}

// Service is the catalog query layer: it fetches the category tree once
// per TTL window and derives filtered, sorted, grouped views from the
// cached copy. Derivation itself is pure (see Derive); only the cache
// holds state.
type Service struct {
	fetcher Fetcher
	ttl     time.Duration
	logger  *zap.Logger

	mu        sync.Mutex
	cached    []catalog.Category
	fetchedAt time.Time
}

// NewService creates the catalog query layer with the given cache TTL.
// A non-positive TTL disables caching.
func NewService(fetcher Fetcher, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetcher: fetcher, ttl: ttl, logger: logger}
}

// Categories returns the category tree, served from cache inside the TTL
// window. Products come back stamped with their category's id and label,
// so every later derivation can group on the stable id.
func (s *Service) Categories(ctx context.Context) ([]catalog.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.ttl > 0 && time.Since(s.fetchedAt) < s.ttl {
		return s.cached, nil
	}

	categories, err := s.fetcher.FetchCategories(ctx)
	if err != nil {
		// Serve the stale copy if we have one; the storefront prefers an
		// aging catalog over an empty page.
		if s.cached != nil {
			s.logger.Warn("catalog refresh failed, serving cached copy", zap.Error(err))
			return s.cached, nil
		}
		return nil, err
	}

	for ci := range categories {
		for pi := range categories[ci].Products {
			categories[ci].Products[pi].CategoryID = categories[ci].ID
			if categories[ci].Products[pi].Category == "" {
				categories[ci].Products[pi].Category = categories[ci].Name
			}
		}
	}

	s.cached = categories
	s.fetchedAt = time.Now()
	s.logger.Info("catalog fetched", zap.Int("categories", len(categories)))
	return s.cached, nil
}

// Invalidate drops the cached tree so the next read fetches fresh data.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.fetchedAt = time.Time{}
}

// Browse applies the derivation pipeline to the current catalog.
func (s *Service) Browse(ctx context.Context, q Query) ([]Section, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return Derive(categories, q), nil
}

// ProductByID finds one product anywhere in the catalog.
func (s *Service) ProductByID(ctx context.Context, id int64) (catalog.Product, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return catalog.Product{}, err
	}
	for ci := range categories {
		for pi := range categories[ci].Products {
			if categories[ci].Products[pi].ID == id {
				return categories[ci].Products[pi], nil
			}
		}
	}
	return catalog.Product{}, shared.ErrNotFound
}
