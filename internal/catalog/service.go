package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

const categoryCacheName = "categories"

// Cache is the read-through store for the category tree.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(name string) string
}

// Service exposes the read-only catalog.
type Service interface {
	Categories(ctx context.Context) ([]CategoryNode, error)
	Products(ctx context.Context, filter Filter) ([]ProductDTO, error)
}

type service struct {
	repo     *Repository
	cache    Cache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewService builds the catalog service. A nil cache or a zero TTL disables caching.
func NewService(repo *Repository, cache Cache, cacheTTL time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, cache: cache, cacheTTL: cacheTTL, logg: logg}, nil
}

// Categories returns the category tree, served from cache when warm.
func (s *service) Categories(ctx context.Context) ([]CategoryNode, error) {
	cacheOn := s.cache != nil && s.cacheTTL > 0
	if cacheOn {
		var cached []CategoryNode
		err := s.cache.GetJSON(ctx, s.cache.CacheKey(categoryCacheName), &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.warn(ctx, "category cache read failed", err)
		}
	}

	paths, err := s.repo.ListCategoryPaths(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	tree := BuildCategoryTree(paths)

	if cacheOn {
		if err := s.cache.SetJSON(ctx, s.cache.CacheKey(categoryCacheName), tree, s.cacheTTL); err != nil {
			s.warn(ctx, "category cache write failed", err)
		}
	}
	return tree, nil
}

// Products returns the filtered product listing.
func (s *service) Products(ctx context.Context, filter Filter) ([]ProductDTO, error) {
	products, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductDTO(p))
	}
	return out, nil
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), msg)
}
