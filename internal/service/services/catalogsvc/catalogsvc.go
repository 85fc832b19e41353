package catalogsvc

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/fastfood-uz/pos/internal/dal/interfaces/icategoryrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/iproductrepo"
	"github.com/fastfood-uz/pos/internal/dal/postgres"
	categoryrepo "github.com/fastfood-uz/pos/internal/dal/repositories/category/postgres"
	productrepo "github.com/fastfood-uz/pos/internal/dal/repositories/product/postgres"
	"github.com/fastfood-uz/pos/internal/service/models/category"
	"github.com/fastfood-uz/pos/internal/service/models/product"
)

const (
	menuCacheKey = "pos:catalog:menu"
	menuCacheTTL = time.Minute
)

// cache is the subset of the redis client the catalog needs.
type cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CatalogService manages the menu: products and categories. The full
// active menu is cached in Redis because every POS terminal fetches it on
// startup and after each sale.
type CatalogService struct {
	productRepo  iproductrepo.IProductRepository
	categoryRepo icategoryrepo.ICategoryRepository
	cache        cache
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.productRepo == nil || s.categoryRepo == nil {
		panic("catalogsvc: no repositories configured")
	}

	return s
}

// WithPostgresClient builds the repositories over the connection pool.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CatalogService) {
		s.productRepo = productrepo.NewPostgresProductRepository(pgClient.Pool())
		s.categoryRepo = categoryrepo.NewPostgresCategoryRepository(pgClient.Pool())
	}
}

// WithCache enables the Redis menu cache. Without it every read hits
// Postgres.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCache(c cache) option {
	return func(s *CatalogService) {
		s.cache = c
	}
}

// withRepositories injects repositories directly, used by tests.
func withRepositories(
	productRepo iproductrepo.IProductRepository,
	categoryRepo icategoryrepo.ICategoryRepository,
) option {
	return func(s *CatalogService) {
		s.productRepo = productRepo
		s.categoryRepo = categoryRepo
	}
}

// GetProducts lists products. The unfiltered active menu is served from
// cache when possible; cache failures fall through to Postgres.
func (s *CatalogService) GetProducts(
	ctx context.Context,
	filter product.QueryProductsModel,
) ([]product.Product, error) {
	cacheable := s.cache != nil && filter.OnlyActive && filter.CategoryID == 0 && len(filter.Ids) == 0

	if cacheable {
		cached, err := s.cache.Get(ctx, menuCacheKey)
		if err != nil {
			slog.Error("Menu cache read failed", "error", err)
		} else if cached != "" {
			var products []product.Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
			slog.Error("Menu cache entry corrupt, dropping", "error", err)
			_ = s.cache.Delete(ctx, menuCacheKey)
		}
	}

	products, err := s.productRepo.Query(ctx, &filter)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if payload, err := json.Marshal(products); err == nil {
			if err := s.cache.Set(ctx, menuCacheKey, string(payload), menuCacheTTL); err != nil {
				slog.Error("Menu cache write failed", "error", err)
			}
		}
	}

	return products, nil
}

// CreateProduct persists a new product and invalidates the menu cache.
func (s *CatalogService) CreateProduct(
	ctx context.Context,
	p product.Product,
) (product.Product, error) {
	created, err := s.productRepo.Insert(ctx, p)
	if err != nil {
		return product.Product{}, err
	}
	s.invalidateMenu(ctx)

	return created, nil
}

// UpdateProduct rewrites a product and invalidates the menu cache.
func (s *CatalogService) UpdateProduct(
	ctx context.Context,
	p product.Product,
) (product.Product, error) {
	updated, err := s.productRepo.Update(ctx, p)
	if err != nil {
		return product.Product{}, err
	}
	s.invalidateMenu(ctx)

	return updated, nil
}

// GetCategories lists categories.
func (s *CatalogService) GetCategories(
	ctx context.Context,
	onlyActive bool,
) ([]category.Category, error) {
	return s.categoryRepo.Query(ctx, onlyActive)
}

// CreateCategory persists a new category.
func (s *CatalogService) CreateCategory(
	ctx context.Context,
	c category.Category,
) (category.Category, error) {
	created, err := s.categoryRepo.Insert(ctx, c)
	if err != nil {
		return category.Category{}, err
	}
	s.invalidateMenu(ctx)

	return created, nil
}

func (s *CatalogService) invalidateMenu(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, menuCacheKey); err != nil {
		slog.Error("Menu cache invalidation failed", "error", err)
	}
}
