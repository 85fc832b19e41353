package catalogsvc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastfood-uz/pos/internal/service/models/category"
	"github.com/fastfood-uz/pos/internal/service/models/product"
)

type fakeProductRepo struct {
	products []product.Product
	queries  int
}

func (r *fakeProductRepo) Query(context.Context, *product.QueryProductsModel) ([]product.Product, error) {
	r.queries++

	return r.products, nil
}

func (r *fakeProductRepo) Insert(_ context.Context, p product.Product) (product.Product, error) {
	p.ID = int64(len(r.products) + 1)
	r.products = append(r.products, p)

	return p, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p product.Product) (product.Product, error) {
	return p, nil
}

type fakeCategoryRepo struct {
	categories []category.Category
}

func (r *fakeCategoryRepo) Query(context.Context, bool) ([]category.Category, error) {
	return r.categories, nil
}

func (r *fakeCategoryRepo) Insert(_ context.Context, c category.Category) (category.Category, error) {
	c.ID = int64(len(r.categories) + 1)
	r.categories = append(r.categories, c)

	return c, nil
}

type fakeCache struct {
	entries map[string]string
	getErr  error
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}

	return c.entries[key], nil
}

func (c *fakeCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.entries[key] = value

	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.deletes++

	return nil
}

func activeMenuFilter() product.QueryProductsModel {
	return product.QueryProductsModel{OnlyActive: true}
}

func newTestService(repo *fakeProductRepo, categories *fakeCategoryRepo, c cache) *CatalogService {
	opts := []option{withRepositories(repo, categories)}
	if c != nil {
		opts = append(opts, WithCache(c))
	}

	return MustNewCatalogService(opts...)
}

func TestGetProductsCachesActiveMenu(t *testing.T) {
	repo := &fakeProductRepo{products: []product.Product{{ID: 1, Name: "Lavash"}}}
	cached := newFakeCache()
	svc := newTestService(repo, &fakeCategoryRepo{}, cached)

	first, err := svc.GetProducts(context.Background(), activeMenuFilter())
	require.NoError(t, err)
	second, err := svc.GetProducts(context.Background(), activeMenuFilter())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.queries, "second read must come from cache")
}

func TestGetProductsFilteredQueriesSkipCache(t *testing.T) {
	repo := &fakeProductRepo{}
	cached := newFakeCache()
	svc := newTestService(repo, &fakeCategoryRepo{}, cached)

	_, err := svc.GetProducts(context.Background(), product.QueryProductsModel{CategoryID: 3, OnlyActive: true})
	require.NoError(t, err)
	_, err = svc.GetProducts(context.Background(), product.QueryProductsModel{CategoryID: 3, OnlyActive: true})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.queries)
	assert.Empty(t, cached.entries)
}

func TestGetProductsCacheFailureFallsThrough(t *testing.T) {
	repo := &fakeProductRepo{products: []product.Product{{ID: 1}}}
	cached := newFakeCache()
	cached.getErr = errors.New("connection refused")
	svc := newTestService(repo, &fakeCategoryRepo{}, cached)

	products, err := svc.GetProducts(context.Background(), activeMenuFilter())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, repo.queries)
}

func TestGetProductsCorruptCacheEntryDropped(t *testing.T) {
	repo := &fakeProductRepo{products: []product.Product{{ID: 1}}}
	cached := newFakeCache()
	cached.entries[menuCacheKey] = "{not json"
	svc := newTestService(repo, &fakeCategoryRepo{}, cached)

	products, err := svc.GetProducts(context.Background(), activeMenuFilter())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, repo.queries)
}

func TestGetProductsWithoutCache(t *testing.T) {
	repo := &fakeProductRepo{products: []product.Product{{ID: 1}}}
	svc := newTestService(repo, &fakeCategoryRepo{}, nil)

	products, err := svc.GetProducts(context.Background(), activeMenuFilter())
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestCreateProductInvalidatesMenu(t *testing.T) {
	repo := &fakeProductRepo{}
	cached := newFakeCache()
	svc := newTestService(repo, &fakeCategoryRepo{}, cached)

	payload, _ := json.Marshal([]product.Product{})
	cached.entries[menuCacheKey] = string(payload)

	_, err := svc.CreateProduct(context.Background(), product.Product{Name: "Burger", Price: 30000})
	require.NoError(t, err)

	assert.NotContains(t, cached.entries, menuCacheKey)
}

func TestCreateCategoryInvalidatesMenu(t *testing.T) {
	cached := newFakeCache()
	svc := newTestService(&fakeProductRepo{}, &fakeCategoryRepo{}, cached)
	cached.entries[menuCacheKey] = "[]"

	_, err := svc.CreateCategory(context.Background(), category.Category{Name: "Drinks"})
	require.NoError(t, err)

	assert.NotContains(t, cached.entries, menuCacheKey)
}
