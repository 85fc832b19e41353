package iproductrepo

import (
	"context"

	"github.com/fastfood-uz/pos/internal/service/models/product"
)

// IProductRepository is an interface for product postgres repository.
type IProductRepository interface {
	Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
	Insert(ctx context.Context, p product.Product) (product.Product, error)
	Update(ctx context.Context, p product.Product) (product.Product, error)
}
