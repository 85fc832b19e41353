package icategoryrepo

import (
	"context"

	"github.com/fastfood-uz/pos/internal/service/models/category"
)

// ICategoryRepository is an interface for category postgres repository.
type ICategoryRepository interface {
	Query(ctx context.Context, onlyActive bool) ([]category.Category, error)
	Insert(ctx context.Context, c category.Category) (category.Category, error)
}
