package ibranchrepo

import (
	"context"

	"github.com/fastfood-uz/pos/internal/service/models/branch"
)

// IBranchRepository is an interface for branch postgres repository.
type IBranchRepository interface {
	Query(ctx context.Context) ([]branch.Branch, error)
	Insert(ctx context.Context, b branch.Branch) (branch.Branch, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
