package branchsvc

import (
	"context"

	"github.com/fastfood-uz/pos/internal/dal/interfaces/ibranchrepo"
	"github.com/fastfood-uz/pos/internal/dal/postgres"
	branchrepo "github.com/fastfood-uz/pos/internal/dal/repositories/branch/postgres"
	"github.com/fastfood-uz/pos/internal/service/models/branch"
)

// BranchService is an independent CRUD collaborator over branches; it sits
// outside the order core's transactional boundary.
type BranchService struct {
	repo ibranchrepo.IBranchRepository
}

// NewBranchService creates a new BranchService.
func NewBranchService(pgClient *postgres.Client) *BranchService {
	return &BranchService{
		repo: branchrepo.NewPostgresBranchRepository(pgClient.Pool()),
	}
}

func (s *BranchService) GetBranches(ctx context.Context) ([]branch.Branch, error) {
	return s.repo.Query(ctx)
}

func (s *BranchService) CreateBranch(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	return s.repo.Insert(ctx, b)
}
