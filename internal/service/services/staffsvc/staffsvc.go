package staffsvc

import (
	"context"

	"github.com/fastfood-uz/pos/internal/dal/interfaces/iuserrepo"
	"github.com/fastfood-uz/pos/internal/dal/postgres"
	userrepo "github.com/fastfood-uz/pos/internal/dal/repositories/user/postgres"
	"github.com/fastfood-uz/pos/internal/service/models/user"
)

// StaffService is an independent CRUD collaborator over staff users; it
// sits outside the order core's transactional boundary.
type StaffService struct {
	repo iuserrepo.IUserRepository
}

// NewStaffService creates a new StaffService.
func NewStaffService(pgClient *postgres.Client) *StaffService {
	return &StaffService{
		repo: userrepo.NewPostgresUserRepository(pgClient.Pool()),
	}
}

func (s *StaffService) GetStaff(ctx context.Context) ([]user.User, error) {
	return s.repo.Query(ctx)
}

func (s *StaffService) CreateStaff(ctx context.Context, u user.User) (user.User, error) {
	return s.repo.Insert(ctx, u)
}
