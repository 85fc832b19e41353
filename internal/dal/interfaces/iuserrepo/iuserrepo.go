package iuserrepo

import (
	"context"

	"github.com/fastfood-uz/pos/internal/service/models/user"
)

// IUserRepository is an interface for staff user postgres repository.
type IUserRepository interface {
	Query(ctx context.Context) ([]user.User, error)
	Insert(ctx context.Context, u user.User) (user.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
