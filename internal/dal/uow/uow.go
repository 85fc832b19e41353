package uow

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fastfood-uz/pos/internal/dal/interfaces/ibranchrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/iorderitemrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/iorderrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/ioutboxrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/iproductrepo"
	"github.com/fastfood-uz/pos/internal/dal/interfaces/iuserrepo"
	"github.com/fastfood-uz/pos/internal/dal/postgres"
	branchrepo "github.com/fastfood-uz/pos/internal/dal/repositories/branch/postgres"
	orderrepo "github.com/fastfood-uz/pos/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/fastfood-uz/pos/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/fastfood-uz/pos/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/fastfood-uz/pos/internal/dal/repositories/product/postgres"
	userrepo "github.com/fastfood-uz/pos/internal/dal/repositories/user/postgres"
)

type unitOfWork struct {
	client *postgres.Client
	tx     pgx.Tx

	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
	productRepo   iproductrepo.IProductRepository
	branchRepo    ibranchrepo.IBranchRepository
	userRepo      iuserrepo.IUserRepository
}

// NewUnitOfWork creates a unit of work bound to the pool. Until Begin is
// called the repositories run in auto-commit mode.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	u := &unitOfWork{client: client}
	u.bind(client.Pool())

	return u
}

func (u *unitOfWork) bind(conn postgres.Querier) {
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(conn)
	u.outboxRepo = outboxrepo.NewOutboxRepository(conn)
	u.productRepo = productrepo.NewPostgresProductRepository(conn)
	u.branchRepo = branchrepo.NewPostgresBranchRepository(conn)
	u.userRepo = userrepo.NewPostgresUserRepository(conn)
}

// Begin opens a transaction and rebinds all repositories to it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

// Commit commits the transaction if one was begun.
func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback rolls the transaction back. Safe to defer after Commit: pgx
// reports ErrTxClosed, which is swallowed here.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(ctx)
	if err == pgx.ErrTxClosed {
		return nil
	}

	return err
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

func (u *unitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

func (u *unitOfWork) BranchRepository() ibranchrepo.IBranchRepository {
	return u.branchRepo
}

func (u *unitOfWork) UserRepository() iuserrepo.IUserRepository {
	return u.userRepo
}
