package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/fastfood-uz/pos/internal/dal/postgres"
	"github.com/fastfood-uz/pos/internal/service/models/order"
	"github.com/fastfood-uz/pos/internal/service/models/orderitem"
)

// orderNumberSeed is the floor for human-facing order numbers; the first
// assigned number is 1001.
const orderNumberSeed = 1000

var orderColumns = []string{
	"id",
	"order_number",
	"branch_id",
	"user_id",
	"status",
	"type",
	"subtotal",
	"discount",
	"total",
	"payment_method",
	"payment_status",
	"note",
	"created_at",
	"updated_at",
	"completed_at",
}

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id            int64      `db:"id"`
	OrderNumber   int        `db:"order_number"`
	BranchId      int64      `db:"branch_id"`
	UserId        int64      `db:"user_id"`
	Status        string     `db:"status"`
	Type          string     `db:"type"`
	Subtotal      int64      `db:"subtotal"`
	Discount      int64      `db:"discount"`
	Total         int64      `db:"total"`
	PaymentMethod string     `db:"payment_method"`
	PaymentStatus string     `db:"payment_status"`
	Note          string     `db:"note"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	CompletedAt   *time.Time `db:"completed_at"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}
	typ, err := order.ParseType(o.Type)
	if err != nil {
		return nil, err
	}
	method, err := order.ParsePaymentMethod(o.PaymentMethod)
	if err != nil {
		return nil, err
	}
	payStatus, err := order.ParsePaymentStatus(o.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:            o.Id,
		OrderNumber:   o.OrderNumber,
		BranchID:      o.BranchId,
		UserID:        o.UserId,
		Status:        status,
		Type:          typ,
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		Total:         o.Total,
		PaymentMethod: method,
		PaymentStatus: payStatus,
		Note:          o.Note,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		CompletedAt:   o.CompletedAt,
		OrderItems:    []orderitem.OrderItem{}, // Will be populated separately
	}, nil
}

type PostgresOrderRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderRepository(conn postgres.Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
	}
}

// Insert persists a single order row and returns it with the assigned id.
func (r *PostgresOrderRepository) Insert(
	ctx context.Context,
	o order.Order,
) (order.Order, error) {
	query, args, err := sq.Insert("orders").
		Columns(
			"order_number",
			"branch_id",
			"user_id",
			"status",
			"type",
			"subtotal",
			"discount",
			"total",
			"payment_method",
			"payment_status",
			"note",
			"created_at",
			"updated_at",
		).
		Values(
			o.OrderNumber,
			o.BranchID,
			o.UserID,
			o.Status.String(),
			o.Type.String(),
			o.Subtotal,
			o.Discount,
			o.Total,
			o.PaymentMethod.String(),
			o.PaymentStatus.String(),
			o.Note,
			o.CreatedAt,
			o.UpdatedAt,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&o.ID); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return o, nil
}

// NextOrderNumber computes the next order number inside the caller's
// transaction. The unique index on order_number backs this up: if two
// creations race, one of the inserts fails instead of duplicating a number.
func (r *PostgresOrderRepository) NextOrderNumber(ctx context.Context) (int, error) {
	var next int
	err := r.conn.QueryRow(
		ctx,
		"SELECT COALESCE(MAX(order_number), $1) + 1 FROM orders",
		orderNumberSeed,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next order number: %w", err)
	}

	return next, nil
}

// GetByID fetches one order.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := sq.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	row := r.conn.QueryRow(ctx, query, args...)
	dal := OrderDal{}
	err = row.Scan(
		&dal.Id,
		&dal.OrderNumber,
		&dal.BranchId,
		&dal.UserId,
		&dal.Status,
		&dal.Type,
		&dal.Subtotal,
		&dal.Discount,
		&dal.Total,
		&dal.PaymentMethod,
		&dal.PaymentStatus,
		&dal.Note,
		&dal.CreatedAt,
		&dal.UpdatedAt,
		&dal.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, order.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	return dal.ToModel()
}

// Query retrieves orders based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	builder := sq.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}
	if filter.BranchID > 0 {
		builder = builder.Where(sq.Eq{"branch_id": filter.BranchID})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderNumber,
			&dal.BranchId,
			&dal.UserId,
			&dal.Status,
			&dal.Type,
			&dal.Subtotal,
			&dal.Discount,
			&dal.Total,
			&dal.PaymentMethod,
			&dal.PaymentStatus,
			&dal.Note,
			&dal.CreatedAt,
			&dal.UpdatedAt,
			&dal.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus applies a compare-and-transition. The WHERE clause pins the
// expected current status so that of two racing writers exactly one row
// update takes effect.
func (r *PostgresOrderRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	expected order.Status,
	next order.Status,
	updatedAt time.Time,
	completedAt *time.Time,
) (bool, error) {
	builder := sq.Update("orders").
		Set("status", next.String()).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"status": expected.String()}).
		PlaceholderFormat(sq.Dollar)

	if completedAt != nil {
		builder = builder.Set("completed_at", *completedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
