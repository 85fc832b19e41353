package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/fastfood-uz/pos/internal/dal/postgres"
	"github.com/fastfood-uz/pos/internal/service/models/orderitem"
)

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id        int64     `db:"id"`
	OrderId   int64     `db:"order_id"`
	ProductId int64     `db:"product_id"`
	Quantity  int       `db:"quantity"`
	Price     int64     `db:"price"`
	Total     int64     `db:"total"`
	Note      string    `db:"note"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts OrderItemDal to service layer OrderItem model.
func (i *OrderItemDal) ToModel() *orderitem.OrderItem {
	return &orderitem.OrderItem{
		ID:        i.Id,
		OrderID:   i.OrderId,
		ProductID: i.ProductId,
		Quantity:  i.Quantity,
		Price:     i.Price,
		Total:     i.Total,
		Note:      i.Note,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

type PostgresOrderItemRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderItemRepository(conn postgres.Querier) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
	}
}

// BulkInsert inserts all items of an order in one round trip and returns
// them with assigned ids.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(orderItems) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	sql := `
		INSERT INTO order_items (
			order_id,
			product_id,
			quantity,
			price,
			total,
			note,
			created_at,
			updated_at
		)
		SELECT
			order_id,
			product_id,
			quantity,
			price,
			total,
			note,
			created_at,
			updated_at
		FROM unnest(
			$1::bigint[], $2::bigint[], $3::int[], $4::bigint[],
			$5::bigint[], $6::text[], $7::timestamptz[], $8::timestamptz[]
		)
		AS t(order_id, product_id, quantity, price, total, note, created_at, updated_at)
		RETURNING
			id,
			order_id,
			product_id,
			quantity,
			price,
			total,
			note,
			created_at,
			updated_at
	`

	orderIds := make([]int64, len(orderItems))
	productIds := make([]int64, len(orderItems))
	quantities := make([]int32, len(orderItems))
	prices := make([]int64, len(orderItems))
	totals := make([]int64, len(orderItems))
	notes := make([]string, len(orderItems))
	createdAts := make([]time.Time, len(orderItems))
	updatedAts := make([]time.Time, len(orderItems))

	for i, item := range orderItems {
		orderIds[i] = item.OrderID
		productIds[i] = item.ProductID
		quantities[i] = int32(item.Quantity)
		prices[i] = item.Price
		totals[i] = item.Total
		notes[i] = item.Note
		createdAts[i] = item.CreatedAt
		updatedAts[i] = item.UpdatedAt
	}

	rows, err := r.conn.Query(ctx, sql,
		orderIds,
		productIds,
		quantities,
		prices,
		totals,
		notes,
		createdAts,
		updatedAts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		dal := OrderItemDal{}
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.Quantity,
			&dal.Price,
			&dal.Total,
			&dal.Note,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// QueryByOrderIDs retrieves items for a set of orders.
func (r *PostgresOrderItemRepository) QueryByOrderIDs(
	ctx context.Context,
	orderIDs []int64,
) ([]orderitem.OrderItem, error) {
	if len(orderIDs) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	query, args, err := sq.Select(
		"id",
		"order_id",
		"product_id",
		"quantity",
		"price",
		"total",
		"note",
		"created_at",
		"updated_at",
	).
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		dal := OrderItemDal{}
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.Quantity,
			&dal.Price,
			&dal.Total,
			&dal.Note,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
