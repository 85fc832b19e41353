package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/fastfood-uz/pos/internal/dal/postgres"
	"github.com/fastfood-uz/pos/internal/service/models/product"
)

var productColumns = []string{
	"id",
	"category_id",
	"name",
	"name_uz",
	"description",
	"price",
	"image",
	"sort_order",
	"is_active",
	"created_at",
	"updated_at",
}

type PostgresProductRepository struct {
	conn postgres.Querier
}

func NewPostgresProductRepository(conn postgres.Querier) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
	}
}

// Query retrieves products ordered by sort order.
func (r *PostgresProductRepository) Query(
	ctx context.Context,
	filter *product.QueryProductsModel,
) ([]product.Product, error) {
	builder := sq.Select(productColumns...).
		From("products").
		OrderBy("sort_order ASC", "id ASC").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if filter.CategoryID > 0 {
		builder = builder.Where(sq.Eq{"category_id": filter.CategoryID})
	}
	if filter.OnlyActive {
		builder = builder.Where(sq.Eq{"is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		var p product.Product
		err := rows.Scan(
			&p.ID,
			&p.CategoryID,
			&p.Name,
			&p.NameUz,
			&p.Description,
			&p.Price,
			&p.Image,
			&p.SortOrder,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result = append(result, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Insert persists a new product and returns it with the assigned id.
func (r *PostgresProductRepository) Insert(
	ctx context.Context,
	p product.Product,
) (product.Product, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query, args, err := sq.Insert("products").
		Columns(
			"category_id",
			"name",
			"name_uz",
			"description",
			"price",
			"image",
			"sort_order",
			"is_active",
			"created_at",
			"updated_at",
		).
		Values(
			p.CategoryID,
			p.Name,
			p.NameUz,
			p.Description,
			p.Price,
			p.Image,
			p.SortOrder,
			p.IsActive,
			p.CreatedAt,
			p.UpdatedAt,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&p.ID); err != nil {
		return product.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	return p, nil
}

// Update rewrites a product's mutable fields.
func (r *PostgresProductRepository) Update(
	ctx context.Context,
	p product.Product,
) (product.Product, error) {
	p.UpdatedAt = time.Now()

	query, args, err := sq.Update("products").
		Set("category_id", p.CategoryID).
		Set("name", p.Name).
		Set("name_uz", p.NameUz).
		Set("description", p.Description).
		Set("price", p.Price).
		Set("image", p.Image).
		Set("sort_order", p.SortOrder).
		Set("is_active", p.IsActive).
		Set("updated_at", p.UpdatedAt).
		Where(sq.Eq{"id": p.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.Product{}, fmt.Errorf("product %d: not found", p.ID)
	}

	return p, nil
}
