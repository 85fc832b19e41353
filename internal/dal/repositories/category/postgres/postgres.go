package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/fastfood-uz/pos/internal/dal/postgres"
	"github.com/fastfood-uz/pos/internal/service/models/category"
)

type PostgresCategoryRepository struct {
	conn postgres.Querier
}

func NewPostgresCategoryRepository(conn postgres.Querier) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{
		conn: conn,
	}
}

func (r *PostgresCategoryRepository) Query(
	ctx context.Context,
	onlyActive bool,
) ([]category.Category, error) {
	builder := sq.Select(
		"id",
		"name",
		"name_uz",
		"icon",
		"sort_order",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("categories").
		OrderBy("sort_order ASC", "id ASC").
		PlaceholderFormat(sq.Dollar)

	if onlyActive {
		builder = builder.Where(sq.Eq{"is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var result []category.Category
	for rows.Next() {
		var c category.Category
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.NameUz,
			&c.Icon,
			&c.SortOrder,
			&c.IsActive,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		result = append(result, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func (r *PostgresCategoryRepository) Insert(
	ctx context.Context,
	c category.Category,
) (category.Category, error) {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	query, args, err := sq.Insert("categories").
		Columns("name", "name_uz", "icon", "sort_order", "is_active", "created_at", "updated_at").
		Values(c.Name, c.NameUz, c.Icon, c.SortOrder, c.IsActive, c.CreatedAt, c.UpdatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return category.Category{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&c.ID); err != nil {
		return category.Category{}, fmt.Errorf("failed to insert category: %w", err)
	}

	return c, nil
}
