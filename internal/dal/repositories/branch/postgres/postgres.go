package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/fastfood-uz/pos/internal/dal/postgres"
	"github.com/fastfood-uz/pos/internal/service/models/branch"
)

type PostgresBranchRepository struct {
	conn postgres.Querier
}

func NewPostgresBranchRepository(conn postgres.Querier) *PostgresBranchRepository {
	return &PostgresBranchRepository{
		conn: conn,
	}
}

func (r *PostgresBranchRepository) Query(ctx context.Context) ([]branch.Branch, error) {
	query, args, err := sq.Select(
		"id", "name", "address", "phone", "is_active", "created_at", "updated_at",
	).
		From("branches").
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	var result []branch.Branch
	for rows.Next() {
		var b branch.Branch
		err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		result = append(result, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func (r *PostgresBranchRepository) Insert(
	ctx context.Context,
	b branch.Branch,
) (branch.Branch, error) {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	query, args, err := sq.Insert("branches").
		Columns("name", "address", "phone", "is_active", "created_at", "updated_at").
		Values(b.Name, b.Address, b.Phone, b.IsActive, b.CreatedAt, b.UpdatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return branch.Branch{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		return branch.Branch{}, fmt.Errorf("failed to insert branch: %w", err)
	}

	return b, nil
}

func (r *PostgresBranchRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM branches WHERE id = $1)",
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check branch existence: %w", err)
	}

	return exists, nil
}
