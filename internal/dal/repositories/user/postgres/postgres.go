package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/fastfood-uz/pos/internal/dal/postgres"
	"github.com/fastfood-uz/pos/internal/service/models/user"
)

type PostgresUserRepository struct {
	conn postgres.Querier
}

func NewPostgresUserRepository(conn postgres.Querier) *PostgresUserRepository {
	return &PostgresUserRepository{
		conn: conn,
	}
}

func (r *PostgresUserRepository) Query(ctx context.Context) ([]user.User, error) {
	query, args, err := sq.Select(
		"id", "name", "phone", "role", "branch_id", "is_active", "created_at", "updated_at",
	).
		From("users").
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var result []user.User
	for rows.Next() {
		var u user.User
		var role string
		err := rows.Scan(&u.ID, &u.Name, &u.Phone, &role, &u.BranchID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Role, err = user.ParseRole(role)
		if err != nil {
			return nil, err
		}
		result = append(result, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func (r *PostgresUserRepository) Insert(ctx context.Context, u user.User) (user.User, error) {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	query, args, err := sq.Insert("users").
		Columns("name", "phone", "role", "branch_id", "is_active", "created_at", "updated_at").
		Values(u.Name, u.Phone, u.Role.String(), u.BranchID, u.IsActive, u.CreatedAt, u.UpdatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&u.ID); err != nil {
		return user.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return u, nil
}

func (r *PostgresUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)",
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}
