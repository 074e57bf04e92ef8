package repository

import (
	"context"
	"errors"
	"fmt"

	"job_portal/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	UpdateName(ctx context.Context, id int64, name string) error
	CountByRole(ctx context.Context, role string) (int64, error)
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, COALESCE(name, ''), role, COALESCE(company, ''), created_at`

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (email, password_hash, name, role, company, created_at)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRow(ctx, sql,
		user.Email, user.PasswordHash, nullable(user.Name), user.Role, nullable(user.Company), user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by email, returning nil when absent
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, email))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID, returning nil when absent
func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

func (r *userRepository) UpdateName(ctx context.Context, id int64, name string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET name = $1 WHERE id = $2`, nullable(name), id)
	if err != nil {
		return fmt.Errorf("failed to update user name: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found for update", id)
	}
	return nil
}

func (r *userRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Role, &user.Company, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found is not an error here, the service layer decides
		}
		return nil, err
	}
	return user, nil
}
