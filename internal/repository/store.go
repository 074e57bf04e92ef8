package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrReferenceNotFound = errors.New("referenced record does not exist")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// DBTX is the subset of pgx used by the repositories.
// *pgxpool.Pool, pgx.Tx and pgxmock pools all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store vends the repositories and runs units of work.
type Store interface {
	Users() UserRepository
	Jobs() JobRepository
	Applications() ApplicationRepository

	// InTx runs fn against a store bound to one transaction. The transaction
	// commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(Store) error) error
	Ping(ctx context.Context) error
}

// PostgresStore is a Store backed by pgx
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore creates a Store over a pool or transaction
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Users() UserRepository               { return NewUserRepository(s.db) }
func (s *PostgresStore) Jobs() JobRepository                 { return NewJobRepository(s.db) }
func (s *PostgresStore) Applications() ApplicationRepository { return NewApplicationRepository(s.db) }

func (s *PostgresStore) InTx(ctx context.Context, fn func(Store) error) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err = fn(NewPostgresStore(tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	var one int
	return s.db.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// nullable maps the empty string to SQL NULL
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
