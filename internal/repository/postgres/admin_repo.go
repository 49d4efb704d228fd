// internal/repository/postgres/admin_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"fotolio-service/internal/domain/admin"
	xerrors "fotolio-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create creates a new admin user
func (r *AdminRepository) Create(ctx context.Context, a *admin.AdminUser) error {
	query := `
		INSERT INTO admin_users (email, password_hash, full_name, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, a.Email, a.PasswordHash, a.FullName, a.IsActive).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

// FindByEmail retrieves an admin by email
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*admin.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, full_name, is_active, created_at, updated_at
		FROM admin_users
		WHERE email = $1
	`

	var a admin.AdminUser
	err := r.db.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	return &a, nil
}

// ExistsByEmail checks if an admin with this email exists
func (r *AdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM admin_users WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}
