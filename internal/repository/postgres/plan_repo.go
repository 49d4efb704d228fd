// internal/repository/postgres/plan_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"fotolio-service/internal/domain/plan"
	xerrors "fotolio-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlanRepository struct {
	db *pgxpool.Pool
}

func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{db: db}
}

// List retrieves plans, optionally only the publicly listed ones
func (r *PlanRepository) List(ctx context.Context, publicOnly bool) ([]plan.Plan, error) {
	query := `
		SELECT id, code, name, monthly_price, yearly_price, is_public, created_at, updated_at
		FROM plans
	`
	if publicOnly {
		query += ` WHERE is_public = true`
	}
	query += ` ORDER BY monthly_price ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	plans := []plan.Plan{}
	for rows.Next() {
		var p plan.Plan
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.MonthlyPrice, &p.YearlyPrice, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, p)
	}

	return plans, nil
}

// FindByCode retrieves a plan by its code
func (r *PlanRepository) FindByCode(ctx context.Context, code string) (*plan.Plan, error) {
	query := `
		SELECT id, code, name, monthly_price, yearly_price, is_public, created_at, updated_at
		FROM plans
		WHERE code = $1
	`

	var p plan.Plan
	err := r.db.QueryRow(ctx, query, code).Scan(
		&p.ID, &p.Code, &p.Name, &p.MonthlyPrice, &p.YearlyPrice, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}

	return &p, nil
}
