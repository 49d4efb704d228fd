// internal/service/plan/plan.go
package plan

import (
	"context"

	"fotolio-service/internal/domain/plan"
	"fotolio-service/internal/repository/postgres"
)

type PlanService struct {
	planRepo *postgres.PlanRepository
}

func NewPlanService(planRepo *postgres.PlanRepository) *PlanService {
	return &PlanService{planRepo: planRepo}
}

// ListPublicPlans returns the plans shown on public pricing pages.
func (s *PlanService) ListPublicPlans(ctx context.Context) ([]plan.Plan, error) {
	return s.planRepo.List(ctx, true)
}

// ListAllPlans returns every plan, including unlisted ones. Admin only.
func (s *PlanService) ListAllPlans(ctx context.Context) ([]plan.Plan, error) {
	return s.planRepo.List(ctx, false)
}

// GetPlan retrieves a plan by its code.
func (s *PlanService) GetPlan(ctx context.Context, code string) (*plan.Plan, error) {
	return s.planRepo.FindByCode(ctx, code)
}
