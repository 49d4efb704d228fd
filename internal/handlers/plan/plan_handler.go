// internal/handlers/plan/plan_handler.go
package plan

import (
	"net/http"

	xerrors "fotolio-service/internal/pkg/errors"
	"fotolio-service/internal/pkg/response"
	service "fotolio-service/internal/service/plan"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

// ListPublicPlans retrieves publicly listed plans
func (h *PlanHandler) ListPublicPlans(c *gin.Context) {
	plans, err := h.planService.ListPublicPlans(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list plans", err)
		return
	}

	response.Success(c, http.StatusOK, "plans retrieved", plans)
}

// ListAllPlans retrieves every plan, including unlisted ones
func (h *PlanHandler) ListAllPlans(c *gin.Context) {
	plans, err := h.planService.ListAllPlans(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list plans", err)
		return
	}

	response.Success(c, http.StatusOK, "plans retrieved", plans)
}

// GetPlan retrieves a plan by code
func (h *PlanHandler) GetPlan(c *gin.Context) {
	found, err := h.planService.GetPlan(c.Request.Context(), c.Param("code"))
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "plan not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to get plan", err)
		return
	}

	response.Success(c, http.StatusOK, "plan retrieved", found)
}
