// internal/handlers/webhook/billing_handler.go
package webhook

import (
	"net/http"

	xerrors "fotolio-service/internal/pkg/errors"
	"fotolio-service/internal/pkg/response"
	"fotolio-service/internal/service/redemption"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	redemptionService *redemption.RedemptionService
}

func NewBillingHandler(redemptionService *redemption.RedemptionService) *BillingHandler {
	return &BillingHandler{
		redemptionService: redemptionService,
	}
}

// HandleBillingEvent consumes a billing provider webhook. Duplicates
// are acknowledged with 200 so the provider stops retrying them.
func (h *BillingHandler) HandleBillingEvent(c *gin.Context) {
	var event redemption.BillingEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		response.ValidationError(c, "invalid webhook payload", err)
		return
	}

	result, err := h.redemptionService.HandleBillingEvent(c.Request.Context(), &event)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrDuplicateEvent):
			response.Success(c, http.StatusOK, "event already processed", nil)
		case xerrors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "campaign not found")
		case xerrors.Is(err, xerrors.ErrSoldOut):
			response.Error(c, http.StatusConflict, "campaign is sold out", err)
		case xerrors.Is(err, xerrors.ErrInvalidInput):
			response.Error(c, http.StatusConflict, "campaign is not redeemable", err)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to process event", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "event processed", result)
}
