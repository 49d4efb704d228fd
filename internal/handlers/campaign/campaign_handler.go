// internal/handlers/campaign/campaign_handler.go
package campaign

import (
	"net/http"
	"strconv"
	"time"

	"fotolio-service/internal/domain/campaign"
	"fotolio-service/internal/middleware"
	xerrors "fotolio-service/internal/pkg/errors"
	"fotolio-service/internal/pkg/response"
	service "fotolio-service/internal/service/campaign"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	campaignService *service.CampaignService
}

func NewCampaignHandler(campaignService *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
	}
}

// ========== Admin Endpoints ==========

// CreateCampaign creates a new promotional campaign
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req campaign.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body", err)
		return
	}

	adminID := middleware.MustGetAdminID(c)

	created, err := h.campaignService.CreateCampaign(c.Request.Context(), &req, adminID)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrConflict):
			response.Error(c, http.StatusConflict, "campaign slug already exists", err)
		case xerrors.Is(err, xerrors.ErrInvalidInput), xerrors.Is(err, xerrors.ErrUnknownDiscount):
			response.ValidationError(c, "invalid campaign", err)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to create campaign", err)
		}
		return
	}

	response.Success(c, http.StatusCreated, "campaign created", created)
}

// UpdateCampaign updates an existing campaign
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req campaign.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body", err)
		return
	}

	updated, err := h.campaignService.UpdateCampaign(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "campaign not found")
		case xerrors.Is(err, xerrors.ErrInvalidInput), xerrors.Is(err, xerrors.ErrUnknownDiscount):
			response.ValidationError(c, "invalid campaign", err)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to update campaign", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "campaign updated", updated)
}

// PauseCampaign manually pauses a campaign
func (h *CampaignHandler) PauseCampaign(c *gin.Context) {
	h.setActive(c, false)
}

// ResumeCampaign resumes a paused campaign
func (h *CampaignHandler) ResumeCampaign(c *gin.Context) {
	h.setActive(c, true)
}

func (h *CampaignHandler) setActive(c *gin.Context, active bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var err error
	var msg string
	if active {
		err, msg = h.campaignService.ResumeCampaign(c.Request.Context(), id), "campaign resumed"
	} else {
		err, msg = h.campaignService.PauseCampaign(c.Request.Context(), id), "campaign paused"
	}

	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "campaign not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to change campaign state", err)
		return
	}

	response.Success(c, http.StatusOK, msg, nil)
}

// ExtendCampaign pushes a campaign's end date out by N days
func (h *CampaignHandler) ExtendCampaign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Days int `json:"days" binding:"required,min=1,max=365"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body", err)
		return
	}

	if err := h.campaignService.ExtendCampaign(c.Request.Context(), id, req.Days); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "campaign not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to extend campaign", err)
		return
	}

	response.Success(c, http.StatusOK, "campaign extended", nil)
}

// DeleteCampaign deletes a campaign that has no redemptions
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.campaignService.DeleteCampaign(c.Request.Context(), id); err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "campaign not found")
		case xerrors.Is(err, xerrors.ErrConflict):
			response.Error(c, http.StatusConflict, "campaign has redemptions and cannot be deleted", err)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to delete campaign", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "campaign deleted", nil)
}

// ListCampaigns retrieves campaigns with filters and pagination
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	var filters campaign.CampaignListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	result, err := h.campaignService.ListCampaigns(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list campaigns", err)
		return
	}

	response.Success(c, http.StatusOK, "campaigns retrieved", result)
}

// GetCampaign retrieves a single campaign by ID
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	found, err := h.campaignService.GetCampaign(c.Request.Context(), id)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "campaign not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to get campaign", err)
		return
	}

	response.Success(c, http.StatusOK, "campaign retrieved", found)
}

// GetStats retrieves aggregate campaign statistics
func (h *CampaignHandler) GetStats(c *gin.Context) {
	stats, err := h.campaignService.GetCampaignStats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to get campaign stats", err)
		return
	}

	response.Success(c, http.StatusOK, "campaign stats retrieved", stats)
}

// ListTemplates lists the available campaign presets
func (h *CampaignHandler) ListTemplates(c *gin.Context) {
	response.Success(c, http.StatusOK, "templates retrieved", gin.H{
		"templates": service.TemplateNames(),
	})
}

// ========== Public Endpoints ==========

// ListActiveCampaigns retrieves display views for currently redeemable campaigns
func (h *CampaignHandler) ListActiveCampaigns(c *gin.Context) {
	displays, err := h.campaignService.GetRedeemableDisplays(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list active campaigns", err)
		return
	}

	response.Success(c, http.StatusOK, "active campaigns retrieved", displays)
}

// GetCampaignDisplay retrieves the display view for one campaign by slug
func (h *CampaignHandler) GetCampaignDisplay(c *gin.Context) {
	slug := c.Param("slug")

	display, err := h.campaignService.GetDisplayBySlug(c.Request.Context(), slug, time.Now())
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "campaign not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to get campaign", err)
		return
	}

	response.Success(c, http.StatusOK, "campaign retrieved", display)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid campaign id", err)
		return 0, false
	}
	return id, true
}
