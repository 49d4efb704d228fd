// internal/handlers/promolink/promolink_handler.go
package promolink

import (
	"net/http"
	"strconv"

	"fotolio-service/internal/domain/promolink"
	xerrors "fotolio-service/internal/pkg/errors"
	"fotolio-service/internal/pkg/response"
	service "fotolio-service/internal/service/promolink"

	"github.com/gin-gonic/gin"
)

type PromoLinkHandler struct {
	linkService *service.PromoLinkService
}

func NewPromoLinkHandler(linkService *service.PromoLinkService) *PromoLinkHandler {
	return &PromoLinkHandler{
		linkService: linkService,
	}
}

// ========== Admin Endpoints ==========

// CreateLink attaches a tracked link to a campaign
func (h *PromoLinkHandler) CreateLink(c *gin.Context) {
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	var req promolink.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body", err)
		return
	}

	link, err := h.linkService.CreateLink(c.Request.Context(), campaignID, &req)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "campaign not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create promo link", err)
		return
	}

	response.Success(c, http.StatusCreated, "promo link created", link)
}

// ListLinks lists a campaign's links with live click counts
func (h *PromoLinkHandler) ListLinks(c *gin.Context) {
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	links, err := h.linkService.ListLinks(c.Request.Context(), campaignID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list promo links", err)
		return
	}

	response.Success(c, http.StatusOK, "promo links retrieved", links)
}

// GetLinkStats retrieves one link by token with its live counter
func (h *PromoLinkHandler) GetLinkStats(c *gin.Context) {
	stats, err := h.linkService.GetStats(c.Request.Context(), c.Param("token"))
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "promo link not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to get promo link stats", err)
		return
	}

	response.Success(c, http.StatusOK, "promo link stats retrieved", stats)
}

// FlushClicks folds a campaign's live counters into persisted totals
func (h *PromoLinkHandler) FlushClicks(c *gin.Context) {
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	if err := h.linkService.FlushCampaignClicks(c.Request.Context(), campaignID); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to flush clicks", err)
		return
	}

	response.Success(c, http.StatusOK, "clicks flushed", nil)
}

// DeleteLink removes a promo link
func (h *PromoLinkHandler) DeleteLink(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("link_id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid link id", err)
		return
	}

	if err := h.linkService.DeleteLink(c.Request.Context(), id); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "promo link not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete promo link", err)
		return
	}

	response.Success(c, http.StatusOK, "promo link deleted", nil)
}

// ========== Public Endpoints ==========

// Redirect resolves a token, counts the click, and redirects
func (h *PromoLinkHandler) Redirect(c *gin.Context) {
	target, err := h.linkService.ResolveAndTrack(c.Request.Context(), c.Param("token"))
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "promo link not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to resolve promo link", err)
		return
	}

	c.Redirect(http.StatusFound, target)
}

func parseCampaignID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid campaign id", err)
		return 0, false
	}
	return id, true
}
