// internal/handlers/contest/contest_handler.go
package contest

import (
	"net/http"
	"strconv"

	"fotolio-service/internal/domain/contest"
	xerrors "fotolio-service/internal/pkg/errors"
	"fotolio-service/internal/pkg/response"
	service "fotolio-service/internal/service/contest"

	"github.com/gin-gonic/gin"
)

type ContestHandler struct {
	contestService *service.ContestService
}

func NewContestHandler(contestService *service.ContestService) *ContestHandler {
	return &ContestHandler{
		contestService: contestService,
	}
}

// SubmitEntry registers a new contest submission
func (h *ContestHandler) SubmitEntry(c *gin.Context) {
	var req struct {
		Title        string `json:"title" binding:"required,max=255"`
		Photographer string `json:"photographer" binding:"required,max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body", err)
		return
	}

	entry, err := h.contestService.SubmitEntry(c.Request.Context(), req.Title, req.Photographer)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to submit entry", err)
		return
	}

	response.Success(c, http.StatusCreated, "entry submitted", entry)
}

// GetEntry retrieves a contest entry
func (h *ContestHandler) GetEntry(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	entry, err := h.contestService.GetEntry(c.Request.Context(), id)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "entry not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to get entry", err)
		return
	}

	response.Success(c, http.StatusOK, "entry retrieved", entry)
}

// RecordScore records one juror's score for an entry
func (h *ContestHandler) RecordScore(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	var req contest.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body", err)
		return
	}

	entry, err := h.contestService.RecordJuryScore(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "entry not found")
		case xerrors.Is(err, xerrors.ErrInvalidInput):
			response.ValidationError(c, "invalid score", err)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to record score", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "score recorded", entry)
}

// GetEligibility reports which award tiers the entry qualifies for
func (h *ContestHandler) GetEligibility(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	report, err := h.contestService.GetEligibility(c.Request.Context(), id)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "entry not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to get eligibility", err)
		return
	}

	response.Success(c, http.StatusOK, "eligibility retrieved", report)
}

// GrantAward grants an award tier to an eligible entry
func (h *ContestHandler) GrantAward(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	var req struct {
		Tier contest.AwardTier `json:"tier" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body", err)
		return
	}

	entry, err := h.contestService.GrantAward(c.Request.Context(), id, req.Tier)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "entry not found")
		case xerrors.Is(err, xerrors.ErrInvalidInput):
			response.ValidationError(c, "entry not eligible", err)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to grant award", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "award granted", entry)
}

func parseEntryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid entry id", err)
		return 0, false
	}
	return id, true
}
