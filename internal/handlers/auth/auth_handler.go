// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"fotolio-service/internal/domain/admin"
	"fotolio-service/internal/middleware"
	xerrors "fotolio-service/internal/pkg/errors"
	"fotolio-service/internal/pkg/response"
	service "fotolio-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates an admin and returns an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req admin.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), c.ClientIP(), &req)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrRateLimited):
			response.Error(c, http.StatusTooManyRequests, "too many login attempts, try again later", nil)
		case xerrors.Is(err, xerrors.ErrUnauthorized):
			response.Unauthorized(c, "invalid email or password")
		default:
			response.Error(c, http.StatusInternalServerError, "login failed", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "login successful", result)
}

// Me returns the authenticated admin's identity
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, "authenticated", gin.H{
		"admin_id": middleware.MustGetAdminID(c),
		"email":    middleware.GetAdminEmail(c),
	})
}
