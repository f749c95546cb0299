package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingueefy/coach-payout-service/internal/apperrors"
	portssvc "github.com/lingueefy/coach-payout-service/internal/core/ports/services"
	"github.com/lingueefy/coach-payout-service/internal/dto"
	"github.com/lingueefy/coach-payout-service/internal/middleware"
)

// authHandler handles HTTP requests related to authentication.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade) {
	h := &authHandler{authService: authService}

	auth := r.Group("/auth")
	{
		auth.POST("/login", h.login)
	}
}

// login godoc
// @Summary Authenticate as the payout admin
// @Description Validates admin credentials and issues a bearer token for the payout API
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Admin credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		logger.Error("Login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
