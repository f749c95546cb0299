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

// coachHandler handles HTTP requests related to the coach directory.
type coachHandler struct {
	coachService portssvc.CoachSvcFacade
}

// registerCoachRoutes registers routes related to coaches.
func registerCoachRoutes(rg *gin.RouterGroup, coachService portssvc.CoachSvcFacade) {
	h := &coachHandler{coachService: coachService}

	coaches := rg.Group("/coaches")
	{
		coaches.GET("", h.listCoaches)
		coaches.GET("/:coachID", h.getCoach)
	}
}

// listCoaches godoc
// @Summary List active coaches
// @Tags coaches
// @Produce  json
// @Success 200 {array} dto.CoachResponse
// @Failure 500 {object} map[string]string "Failed to list coaches"
// @Security BearerAuth
// @Router /coaches [get]
func (h *coachHandler) listCoaches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	coaches, err := h.coachService.ListCoaches(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list coaches", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list coaches"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCoachResponses(coaches))
}

// getCoach godoc
// @Summary Get a coach
// @Tags coaches
// @Produce  json
// @Param   coachID path string true "Coach ID"
// @Success 200 {object} dto.CoachResponse
// @Failure 404 {object} map[string]string "Coach not found"
// @Security BearerAuth
// @Router /coaches/{coachID} [get]
func (h *coachHandler) getCoach(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	coachID := c.Param("coachID")

	coach, err := h.coachService.GetCoachByID(c.Request.Context(), coachID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get coach", slog.String("coach_id", coachID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve coach"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCoachResponse(coach))
}
