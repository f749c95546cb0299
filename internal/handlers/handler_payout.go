package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/lingueefy/coach-payout-service/internal/core/ports/services"
	"github.com/lingueefy/coach-payout-service/internal/dto"
	"github.com/lingueefy/coach-payout-service/internal/middleware"
	"github.com/lingueefy/coach-payout-service/internal/platform/metrics"
)

// payoutHandler handles HTTP requests related to payout reconciliation.
type payoutHandler struct {
	payoutService portssvc.PayoutSvcFacade
}

// RegisterPayoutRoutes registers routes related to payouts.
func RegisterPayoutRoutes(rg *gin.RouterGroup, payoutService portssvc.PayoutSvcFacade) {
	h := &payoutHandler{payoutService: payoutService}

	payouts := rg.Group("/payouts")
	{
		payouts.GET("/pending", h.getPendingPayouts)
		payouts.GET("/history", h.getPayoutHistory)
		payouts.POST("/run", h.runAllPayouts)
		payouts.POST("/coaches/:coachID", h.runCoachPayout)
	}
}

// getPendingPayouts godoc
// @Summary List coaches eligible for payout
// @Description Aggregates payable earnings per coach and returns everyone at or above the minimum threshold
// @Tags payouts
// @Produce  json
// @Success 200 {object} dto.PendingPayoutsResponse
// @Failure 500 {object} map[string]string "Failed to aggregate pending payouts"
// @Security BearerAuth
// @Router /payouts/pending [get]
func (h *payoutHandler) getPendingPayouts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	pending, err := h.payoutService.GetPendingPayouts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get pending payouts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pending payouts"})
		return
	}

	var totalPending int64
	for _, summary := range pending {
		totalPending += summary.PendingAmount
	}

	c.JSON(http.StatusOK, dto.PendingPayoutsResponse{
		Pending:      pending,
		TotalPending: totalPending,
	})
}

// runCoachPayout godoc
// @Summary Process a single coach's payout
// @Description Attempts a payout for one coach; the outcome (success, skipped, failed) is reported in the body
// @Tags payouts
// @Produce  json
// @Param   coachID path string true "Coach ID"
// @Success 200 {object} domain.PayoutResult
// @Security BearerAuth
// @Router /payouts/coaches/{coachID} [post]
func (h *payoutHandler) runCoachPayout(c *gin.Context) {
	coachID := c.Param("coachID")
	metrics.PayoutRuns.WithLabelValues("manual").Inc()

	result := h.payoutService.ProcessCoachPayout(c.Request.Context(), coachID)

	// The outcome is in-band: skips and failures are routine results, not
	// HTTP errors, so batch tooling can treat every coach uniformly.
	c.JSON(http.StatusOK, result)
}

// runAllPayouts godoc
// @Summary Process all pending payouts
// @Description Runs reconciliation for every eligible coach sequentially; per-coach failures do not abort the batch
// @Tags payouts
// @Produce  json
// @Success 200 {object} domain.BatchPayoutResult
// @Failure 500 {object} map[string]string "Failed to run payout batch"
// @Security BearerAuth
// @Router /payouts/run [post]
func (h *payoutHandler) runAllPayouts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	batch, err := h.payoutService.ProcessAllPendingPayouts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to run payout batch", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run payout batch"})
		return
	}

	c.JSON(http.StatusOK, batch)
}

// getPayoutHistory godoc
// @Summary List past payouts
// @Description Returns past payout batches, newest first, optionally filtered by coach
// @Tags payouts
// @Produce  json
// @Param   coachID query string false "Filter by coach ID"
// @Param   limit query int false "Page size (default 50)"
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.PayoutHistoryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to retrieve payout history"
// @Security BearerAuth
// @Router /payouts/history [get]
func (h *payoutHandler) getPayoutHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.PayoutHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.payoutService.GetPayoutHistory(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to get payout history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payout history"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
