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

// ledgerHandler handles HTTP requests related to the payout ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// registerLedgerRoutes registers routes related to the payout ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ledgerService}

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/earnings", h.recordEarning)
		ledger.POST("/entries/:entryID/reverse", h.reverseEntry)
	}
	rg.GET("/coaches/:coachID/entries", h.listCoachEntries)
}

// recordEarning godoc
// @Summary Record a coach earning
// @Description Records an earning for a completed paid session, splitting the gross amount into platform fee and coach net
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   earning body dto.RecordEarningRequest true "Earning details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Coach not found"
// @Failure 500 {object} map[string]string "Failed to record earning"
// @Security BearerAuth
// @Router /ledger/earnings [post]
func (h *ledgerHandler) recordEarning(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordEarningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordEarning", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.RecordEarning(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record earning", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record earning"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse an earning
// @Description Reverses a completed, unclaimed earning (e.g. after a learner refund), excluding it from future payouts
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Ledger entry ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reversal reason"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Entry is not a reversible earning"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry was already paid out or reversed"
// @Security BearerAuth
// @Router /ledger/entries/{entryID}/reverse [post]
func (h *ledgerHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.ledgerService.ReverseEntry(c.Request.Context(), entryID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reverse entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(reversal))
}

// listCoachEntries godoc
// @Summary List a coach's ledger entries
// @Description Returns a coach's ledger entries, newest first, with token-based pagination
// @Tags ledger
// @Produce  json
// @Param   coachID path string true "Coach ID"
// @Param   limit query int false "Page size (default 50)"
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 404 {object} map[string]string "Coach not found"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /coaches/{coachID}/entries [get]
func (h *ledgerHandler) listCoachEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	coachID := c.Param("coachID")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListCoachEntries(c.Request.Context(), coachID, params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to list coach entries", slog.String("coach_id", coachID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
