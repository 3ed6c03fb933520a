package handlers

import (
	"net/http"
	"strconv"

	"github.com/avisser/burrow/internal/api/models"
	"github.com/gin-gonic/gin"
)

// History godoc
// @Summary Recent resolutions
// @Description Returns recent resolution attempts from the history store, newest first
// @Tags resolution
// @Produce json
// @Param limit query int false "Maximum entries to return (default 50)"
// @Success 200 {object} models.HistoryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /history [get]
func (h *Handler) History(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "history is disabled"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	ctx := c.Request.Context()
	entries, err := h.store.Recent(ctx, limit)
	if err != nil {
		h.logger.Error("failed to read history", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read history"})
		return
	}
	total, err := h.store.Count(ctx)
	if err != nil {
		h.logger.Error("failed to count history", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read history"})
		return
	}

	resp := models.HistoryResponse{
		Total:   total,
		Entries: make([]models.HistoryEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, models.HistoryEntryResponse{
			ID:         e.ID,
			Domain:     e.Domain,
			Addresses:  e.Addresses,
			Hops:       e.Hops,
			Outcome:    e.Outcome,
			DurationMs: e.DurationMs,
			ResolvedAt: e.ResolvedAt,
		})
	}

	c.JSON(http.StatusOK, resp)
}
