package handlers

import (
	"net/http"

	"github.com/avisser/burrow/internal/api/models"
	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary Health check
// @Description Returns daemon health status
// @Tags system
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}
