package handlers

import (
	"net/http"
	"strings"

	"github.com/avisser/burrow/internal/api/models"
	"github.com/avisser/burrow/internal/history"
	"github.com/avisser/burrow/internal/resolver"
	"github.com/gin-gonic/gin"
)

// Resolve godoc
// @Summary Resolve a domain
// @Description Performs an iterative resolution from the root and returns the addresses plus the referral trace
// @Tags resolution
// @Produce json
// @Param domain path string true "Domain name to resolve"
// @Success 200 {object} models.ResolveResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /resolve/{domain} [get]
func (h *Handler) Resolve(c *gin.Context) {
	domain := strings.TrimSpace(c.Param("domain"))
	if domain == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "domain is required"})
		return
	}

	res, err := h.res.ResolveTrace(c.Request.Context(), domain)
	if res.Domain == "" {
		res.Domain = domain
	}
	h.record(c, res.Domain, res, err)
	if err != nil {
		h.logger.Warn("resolution failed", "domain", domain, "error", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: err.Error()})
		return
	}

	resp := models.ResolveResponse{
		Domain:     res.Domain,
		Addresses:  make([]string, 0, len(res.Addresses)),
		Hops:       make([]models.HopResponse, 0, len(res.Hops)),
		DurationMs: res.Duration.Milliseconds(),
	}
	for _, ip := range res.Addresses {
		resp.Addresses = append(resp.Addresses, ip.String())
	}
	for _, hop := range res.Hops {
		resp.Hops = append(resp.Hops, models.HopResponse{
			Nameserver:  hop.Nameserver,
			Domain:      hop.Domain,
			Branch:      string(hop.Branch),
			Answers:     hop.Answers,
			Authorities: hop.Authorities,
			Additionals: hop.Additionals,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// record persists the attempt when a history store is configured. Failures
// to persist are logged, never surfaced to the client.
func (h *Handler) record(c *gin.Context, domain string, res resolver.Result, err error) {
	if h.store == nil {
		return
	}

	outcome := history.OutcomeOK
	if err != nil {
		outcome = err.Error()
	}
	entry := history.Entry{
		Domain:     domain,
		Hops:       len(res.Hops),
		Outcome:    outcome,
		DurationMs: res.Duration.Milliseconds(),
	}
	for _, ip := range res.Addresses {
		entry.Addresses = append(entry.Addresses, ip.String())
	}

	if _, err := h.store.Record(c.Request.Context(), entry); err != nil {
		h.logger.Error("failed to persist resolution", "domain", domain, "error", err)
	}
}
