// Package handlers implements the REST API endpoint handlers for Burrow.
//
// REST API Endpoints:
//
// System:
//   - GET /api/v1/health - Health check status
//   - GET /api/v1/stats - Daemon statistics (uptime, process, resolver counters)
//
// Resolution:
//   - GET /api/v1/resolve/:domain - Resolve a domain iteratively and return
//     the addresses plus the referral trace
//   - GET /api/v1/history - Recent resolutions from the history store
//
// Authentication:
//
// All endpoints support optional API key authentication via the X-API-Key
// header when a key is configured.
//
// @title Burrow Management API
// @version 1.0
// @description REST API for the Burrow iterative DNS resolver daemon.
//
// @contact.name Burrow Support
// @contact.url https://github.com/avisser/burrow
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/avisser/burrow/internal/history"
	"github.com/avisser/burrow/internal/resolver"
)

// Resolver is the resolution engine the handlers drive.
type Resolver interface {
	ResolveTrace(ctx context.Context, domain string) (resolver.Result, error)
	Stats() *resolver.Stats
}

// Handler contains dependencies for API handlers.
type Handler struct {
	res       Resolver
	store     *history.Store // nil when history is disabled
	logger    *slog.Logger
	startTime time.Time
}

// New creates a Handler. store may be nil when history persistence is
// disabled.
func New(res Resolver, store *history.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		res:       res,
		store:     store,
		logger:    logger,
		startTime: time.Now(),
	}
}
