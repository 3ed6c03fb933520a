package handlers

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/avisser/burrow/internal/api/models"
	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats godoc
// @Summary Daemon statistics
// @Description Returns runtime statistics including process memory, CPU, and resolver counters
// @Tags system
// @Produce json
// @Success 200 {object} models.ServerStatsResponse
// @Security ApiKeyAuth
// @Router /stats [get]
func (h *Handler) Stats(c *gin.Context) {
	uptime := time.Since(h.startTime)

	resp := models.ServerStatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
		GoRoutines:    runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		Process:       processStats(),
		Host:          hostStats(),
	}

	if h.res != nil {
		snap := h.res.Stats().Snapshot()
		resp.Resolver = models.ResolverStatsResponse{
			QueriesSent:  snap.QueriesSent,
			Resolutions:  snap.Resolutions,
			Failures:     snap.Failures,
			Referrals:    snap.Referrals,
			AvgLatencyMs: snap.AvgLatencyMs,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// processStats reads RSS and CPU usage of the current process. Returns nil
// when the platform does not expose them.
func processStats() *models.ProcessStatsResponse {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil
	}

	stats := &models.ProcessStatsResponse{}
	if mem, err := p.MemoryInfo(); err == nil && mem != nil {
		stats.RSSBytes = mem.RSS
	}
	if cpu, err := p.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	}
	return stats
}

func hostStats() *models.HostStatsResponse {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil {
		return nil
	}
	return &models.HostStatsResponse{
		MemoryTotalBytes:  vm.Total,
		MemoryUsedPercent: vm.UsedPercent,
	}
}
