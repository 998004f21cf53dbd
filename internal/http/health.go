package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status      string             `json:"status"`
	Time        string             `json:"time"`
	Version     string             `json:"version,omitempty"`
	Checks      map[string]string  `json:"checks"`
	Maintenance *MaintenanceStatus `json:"maintenance,omitempty"`
}

type MaintenanceStatus struct {
	Running bool       `json:"running"`
	NextRun *time.Time `json:"nextRun,omitempty"`
}

// HealthController pings the database and, when configured, the cache.
// A failing cache only degrades the service; a failing database makes it unhealthy.
type HealthController struct {
	db          Pinger
	cache       Pinger
	maintenance MaintenanceRunner
	version     string
}

func NewHealthController(db Pinger, cache Pinger, version string) *HealthController {
	return &HealthController{
		db:      db,
		cache:   cache,
		version: version,
	}
}

// SetMaintenance adds the scheduler state to the report.
func (h *HealthController) SetMaintenance(m MaintenanceRunner) {
	h.maintenance = m
}

func (h *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
		status = "unhealthy"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = "error: " + err.Error()
			if status == "healthy" {
				status = "degraded"
			}
		} else {
			checks["cache"] = "ok"
		}
	} else {
		checks["cache"] = "disabled"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}
	if h.maintenance != nil {
		health.Maintenance = &MaintenanceStatus{
			Running: h.maintenance.IsRunning(),
			NextRun: h.maintenance.GetNextRunTime(),
		}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
