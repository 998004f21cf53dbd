package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MaintenanceController struct {
	runner MaintenanceRunner
	logger *zap.Logger
}

func NewMaintenanceController(runner MaintenanceRunner, logger *zap.Logger) *MaintenanceController {
	return &MaintenanceController{runner: runner, logger: logger}
}

// RunNow enqueues the scheduled cleanup without waiting for the next cron tick.
// POST /api/admin/maintenance/run
func (mc *MaintenanceController) RunNow(c *gin.Context) {
	if err := mc.runner.RunNow(); err != nil {
		respondInternalError(c, mc.logger, err, "run maintenance")
		return
	}
	respondAccepted(c, "maintenance enqueued", nil)
}
