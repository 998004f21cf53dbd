package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/tasks"
)

// TasksController reports on queued background work.
type TasksController struct {
	queue  TaskQueue
	logger *zap.Logger
}

func NewTasksController(queue TaskQueue, logger *zap.Logger) *TasksController {
	return &TasksController{queue: queue, logger: logger}
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, tc.logger, err, "task status")
		return
	}

	name := tasks.StatusName(status)
	if name == "not_found" {
		respondNotFound(c, "task not found: "+taskID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": name,
	})
}
