package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/tasks"
)

type TagsController struct {
	catalog TagCatalog
	queue   TaskQueue
	logger  *zap.Logger
}

// NewTagsController wires the tag endpoints. queue may be nil.
func NewTagsController(catalog TagCatalog, queue TaskQueue, logger *zap.Logger) *TagsController {
	return &TagsController{catalog: catalog, queue: queue, logger: logger}
}

// POST /api/tags
func (tc *TagsController) CreateTag(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	tag, err := tc.catalog.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, tc.logger, err, "create tag")
		return
	}
	respondCreated(c, tag)
}

// GET /api/tags
func (tc *TagsController) GetAllTags(c *gin.Context) {
	tags, err := tc.catalog.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, tc.logger, err, "list tags")
		return
	}
	respondList(c, tags)
}

// GET /api/tags/:id
func (tc *TagsController) GetTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tag, err := tc.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, tc.logger, err, "get tag")
		return
	}
	c.JSON(http.StatusOK, tag)
}

// DeleteTag removes the tag; tagged books only lose the link.
// DELETE /api/tags/:id
func (tc *TagsController) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := tc.catalog.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, tc.logger, err, "delete tag")
		return
	}
	respondSuccess(c, "tag deleted")
}

// GET /api/tags/:id/books
func (tc *TagsController) GetBooksByTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	books, err := tc.catalog.Books(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, tc.logger, err, "tag books")
		return
	}
	respondList(c, books)
}

// CleanupOrphanTags queues removal of tags that no book uses.
// POST /api/admin/tags/cleanup
func (tc *TagsController) CleanupOrphanTags(c *gin.Context) {
	if tc.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
		return
	}

	taskID, err := tc.queue.Enqueue(tasks.CleanupOrphanTagsTask{})
	if err != nil {
		respondInternalError(c, tc.logger, err, "enqueue tag cleanup")
		return
	}
	respondAccepted(c, "tag cleanup enqueued", gin.H{"taskId": taskID})
}
