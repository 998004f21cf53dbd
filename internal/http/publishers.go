package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PublishersController struct {
	catalog PublisherCatalog
	logger  *zap.Logger
}

func NewPublishersController(catalog PublisherCatalog, logger *zap.Logger) *PublishersController {
	return &PublishersController{catalog: catalog, logger: logger}
}

type createPublisherRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// POST /api/publishers
func (pc *PublishersController) CreatePublisher(c *gin.Context) {
	var req createPublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	publisher, err := pc.catalog.Create(c.Request.Context(), req.Name, req.Address)
	if err != nil {
		respondServiceError(c, pc.logger, err, "create publisher")
		return
	}
	respondCreated(c, publisher)
}

// GET /api/publishers
func (pc *PublishersController) GetAllPublishers(c *gin.Context) {
	publishers, err := pc.catalog.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, pc.logger, err, "list publishers")
		return
	}
	respondList(c, publishers)
}

// GET /api/publishers/:id
func (pc *PublishersController) GetPublisher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	publisher, err := pc.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, pc.logger, err, "get publisher")
		return
	}
	c.JSON(http.StatusOK, publisher)
}

// DeletePublisher removes the publisher together with its books.
// DELETE /api/publishers/:id
func (pc *PublishersController) DeletePublisher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := pc.catalog.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, pc.logger, err, "delete publisher")
		return
	}
	respondSuccess(c, "publisher deleted")
}

// GET /api/publishers/:id/books
func (pc *PublishersController) GetPublisherBooks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	books, err := pc.catalog.Books(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, pc.logger, err, "publisher books")
		return
	}
	respondList(c, books)
}
