package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthorsController struct {
	catalog AuthorCatalog
	logger  *zap.Logger
}

func NewAuthorsController(catalog AuthorCatalog, logger *zap.Logger) *AuthorsController {
	return &AuthorsController{catalog: catalog, logger: logger}
}

type createAuthorRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// POST /api/authors
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	author, err := ac.catalog.Create(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		respondServiceError(c, ac.logger, err, "create author")
		return
	}
	respondCreated(c, author)
}

// GET /api/authors
func (ac *AuthorsController) GetAllAuthors(c *gin.Context) {
	authors, err := ac.catalog.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, ac.logger, err, "list authors")
		return
	}
	respondList(c, authors)
}

// GET /api/authors/:id
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, ac.logger, err, "get author")
		return
	}
	c.JSON(http.StatusOK, author)
}

// DeleteAuthor removes the author together with its books.
// DELETE /api/authors/:id
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ac.catalog.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, ac.logger, err, "delete author")
		return
	}
	respondSuccess(c, "author deleted")
}

// GET /api/authors/:id/books
func (ac *AuthorsController) GetAuthorBooks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	books, err := ac.catalog.Books(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, ac.logger, err, "author books")
		return
	}
	respondList(c, books)
}
