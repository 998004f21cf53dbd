package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/requestid"
	"github.com/mrlokans/bookstore/internal/services"
	"github.com/mrlokans/bookstore/internal/tasks"
)

type BooksController struct {
	catalog BookCatalog
	queue   TaskQueue
	logger  *zap.Logger
}

// NewBooksController wires the book endpoints. queue may be nil, in which case
// async price adjustment is unavailable.
func NewBooksController(catalog BookCatalog, queue TaskQueue, logger *zap.Logger) *BooksController {
	return &BooksController{catalog: catalog, queue: queue, logger: logger}
}

// ListBooks returns every book.
// GET /api/books, GET /api/books/displayAllBooks
func (bc *BooksController) ListBooks(c *gin.Context) {
	books, err := bc.catalog.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, bc.logger, err, "list books")
		return
	}
	respondList(c, books)
}

// CreateBook runs the creation orchestrator.
// POST /api/books/createBook
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req services.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := bc.catalog.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, bc.logger, err, "create book")
		return
	}
	respondCreated(c, book)
}

// Inventory counts books in exactly the given category.
// GET /api/books/inventory?category=
func (bc *BooksController) Inventory(c *gin.Context) {
	count, err := bc.catalog.InventoryCount(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondServiceError(c, bc.logger, err, "inventory count")
		return
	}
	c.JSON(http.StatusOK, count)
}

// UpdatePrices applies the bulk price adjustment. With ?async=true the work is
// queued and the task id is returned instead of the books.
// PUT /api/books/updateBook
func (bc *BooksController) UpdatePrices(c *gin.Context) {
	if c.Query("async") == "true" {
		bc.enqueuePriceAdjust(c)
		return
	}

	books, err := bc.catalog.AdjustPrices(c.Request.Context())
	if err != nil {
		respondServiceError(c, bc.logger, err, "adjust prices")
		return
	}
	respondList(c, books)
}

func (bc *BooksController) enqueuePriceAdjust(c *gin.Context) {
	if bc.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
		return
	}

	taskID, err := bc.queue.Enqueue(tasks.AdjustPricesTask{
		RequestID: requestid.FromContext(c.Request.Context()),
	})
	if err != nil {
		respondInternalError(c, bc.logger, err, "enqueue price adjustment")
		return
	}
	respondAccepted(c, "price adjustment enqueued", gin.H{"taskId": taskID})
}

// DeleteBook removes a book by ISBN; an unknown ISBN still succeeds.
// DELETE /api/books/DeleteBook/:isbn
func (bc *BooksController) DeleteBook(c *gin.Context) {
	isbn := c.Param("isbn")
	if err := bc.catalog.DeleteByISBN(c.Request.Context(), isbn); err != nil {
		respondServiceError(c, bc.logger, err, "delete book")
		return
	}
	respondSuccess(c, "book deleted")
}

// GET /api/books/search/title?title=
func (bc *BooksController) SearchByTitle(c *gin.Context) {
	bc.search(c, "title", bc.catalog.SearchByTitle)
}

// GET /api/books/search/author?authorName=
func (bc *BooksController) SearchByAuthor(c *gin.Context) {
	bc.search(c, "authorName", bc.catalog.SearchByAuthorName)
}

// GET /api/books/search/category?category=
func (bc *BooksController) SearchByCategory(c *gin.Context) {
	bc.search(c, "category", bc.catalog.SearchByCategory)
}

// SearchByISBN is an exact lookup; unknown ISBNs are 404.
// GET /api/books/search/isbn?isbn=
func (bc *BooksController) SearchByISBN(c *gin.Context) {
	book, err := bc.catalog.SearchByISBN(c.Request.Context(), c.Query("isbn"))
	if err != nil {
		respondServiceError(c, bc.logger, err, "search isbn")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (bc *BooksController) search(c *gin.Context, param string, find func(context.Context, string) ([]entities.Book, error)) {
	books, err := find(c.Request.Context(), c.Query(param))
	if err != nil {
		respondServiceError(c, bc.logger, err, "search by "+param)
		return
	}
	respondList(c, books)
}
