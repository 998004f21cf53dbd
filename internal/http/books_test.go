package http

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/tasks"
)

func TestBooksController_CreateBook(t *testing.T) {
	t.Run("creates a book by ids and tag names", func(t *testing.T) {
		app := setupTestApp(t)
		author, publisher, tag := app.seedCatalog(t)

		book := app.createBook(t, gin.H{
			"title":       "The Dispossessed",
			"isbn":        "12-345-678",
			"price":       12.5,
			"quantity":    3,
			"category":    "fiction",
			"authorId":    author.ID,
			"publisherId": publisher.ID,
			"tagNames":    []string{"classic"},
		})

		assert.NotZero(t, book.ID)
		assert.Equal(t, "12-345-678", book.ISBN)
		assert.Equal(t, author.Name, book.Author.Name)
		assert.Equal(t, publisher.Name, book.Publisher.Name)
		require.Len(t, book.Tags, 1)
		assert.Equal(t, tag.ID, book.Tags[0].ID)
	})

	t.Run("resolves author and publisher by name", func(t *testing.T) {
		app := setupTestApp(t)
		author, publisher, _ := app.seedCatalog(t)

		book := app.createBook(t, gin.H{
			"title":         "The Left Hand of Darkness",
			"isbn":          "11-111-111",
			"price":         9.99,
			"quantity":      1,
			"category":      "fiction",
			"authorName":    author.Name,
			"publisherName": publisher.Name,
		})
		assert.Equal(t, author.ID, book.Author.ID)
		assert.Equal(t, publisher.ID, book.Publisher.ID)
	})

	t.Run("serializes camelCase without back-references", func(t *testing.T) {
		app := setupTestApp(t)
		author, publisher, _ := app.seedCatalog(t)

		w := app.do(t, http.MethodPost, "/api/books/createBook", gin.H{
			"title": "Lathe of Heaven", "isbn": "22-222-222", "price": 5, "quantity": 1,
			"category": "fiction", "authorId": author.ID, "publisherId": publisher.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var raw map[string]any
		decode(t, w, &raw)
		assert.Contains(t, raw, "author")
		assert.Contains(t, raw, "publisher")
		assert.NotContains(t, raw, "authorId")
		assert.NotContains(t, raw["author"].(map[string]any), "books")
	})

	tests := []struct {
		name    string
		body    gin.H
		status  int
		message string
	}{
		{
			name:    "missing author",
			body:    gin.H{"title": "T", "isbn": "12-345-678", "publisherName": "Ace Books"},
			status:  http.StatusBadRequest,
			message: "Author information is required (id or name)",
		},
		{
			name:    "missing publisher",
			body:    gin.H{"title": "T", "isbn": "12-345-678", "authorName": "Ursula K. Le Guin"},
			status:  http.StatusBadRequest,
			message: "Publisher information is required (id or name)",
		},
		{
			name:    "blank isbn",
			body:    gin.H{"title": "T", "isbn": "  ", "authorName": "Ursula K. Le Guin", "publisherName": "Ace Books"},
			status:  http.StatusBadRequest,
			message: "ISBN must not be null or empty",
		},
		{
			name:    "malformed isbn",
			body:    gin.H{"title": "T", "isbn": "123-45-678", "authorName": "Ursula K. Le Guin", "publisherName": "Ace Books"},
			status:  http.StatusBadRequest,
			message: "ISBN must match pattern NN-NNN-NNN",
		},
		{
			name:    "blank title",
			body:    gin.H{"title": "", "isbn": "12-345-678", "authorName": "Ursula K. Le Guin", "publisherName": "Ace Books"},
			status:  http.StatusBadRequest,
			message: "Title must not be null or empty",
		},
		{
			name:    "negative price",
			body:    gin.H{"title": "T", "isbn": "12-345-678", "price": -1, "authorName": "Ursula K. Le Guin", "publisherName": "Ace Books"},
			status:  http.StatusBadRequest,
			message: "Price cannot be negative",
		},
		{
			name:    "unknown author name",
			body:    gin.H{"title": "T", "isbn": "12-345-678", "authorName": "Nobody", "publisherName": "Ace Books"},
			status:  http.StatusNotFound,
			message: "Author not found with name: Nobody",
		},
		{
			name:    "unknown tag id",
			body:    gin.H{"title": "T", "isbn": "12-345-678", "authorName": "Ursula K. Le Guin", "publisherName": "Ace Books", "tagIds": []uint{99}},
			status:  http.StatusNotFound,
			message: "Tag not found with id: 99",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp(t)
			app.seedCatalog(t)

			w := app.do(t, http.MethodPost, "/api/books/createBook", tt.body)

			assert.Equal(t, tt.status, w.Code)
			var resp ErrorResponse
			decode(t, w, &resp)
			assert.Equal(t, tt.message, resp.Error)
		})
	}

	t.Run("duplicate isbn is a conflict", func(t *testing.T) {
		app := setupTestApp(t)
		author, publisher, _ := app.seedCatalog(t)
		body := gin.H{"title": "T", "isbn": "12-345-678", "authorId": author.ID, "publisherId": publisher.ID}
		app.createBook(t, body)

		w := app.do(t, http.MethodPost, "/api/books/createBook", body)

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp ErrorResponse
		decode(t, w, &resp)
		assert.Equal(t, "Book with ISBN already exists: 12-345-678", resp.Error)
		assert.Equal(t, "conflict", resp.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		app := setupTestApp(t)
		req := strings.NewReader("{not json")
		w := app.doRaw(t, http.MethodPost, "/api/books/createBook", req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func seedBooks(t *testing.T, app *testApp) {
	t.Helper()
	author, publisher, _ := app.seedCatalog(t)
	for _, b := range []struct {
		title, isbn, category string
		price                 float64
	}{
		{"Concatenation", "10-000-001", "fiction", 10},
		{"Dog Days", "10-000-002", "fiction", 20},
		{"Category Theory", "10-000-003", "Fiction", 30},
		{"Cats and Concepts", "10-000-004", "science", 40},
	} {
		app.createBook(t, gin.H{
			"title": b.title, "isbn": b.isbn, "category": b.category, "price": b.price, "quantity": 1,
			"authorId": author.ID, "publisherId": publisher.ID,
		})
	}
}

func TestBooksController_Queries(t *testing.T) {
	app := setupTestApp(t)
	seedBooks(t, app)

	t.Run("list all", func(t *testing.T) {
		for _, path := range []string{"/api/books", "/api/books/displayAllBooks"} {
			w := app.do(t, http.MethodGet, path, nil)
			require.Equal(t, http.StatusOK, w.Code)
			var books []entities.Book
			decode(t, w, &books)
			assert.Len(t, books, 4)
		}
	})

	t.Run("inventory is an exact category match", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/books/inventory?category=fiction", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", strings.TrimSpace(w.Body.String()))
	})

	t.Run("inventory without category counts uncategorized books", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/books/inventory", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "0", strings.TrimSpace(w.Body.String()))
	})

	t.Run("title search is a case-insensitive substring match", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/books/search/title?title=cat", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var books []entities.Book
		decode(t, w, &books)
		titles := make([]string, 0, len(books))
		for _, b := range books {
			titles = append(titles, b.Title)
		}
		assert.ElementsMatch(t, []string{"Concatenation", "Category Theory", "Cats and Concepts"}, titles)
	})

	t.Run("category search", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/books/search/category?category=FICT", nil)
		var books []entities.Book
		decode(t, w, &books)
		assert.Len(t, books, 3)
	})

	t.Run("author search", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/books/search/author?authorName=le%20guin", nil)
		var books []entities.Book
		decode(t, w, &books)
		assert.Len(t, books, 4)
	})

	t.Run("no matches returns an empty array", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/books/search/title?title=zebra", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})

	t.Run("isbn search", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/books/search/isbn?isbn=10-000-002", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var book entities.Book
		decode(t, w, &book)
		assert.Equal(t, "Dog Days", book.Title)

		w = app.do(t, http.MethodGet, "/api/books/search/isbn?isbn=99-999-999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Book not found with ISBN: 99-999-999")
	})
}

func TestBooksController_UpdatePrices(t *testing.T) {
	t.Run("applies the factor synchronously", func(t *testing.T) {
		app := setupTestApp(t)
		seedBooks(t, app)

		w := app.do(t, http.MethodPut, "/api/books/updateBook", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var books []entities.Book
		decode(t, w, &books)
		prices := map[string]float64{}
		for _, b := range books {
			prices[b.ISBN] = b.Price
		}
		assert.InDelta(t, 1.0, prices["10-000-001"], 1e-9)
		assert.InDelta(t, 4.0, prices["10-000-004"], 1e-9)
		assert.Equal(t, 1.0, testutil.ToFloat64(app.metrics.HTTPRequestsTotal.WithLabelValues("PUT", "/api/books/updateBook", "200")))
	})

	t.Run("async enqueues a task", func(t *testing.T) {
		app := setupTestApp(t)

		w := app.do(t, http.MethodPut, "/api/books/updateBook?async=true", nil)
		require.Equal(t, http.StatusAccepted, w.Code)

		var resp SuccessResponse
		decode(t, w, &resp)
		assert.Equal(t, map[string]any{"taskId": "task-1"}, resp.Data)

		require.Len(t, app.queue.tasks, 1)
		task, ok := app.queue.tasks[0].(tasks.AdjustPricesTask)
		require.True(t, ok)
		assert.Equal(t, w.Header().Get("X-Request-Id"), task.RequestID)
	})

	t.Run("async enqueue failure", func(t *testing.T) {
		app := setupTestApp(t)
		app.queue.enqueueErr = errors.New("disk full")

		w := app.do(t, http.MethodPut, "/api/books/updateBook?async=true", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk full")
	})
}

func TestBooksController_DeleteBook(t *testing.T) {
	app := setupTestApp(t)
	seedBooks(t, app)

	w := app.do(t, http.MethodDelete, "/api/books/DeleteBook/10-000-001", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/books/search/isbn?isbn=10-000-001", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Unknown ISBNs are a no-op.
	w = app.do(t, http.MethodDelete, "/api/books/DeleteBook/10-000-001", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
