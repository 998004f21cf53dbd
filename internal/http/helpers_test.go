package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/services"
)

func TestParseIDParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	for _, value := range []string{"abc", "-1", ""} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: value}}

		id, ok := parseIDParam(c, "id")

		assert.False(t, ok, value)
		assert.Equal(t, uint(0), id)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid id")
	}
}

func TestParseIntQuery(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?limit=10&offset=x", nil)

	assert.Equal(t, 10, parseIntQuery(c, "limit", 25))
	assert.Equal(t, 0, parseIntQuery(c, "offset", 0))
	assert.Equal(t, 7, parseIntQuery(c, "missing", 7))
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   ErrorResponse
	}{
		{
			name:   "validation",
			err:    services.NewValidationError("Title must not be null or empty"),
			status: http.StatusBadRequest,
			body:   ErrorResponse{Error: "Title must not be null or empty", Code: "validation_error"},
		},
		{
			name:   "wrapped not found keeps its own message",
			err:    fmt.Errorf("lookup: %w", services.NewNotFoundError("Author not found with id: 4")),
			status: http.StatusNotFound,
			body:   ErrorResponse{Error: "Author not found with id: 4", Code: "not_found"},
		},
		{
			name:   "conflict",
			err:    services.NewConflictError("Book with ISBN already exists: 12-345-678"),
			status: http.StatusConflict,
			body:   ErrorResponse{Error: "Book with ISBN already exists: 12-345-678", Code: "conflict"},
		},
		{
			name:   "anything else is hidden",
			err:    errors.New("database is locked"),
			status: http.StatusInternalServerError,
			body:   ErrorResponse{Error: "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondServiceError(c, zap.NewNop(), tt.err, "test")

			assert.Equal(t, tt.status, w.Code)
			var body ErrorResponse
			decode(t, w, &body)
			assert.Equal(t, tt.body, body)
		})
	}
}

func TestRespondList_NeverNull(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondList[string](c, nil)

	assert.JSONEq(t, "[]", w.Body.String())
}
