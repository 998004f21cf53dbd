package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/requestid"
	"github.com/mrlokans/bookstore/internal/services"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

const (
	codeValidation  = "validation_error"
	codeNotFound    = "not_found"
	codeConflict    = "conflict"
	codeRateLimited = "rate_limited"
)

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: codeValidation})
}

func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message, Code: codeNotFound})
}

func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message, Code: codeConflict})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, logger *zap.Logger, err error, context string) {
	logger.Error("internal error",
		zap.String("context", context),
		zap.String("request_id", requestid.FromContext(c.Request.Context())),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondServiceError maps service error kinds onto status codes. Anything
// unrecognised is a 500.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error, context string) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		conflictErr   *services.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		respondBadRequest(c, validationErr.Message)
	case errors.As(err, &notFoundErr):
		respondNotFound(c, notFoundErr.Message)
	case errors.As(err, &conflictErr):
		respondConflict(c, conflictErr.Message)
	default:
		respondInternalError(c, logger, err, context)
	}
}

// --- Success Response Helpers ---

func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// respondList writes a JSON array, never null.
func respondList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseIntQuery reads an integer query parameter, falling back to def when it
// is missing or malformed.
func parseIntQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}
