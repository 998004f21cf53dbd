// Package requestid carries the per-request correlation id through contexts.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header that carries the id in both directions.
const Header = "X-Request-Id"

type ctxKey struct{}

// New returns a fresh random id.
func New() string {
	return uuid.New().String()
}

func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the id stored in ctx, or "" when there is none.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
