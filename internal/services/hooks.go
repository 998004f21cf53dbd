package services

import (
	"context"

	"github.com/mrlokans/bookstore/internal/entities"
)

// hooks carries the optional collaborators shared by every service.
// Unset collaborators fall back to no-ops.
type hooks struct {
	cache   BookCache
	audit   AuditLogger
	metrics Metrics
}

func newHooks() hooks {
	return hooks{cache: noopCache{}, audit: noopAudit{}, metrics: noopMetrics{}}
}

// SetCache installs the ISBN lookup cache.
func (h *hooks) SetCache(cache BookCache) {
	if cache != nil {
		h.cache = cache
	}
}

// SetAuditor installs the audit trail.
func (h *hooks) SetAuditor(audit AuditLogger) {
	if audit != nil {
		h.audit = audit
	}
}

// SetMetrics installs the business metrics sink.
func (h *hooks) SetMetrics(metrics Metrics) {
	if metrics != nil {
		h.metrics = metrics
	}
}

type noopCache struct{}

func (noopCache) GetBook(context.Context, string) (*entities.Book, bool) { return nil, false }
func (noopCache) SetBook(context.Context, *entities.Book) {}
func (noopCache) InvalidateBook(context.Context, string) {}
func (noopCache) InvalidateAll(context.Context) {}

type noopAudit struct{}

func (noopAudit) LogCreate(context.Context, string, string, string) {}
func (noopAudit) LogDelete(context.Context, string, string, string) {}
func (noopAudit) LogPriceAdjust(context.Context, float64, int, string, error) {}

type noopMetrics struct{}

func (noopMetrics) BookCreated() {}
func (noopMetrics) BooksDeleted(int) {}
func (noopMetrics) PricesAdjusted(int) {}
func (noopMetrics) CacheLookup(bool) {}
