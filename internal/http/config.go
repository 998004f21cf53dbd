package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/metrics"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Catalog services
	Books      BookCatalog
	Authors    AuthorCatalog
	Publishers PublisherCatalog
	Tags       TagCatalog

	// Audit trail (optional)
	Audit AuditReader

	// Task queue (optional)
	Tasks TaskQueue

	// Scheduled maintenance (optional)
	Maintenance MaintenanceRunner

	// Health checks; Cache is nil when caching is disabled
	Database Pinger
	Cache    Pinger

	// Prometheus collectors (optional)
	Metrics *metrics.Metrics

	// Per-client rate limiting (optional)
	RateLimiter *RateLimiter

	CORSOrigins []string

	Logger *zap.Logger

	// Application info
	Version string
}
