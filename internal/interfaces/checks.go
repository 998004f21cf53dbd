package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/cache"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/authors"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/publishers"
	"github.com/mrlokans/bookstore/internal/database/tags"
	"github.com/mrlokans/bookstore/internal/http"
	"github.com/mrlokans/bookstore/internal/metrics"
	"github.com/mrlokans/bookstore/internal/scheduler"
	"github.com/mrlokans/bookstore/internal/services"
	"github.com/mrlokans/bookstore/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.AuthorStore = (*authors.Repository)(nil)
var _ services.PublisherStore = (*publishers.Repository)(nil)
var _ services.TagStore = (*tags.Repository)(nil)
var _ services.BookStore = (*books.Repository)(nil)

// =============================================================================
// HTTP Controllers
// =============================================================================

var _ http.BookCatalog = (*services.BookService)(nil)
var _ http.AuthorCatalog = (*services.AuthorService)(nil)
var _ http.PublisherCatalog = (*services.PublisherService)(nil)
var _ http.TagCatalog = (*services.TagService)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ http.MaintenanceRunner = (*scheduler.MaintenanceScheduler)(nil)

// Health checks
var _ http.Pinger = (*database.Database)(nil)
var _ http.Pinger = (*cache.RedisCache)(nil)

// =============================================================================
// Service Collaborators
// =============================================================================

var _ services.BookCache = (*cache.RedisCache)(nil)
var _ services.AuditLogger = (*audit.Service)(nil)
var _ services.PriceSnapshotter = (*audit.SnapshotStore)(nil)
var _ services.Metrics = (*metrics.Metrics)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ tasks.PriceAdjuster = (*services.BookService)(nil)
var _ tasks.OrphanTagsCleaner = (*tags.Repository)(nil)
var _ tasks.MaintenanceRecorder = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ scheduler.TaskEnqueuer = (*tasks.Client)(nil)
