// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - AuthorStore, PublisherStore, TagStore, BookStore: persistence used by
//     the catalog services (internal/services/interfaces.go), implemented by
//     the repositories under internal/database/.
//
// ## Service Collaborators
//
// Optional hooks a service falls back to a no-op for when unset:
//
//   - BookCache: ISBN lookup cache (internal/cache)
//   - AuditLogger: audit trail (internal/audit)
//   - PriceSnapshotter: saves prices before a bulk adjustment (internal/audit)
//   - Metrics: business counters (internal/metrics)
//
// ## HTTP Interfaces
//
//   - BookCatalog, AuthorCatalog, PublisherCatalog, TagCatalog: what the
//     controllers need from the services (internal/http/stores.go)
//   - TaskQueue, AuditReader, Pinger: optional endpoints
//
// ## Background Task Interfaces
//
//   - PriceAdjuster, OrphanTagsCleaner, AuditEventCleaner, MaintenanceRecorder
//     (internal/tasks)
//   - TaskEnqueuer (internal/scheduler)
//
// # Adding a New Catalog Entity
//
//  1. Add the model to internal/entities/ and to the AutoMigrate list in
//     internal/database/database.go.
//
//  2. Create sub-package internal/database/<entity>/ with a Repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the store interface in internal/services/interfaces.go and
//     build the service on top of it.
//
//  4. Add a controller in internal/http/, register the routes in router.go
//     and wire the service in entrypoint.NewCatalog.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
