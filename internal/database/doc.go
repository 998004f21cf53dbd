// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite, mysql, postgres), migrations
//	├── authors/         # Author CRUD and cascading delete
//	├── publishers/      # Publisher CRUD and cascading delete
//	├── tags/            # Tag CRUD, orphan cleanup
//	├── books/           # Book persistence, search and inventory queries
//	└── audit/           # Audit trail storage
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.Open(database.FromConfig(cfg.Database))
//
//	booksRepo := books.NewRepository(db.DB)
//	authorsRepo := authors.NewRepository(db.DB)
//
//	book, err := booksRepo.FindByISBN(ctx, "12-345-678")
//
// Lookups that find nothing return (nil, nil) rather than gorm.ErrRecordNotFound;
// the services package decides whether absence is an error.
//
// # Interface Implementations
//
//   - authors.Repository: implements services.AuthorStore
//   - publishers.Repository: implements services.PublisherStore
//   - tags.Repository: implements services.TagStore and tasks.OrphanTagCleaner
//   - books.Repository: implements services.BookStore
//   - audit.Repository: backs audit.Service
//
// Compile-time checks live in internal/interfaces.
package database
