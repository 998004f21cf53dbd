// Command generate_demo creates a demo catalog database with public domain books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/entrypoint"
	"github.com/mrlokans/bookstore/internal/logging"
	"github.com/mrlokans/bookstore/internal/services"
)

const defaultDemoDatabasePath = "./demo/demo.db"

type demoBook struct {
	Title     string
	ISBN      string
	Price     float64
	Quantity  int
	Category  string
	Author    string
	Publisher string
	Tags      []string
}

var demoAuthors = map[string]string{
	"Jane Austen":     "jane.austen@example.com",
	"Herman Melville": "herman.melville@example.com",
	"Mary Shelley":    "mary.shelley@example.com",
	"Marcus Aurelius": "marcus.aurelius@example.com",
	"Charles Darwin":  "charles.darwin@example.com",
}

var demoPublishers = map[string]string{
	"Penguin Classics": "80 Strand, London",
	"Dover":            "31 East 2nd Street, Mineola",
}

var demoBooks = []demoBook{
	{"Pride and Prejudice", "10-000-001", 9.99, 12, "Fiction", "Jane Austen", "Penguin Classics", []string{"classic", "romance"}},
	{"Emma", "10-000-002", 8.50, 4, "Fiction", "Jane Austen", "Dover", []string{"classic"}},
	{"Moby-Dick", "10-000-003", 12.00, 7, "Fiction", "Herman Melville", "Penguin Classics", []string{"classic", "adventure"}},
	{"Frankenstein", "10-000-004", 7.25, 9, "Horror", "Mary Shelley", "Dover", []string{"classic", "science"}},
	{"Meditations", "10-000-005", 6.00, 15, "Philosophy", "Marcus Aurelius", "Penguin Classics", []string{"philosophy"}},
	{"On the Origin of Species", "10-000-006", 14.75, 3, "Science", "Charles Darwin", "Dover", []string{"science", "classic"}},
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	logger := logging.Must("info", "console")
	defer func() { _ = logger.Sync() }()

	logger.Info("generating demo database", zap.String("path", *dbPath))

	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		logger.Fatal("failed to remove existing demo database", zap.Error(err))
	}

	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = *dbPath
	cfg.Pricing.AdjustFactor = config.DefaultPriceAdjustFactor
	cfg.Audit.Dir = config.DefaultAuditDir

	ctx := context.Background()
	catalog, err := entrypoint.NewCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to create database", zap.Error(err))
	}
	defer catalog.Close()

	for name, email := range demoAuthors {
		if _, err := catalog.Authors.Create(ctx, name, email); err != nil {
			logger.Warn("failed to create author", zap.String("name", name), zap.Error(err))
		}
	}
	for name, address := range demoPublishers {
		if _, err := catalog.Publishers.Create(ctx, name, address); err != nil {
			logger.Warn("failed to create publisher", zap.String("name", name), zap.Error(err))
		}
	}

	tagNames := map[string]bool{}
	for _, b := range demoBooks {
		for _, tag := range b.Tags {
			if tagNames[tag] {
				continue
			}
			tagNames[tag] = true
			if _, err := catalog.Tags.Create(ctx, tag); err != nil {
				logger.Warn("failed to create tag", zap.String("name", tag), zap.Error(err))
			}
		}
	}

	for _, b := range demoBooks {
		book, err := catalog.Books.Create(ctx, services.CreateBookRequest{
			Title:         b.Title,
			ISBN:          b.ISBN,
			Price:         b.Price,
			Quantity:      b.Quantity,
			Category:      b.Category,
			AuthorName:    b.Author,
			PublisherName: b.Publisher,
			TagNames:      b.Tags,
		})
		if err != nil {
			logger.Warn("failed to save book", zap.String("title", b.Title), zap.Error(err))
			continue
		}
		logger.Info("saved book", zap.String("title", book.Title), zap.String("isbn", book.ISBN))
	}

	logger.Info("demo database generated")
}
