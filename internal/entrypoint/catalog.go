package entrypoint

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/cache"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	auditRepo "github.com/mrlokans/bookstore/internal/database/audit"
	"github.com/mrlokans/bookstore/internal/database/authors"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/publishers"
	"github.com/mrlokans/bookstore/internal/database/tags"
	"github.com/mrlokans/bookstore/internal/metrics"
	"github.com/mrlokans/bookstore/internal/services"
)

// Catalog is the assembled service layer shared by the server and the CLI.
type Catalog struct {
	DB         *database.Database
	Authors    *services.AuthorService
	Publishers *services.PublisherService
	Tags       *services.TagService
	Books      *services.BookService
	TagRepo    *tags.Repository
	Audit      *audit.Service
	Metrics    *metrics.Metrics

	// Cache is nil when REDIS_ADDR is unset or the server is unreachable.
	Cache *cache.RedisCache

	logger *zap.Logger
}

// NewCatalog opens the database and wires repositories, services and their
// optional collaborators. An unreachable Redis disables caching rather than
// failing startup.
func NewCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := database.FromConfig(cfg.Database)
	opts.Logger = logger.Named("database")
	db, err := database.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	authorRepo := authors.NewRepository(db.DB)
	publisherRepo := publishers.NewRepository(db.DB)
	tagRepo := tags.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)

	c := &Catalog{
		DB:         db,
		Authors:    services.NewAuthorService(authorRepo, bookRepo, logger.Named("authors")),
		Publishers: services.NewPublisherService(publisherRepo, bookRepo, logger.Named("publishers")),
		Tags:       services.NewTagService(tagRepo, bookRepo, logger.Named("tags")),
		Books: services.NewBookService(bookRepo, authorRepo, publisherRepo, tagRepo,
			cfg.Pricing.AdjustFactor, logger.Named("books")),
		TagRepo: tagRepo,
		Audit:   audit.NewService(auditRepo.NewRepository(db.DB), logger.Named("audit")),
		logger:  logger,
	}
	c.Books.SetSnapshotter(audit.NewSnapshotStore(cfg.Audit.Dir))

	if cfg.Metrics.Enabled {
		c.Metrics = metrics.New()
	}

	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		}, logger.Named("cache"))
		if err != nil {
			logger.Warn("redis unavailable, book cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			c.Cache = redisCache
		}
	}

	c.installHooks()
	return c, nil
}

func (c *Catalog) installHooks() {
	type hooked interface {
		SetCache(services.BookCache)
		SetAuditor(services.AuditLogger)
		SetMetrics(services.Metrics)
	}

	for _, svc := range []hooked{c.Authors, c.Publishers, c.Tags, c.Books} {
		svc.SetAuditor(c.Audit)
		if c.Cache != nil {
			svc.SetCache(c.Cache)
		}
		if c.Metrics != nil {
			svc.SetMetrics(c.Metrics)
		}
	}
}

// Close waits for pending audit writes, then releases the cache and database.
func (c *Catalog) Close() {
	c.Audit.Wait()
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.logger.Warn("error closing cache", zap.Error(err))
		}
	}
	if err := c.DB.Close(); err != nil {
		c.logger.Warn("error closing database", zap.Error(err))
	}
}
