package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}))
	router.Use(RequestIDMiddleware())
	router.Use(AccessLogMiddleware(logger.Named("http")))
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(cfg.CORSOrigins))
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
	}

	health := NewHealthController(cfg.Database, cfg.Cache, cfg.Version)
	if cfg.Maintenance != nil {
		health.SetMaintenance(cfg.Maintenance)
	}
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := router.Group("/api")
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.Middleware())
	}

	books := NewBooksController(cfg.Books, cfg.Tasks, logger)
	api.GET("/books", books.ListBooks)
	api.GET("/books/displayAllBooks", books.ListBooks)
	api.POST("/books/createBook", books.CreateBook)
	api.GET("/books/inventory", books.Inventory)
	api.PUT("/books/updateBook", books.UpdatePrices)
	api.DELETE("/books/DeleteBook/:isbn", books.DeleteBook)
	api.GET("/books/search/title", books.SearchByTitle)
	api.GET("/books/search/author", books.SearchByAuthor)
	api.GET("/books/search/category", books.SearchByCategory)
	api.GET("/books/search/isbn", books.SearchByISBN)

	authors := NewAuthorsController(cfg.Authors, logger)
	api.POST("/authors", authors.CreateAuthor)
	api.GET("/authors", authors.GetAllAuthors)
	api.GET("/authors/:id", authors.GetAuthor)
	api.DELETE("/authors/:id", authors.DeleteAuthor)
	api.GET("/authors/:id/books", authors.GetAuthorBooks)

	publishers := NewPublishersController(cfg.Publishers, logger)
	api.POST("/publishers", publishers.CreatePublisher)
	api.GET("/publishers", publishers.GetAllPublishers)
	api.GET("/publishers/:id", publishers.GetPublisher)
	api.DELETE("/publishers/:id", publishers.DeletePublisher)
	api.GET("/publishers/:id/books", publishers.GetPublisherBooks)

	tags := NewTagsController(cfg.Tags, cfg.Tasks, logger)
	api.POST("/tags", tags.CreateTag)
	api.GET("/tags", tags.GetAllTags)
	api.GET("/tags/:id", tags.GetTag)
	api.DELETE("/tags/:id", tags.DeleteTag)
	api.GET("/tags/:id/books", tags.GetBooksByTag)
	api.POST("/admin/tags/cleanup", tags.CleanupOrphanTags)

	if cfg.Tasks != nil {
		taskController := NewTasksController(cfg.Tasks, logger)
		api.GET("/tasks/:id", taskController.GetTaskStatus)
	}

	if cfg.Maintenance != nil {
		maintenance := NewMaintenanceController(cfg.Maintenance, logger)
		api.POST("/admin/maintenance/run", maintenance.RunNow)
	}

	if cfg.Audit != nil {
		audit := NewAuditController(cfg.Audit, logger)
		api.GET("/audit", audit.GetAuditEvents)
	}

	return router
}
