package http

import (
	"context"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/services"
)

// This file collects the service interfaces the controllers depend on.
// The concrete implementations live in internal/services, internal/tasks and
// internal/audit.

// BookCatalog covers the book endpoints.
type BookCatalog interface {
	Create(ctx context.Context, req services.CreateBookRequest) (*entities.Book, error)
	InventoryCount(ctx context.Context, category string) (int64, error)
	AdjustPrices(ctx context.Context) ([]entities.Book, error)
	DeleteByISBN(ctx context.Context, isbn string) error
	SearchByTitle(ctx context.Context, q string) ([]entities.Book, error)
	SearchByAuthorName(ctx context.Context, q string) ([]entities.Book, error)
	SearchByCategory(ctx context.Context, q string) ([]entities.Book, error)
	SearchByISBN(ctx context.Context, isbn string) (*entities.Book, error)
	ListAll(ctx context.Context) ([]entities.Book, error)
}

type AuthorCatalog interface {
	Create(ctx context.Context, name, email string) (*entities.Author, error)
	GetAll(ctx context.Context) ([]entities.Author, error)
	GetByID(ctx context.Context, id uint) (*entities.Author, error)
	Delete(ctx context.Context, id uint) error
	Books(ctx context.Context, id uint) ([]entities.Book, error)
}

type PublisherCatalog interface {
	Create(ctx context.Context, name, address string) (*entities.Publisher, error)
	GetAll(ctx context.Context) ([]entities.Publisher, error)
	GetByID(ctx context.Context, id uint) (*entities.Publisher, error)
	Delete(ctx context.Context, id uint) error
	Books(ctx context.Context, id uint) ([]entities.Book, error)
}

type TagCatalog interface {
	Create(ctx context.Context, name string) (*entities.Tag, error)
	GetAll(ctx context.Context) ([]entities.Tag, error)
	GetByID(ctx context.Context, id uint) (*entities.Tag, error)
	Delete(ctx context.Context, id uint) error
	Books(ctx context.Context, id uint) ([]entities.Book, error)
}

// TaskQueue enqueues background work and reports on it.
type TaskQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// AuditReader pages through the audit trail.
type AuditReader interface {
	GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsForEntity(entityType, entityKey string) ([]entities.AuditEvent, error)
}

// MaintenanceRunner is the cron-driven cleanup scheduler.
type MaintenanceRunner interface {
	RunNow() error
	IsRunning() bool
	GetNextRunTime() *time.Time
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const requestTimeout = 5 * time.Second
