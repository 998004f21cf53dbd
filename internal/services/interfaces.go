package services

import (
	"context"

	"github.com/mrlokans/bookstore/internal/entities"
)

// Stores return (nil, nil) from single-entity lookups when nothing matches.

// AuthorStore persists authors. Delete cascades to the author's books.
type AuthorStore interface {
	Create(ctx context.Context, author *entities.Author) error
	FindAll(ctx context.Context) ([]entities.Author, error)
	FindByID(ctx context.Context, id uint) (*entities.Author, error)
	FindByName(ctx context.Context, name string) (*entities.Author, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

// PublisherStore persists publishers. Delete cascades to the publisher's books.
type PublisherStore interface {
	Create(ctx context.Context, publisher *entities.Publisher) error
	FindAll(ctx context.Context) ([]entities.Publisher, error)
	FindByID(ctx context.Context, id uint) (*entities.Publisher, error)
	FindByName(ctx context.Context, name string) (*entities.Publisher, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

// TagStore persists tags. Delete only unlinks books.
type TagStore interface {
	Create(ctx context.Context, tag *entities.Tag) error
	FindAll(ctx context.Context) ([]entities.Tag, error)
	FindByID(ctx context.Context, id uint) (*entities.Tag, error)
	FindByName(ctx context.Context, name string) (*entities.Tag, error)
	Delete(ctx context.Context, id uint) error
}

// BookStore persists books and answers catalog queries.
type BookStore interface {
	Create(ctx context.Context, book *entities.Book) error
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	FindByISBN(ctx context.Context, isbn string) (*entities.Book, error)
	FindAll(ctx context.Context) ([]entities.Book, error)
	CountByCategory(ctx context.Context, category string) (int64, error)
	SearchByTitle(ctx context.Context, q string) ([]entities.Book, error)
	SearchByAuthorName(ctx context.Context, q string) ([]entities.Book, error)
	SearchByCategory(ctx context.Context, q string) ([]entities.Book, error)
	FindByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error)
	FindByPublisher(ctx context.Context, publisherID uint) ([]entities.Book, error)
	FindByTag(ctx context.Context, tagID uint) ([]entities.Book, error)
	UpdatePrices(ctx context.Context, books []entities.Book) error
	DeleteByISBN(ctx context.Context, isbn string) (int64, error)
}

// BookCache holds books keyed by ISBN. Implementations swallow their own
// failures; a broken cache only costs a database round trip.
type BookCache interface {
	GetBook(ctx context.Context, isbn string) (*entities.Book, bool)
	SetBook(ctx context.Context, book *entities.Book)
	InvalidateBook(ctx context.Context, isbn string)
	InvalidateAll(ctx context.Context)
}

// AuditLogger records catalog changes.
type AuditLogger interface {
	LogCreate(ctx context.Context, entityType, entityKey, description string)
	LogDelete(ctx context.Context, entityType, entityKey, description string)
	LogPriceAdjust(ctx context.Context, factor float64, booksCount int, snapshot string, err error)
}

// PriceSnapshotter keeps a copy of data before a bulk overwrite.
type PriceSnapshotter interface {
	Save(kind string, data any) (string, error)
}

// Metrics receives business counters.
type Metrics interface {
	BookCreated()
	BooksDeleted(n int)
	PricesAdjusted(n int)
	CacheLookup(hit bool)
}
