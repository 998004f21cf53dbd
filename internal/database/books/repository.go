// Package books provides database operations for the book catalog.
//
// Reads preload the author, publisher and tags so callers always receive a
// complete book. Substring searches are case-insensitive; category inventory
// is an exact, case-sensitive match.
//
//	repo := books.NewRepository(db)
//	book, err := repo.FindByISBN(ctx, "12-345-678")
package books

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

// ErrDuplicateISBN is returned by Create when the ISBN is already stored.
var ErrDuplicateISBN = errors.New("isbn already exists")

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// withRelations preloads everything a serialized book carries.
func (r *Repository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("Publisher").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.id")
		})
}

// Create inserts the book and its tag links. Author and publisher rows must
// already exist and are referenced by AuthorID/PublisherID only.
func (r *Repository) Create(ctx context.Context, book *entities.Book) error {
	err := r.db.WithContext(ctx).Omit("Author", "Publisher", "Tags.*").Create(book).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", ErrDuplicateISBN, book.ISBN)
	}
	return err
}

func (r *Repository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Where("isbn = ?", isbn).Count(&count).Error
	return count > 0, err
}

// FindByID returns nil when the book does not exist.
func (r *Repository) FindByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.withRelations(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByISBN returns nil when no book carries the ISBN.
func (r *Repository) FindByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.withRelations(ctx).Where("isbn = ?", isbn).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.withRelations(ctx).Order("books.id").Find(&books).Error
	return books, err
}

// CountByCategory counts books whose category equals category exactly.
func (r *Repository) CountByCategory(ctx context.Context, category string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).
		Where(database.ExactClause(r.db, "category"), category).
		Count(&count).Error
	return count, err
}

func (r *Repository) SearchByTitle(ctx context.Context, q string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.withRelations(ctx).
		Where(database.ContainsClause("books.title"), database.ContainsPattern(q)).
		Order("books.id").
		Find(&books).Error
	return books, err
}

func (r *Repository) SearchByCategory(ctx context.Context, q string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.withRelations(ctx).
		Where(database.ContainsClause("books.category"), database.ContainsPattern(q)).
		Order("books.id").
		Find(&books).Error
	return books, err
}

func (r *Repository) SearchByAuthorName(ctx context.Context, q string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.withRelations(ctx).
		Joins("JOIN authors ON authors.id = books.author_id").
		Where(database.ContainsClause("authors.name"), database.ContainsPattern(q)).
		Order("books.id").
		Find(&books).Error
	return books, err
}

func (r *Repository) FindByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.withRelations(ctx).Where("books.author_id = ?", authorID).Order("books.id").Find(&books).Error
	return books, err
}

func (r *Repository) FindByPublisher(ctx context.Context, publisherID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.withRelations(ctx).Where("books.publisher_id = ?", publisherID).Order("books.id").Find(&books).Error
	return books, err
}

func (r *Repository) FindByTag(ctx context.Context, tagID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.withRelations(ctx).
		Where("books.id IN (?)", r.db.Table("book_tags").Select("book_id").Where("tag_id = ?", tagID)).
		Order("books.id").
		Find(&books).Error
	return books, err
}

// UpdatePrices writes the Price of every given book in one transaction.
func (r *Repository) UpdatePrices(ctx context.Context, books []entities.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, book := range books {
			err := tx.Model(&entities.Book{}).Where("id = ?", book.ID).Update("price", book.Price).Error
			if err != nil {
				return fmt.Errorf("update price of book %d: %w", book.ID, err)
			}
		}
		return nil
	})
}

// DeleteByISBN removes the book and its tag links atomically.
// A missing ISBN is not an error; the returned count is 0.
func (r *Repository) DeleteByISBN(ctx context.Context, isbn string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&entities.Book{}).Where("isbn = ?", isbn).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Exec("DELETE FROM book_tags WHERE book_id IN ?", ids).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", ids).Delete(&entities.Book{})
		removed = result.RowsAffected
		return result.Error
	})
	return removed, err
}
