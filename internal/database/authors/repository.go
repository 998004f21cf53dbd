package authors

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, author *entities.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

func (r *Repository) FindAll(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.WithContext(ctx).Order("id").Find(&authors).Error
	return authors, err
}

// FindByID returns nil when no author has the given id.
func (r *Repository) FindByID(ctx context.Context, id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).First(&author, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// FindByName matches the name exactly; with duplicates the lowest id wins.
func (r *Repository) FindByName(ctx context.Context, name string) (*entities.Author, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).
		Where(database.ExactClause(r.db, "name"), name).
		Order("id").
		First(&author).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Delete removes the author together with its books and their tag links.
// Returns the number of books removed.
func (r *Repository) Delete(ctx context.Context, id uint) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bookIDs []uint
		if err := tx.Model(&entities.Book{}).Where("author_id = ?", id).Pluck("id", &bookIDs).Error; err != nil {
			return err
		}
		if len(bookIDs) > 0 {
			if err := tx.Exec("DELETE FROM book_tags WHERE book_id IN ?", bookIDs).Error; err != nil {
				return err
			}
		}
		result := tx.Where("author_id = ?", id).Delete(&entities.Book{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return tx.Delete(&entities.Author{}, id).Error
	})
	return removed, err
}
