package publishers

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

func (r *Repository) Create(ctx context.Context, publisher *entities.Publisher) error {
	return r.db.WithContext(ctx).Create(publisher).Error
}

func (r *Repository) FindAll(ctx context.Context) ([]entities.Publisher, error) {
	var publishers []entities.Publisher
	err := r.db.WithContext(ctx).Order("id").Find(&publishers).Error
	return publishers, err
}

// FindByID returns nil when no publisher has the given id.
func (r *Repository) FindByID(ctx context.Context, id uint) (*entities.Publisher, error) {
	var publisher entities.Publisher
	err := r.db.WithContext(ctx).First(&publisher, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &publisher, nil
}

// FindByName matches the name exactly; with duplicates the lowest id wins.
func (r *Repository) FindByName(ctx context.Context, name string) (*entities.Publisher, error) {
	var publisher entities.Publisher
	err := r.db.WithContext(ctx).
		Where(database.ExactClause(r.db, "name"), name).
		Order("id").
		First(&publisher).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &publisher, nil
}

// Delete removes the publisher together with its books and their tag links.
// Returns the number of books removed.
func (r *Repository) Delete(ctx context.Context, id uint) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bookIDs []uint
		if err := tx.Model(&entities.Book{}).Where("publisher_id = ?", id).Pluck("id", &bookIDs).Error; err != nil {
			return err
		}
		if len(bookIDs) > 0 {
			if err := tx.Exec("DELETE FROM book_tags WHERE book_id IN ?", bookIDs).Error; err != nil {
				return err
			}
		}
		result := tx.Where("publisher_id = ?", id).Delete(&entities.Book{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return tx.Delete(&entities.Publisher{}, id).Error
	})
	return removed, err
}
