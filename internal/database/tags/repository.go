package tags

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

func (r *Repository) Create(ctx context.Context, tag *entities.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *Repository) FindAll(ctx context.Context) ([]entities.Tag, error) {
	var tags []entities.Tag
	err := r.db.WithContext(ctx).Order("name, id").Find(&tags).Error
	return tags, err
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*entities.Tag, error) {
	var tag entities.Tag
	err := r.db.WithContext(ctx).First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *Repository) FindByName(ctx context.Context, name string) (*entities.Tag, error) {
	var tag entities.Tag
	err := r.db.WithContext(ctx).
		Where(database.ExactClause(r.db, "name"), name).
		Order("id").
		First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Delete unlinks the tag from every book, then removes it. Books are kept.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM book_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Tag{}, id).Error
	})
}

// DeleteOrphans removes tags not attached to any book.
func (r *Repository) DeleteOrphans(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM tags
		WHERE id NOT IN (SELECT DISTINCT tag_id FROM book_tags)
	`)
	return result.RowsAffected, result.Error
}
