package services

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/entities"
)

type TagService struct {
	hooks
	store  TagStore
	books  BookStore
	logger *zap.Logger
}

func NewTagService(store TagStore, books BookStore, logger *zap.Logger) *TagService {
	return &TagService{hooks: newHooks(), store: store, books: books, logger: logger}
}

func (s *TagService) Create(ctx context.Context, name string) (*entities.Tag, error) {
	if err := requireText(name, "Tag name must not be null or empty"); err != nil {
		return nil, err
	}

	tag := &entities.Tag{Name: name}
	if err := s.store.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}

	s.logger.Info("tag created", zap.Uint("tag_id", tag.ID), zap.String("name", tag.Name))
	s.audit.LogCreate(ctx, "tag", strconv.FormatUint(uint64(tag.ID), 10), "Created tag: "+tag.Name)
	return tag, nil
}

func (s *TagService) GetAll(ctx context.Context) ([]entities.Tag, error) {
	tags, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (s *TagService) GetByID(ctx context.Context, id uint) (*entities.Tag, error) {
	tag, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tag %d: %w", id, err)
	}
	if tag == nil {
		return nil, NewNotFoundError("Tag not found with id: %d", id)
	}
	return tag, nil
}

// Delete removes the tag and its book links; the books stay.
func (s *TagService) Delete(ctx context.Context, id uint) error {
	tag, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	// cached books embed their tags
	s.cache.InvalidateAll(ctx)

	s.logger.Info("tag deleted", zap.Uint("tag_id", id))
	s.audit.LogDelete(ctx, "tag", strconv.FormatUint(uint64(id), 10), "Deleted tag: "+tag.Name)
	return nil
}

func (s *TagService) Books(ctx context.Context, id uint) ([]entities.Book, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	books, err := s.books.FindByTag(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("books by tag %d: %w", id, err)
	}
	return books, nil
}
