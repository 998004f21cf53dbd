package services

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/entities"
)

type PublisherService struct {
	hooks
	store  PublisherStore
	books  BookStore
	logger *zap.Logger
}

func NewPublisherService(store PublisherStore, books BookStore, logger *zap.Logger) *PublisherService {
	return &PublisherService{hooks: newHooks(), store: store, books: books, logger: logger}
}

func (s *PublisherService) Create(ctx context.Context, name, address string) (*entities.Publisher, error) {
	if err := requireText(name, "Publisher name must not be null or empty"); err != nil {
		return nil, err
	}
	if err := requireText(address, "Publisher address must not be null or empty"); err != nil {
		return nil, err
	}

	publisher := &entities.Publisher{Name: name, Address: address}
	if err := s.store.Create(ctx, publisher); err != nil {
		return nil, fmt.Errorf("create publisher: %w", err)
	}

	s.logger.Info("publisher created", zap.Uint("publisher_id", publisher.ID), zap.String("name", publisher.Name))
	s.audit.LogCreate(ctx, "publisher", strconv.FormatUint(uint64(publisher.ID), 10), "Created publisher: "+publisher.Name)
	return publisher, nil
}

func (s *PublisherService) GetAll(ctx context.Context) ([]entities.Publisher, error) {
	publishers, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}
	return publishers, nil
}

func (s *PublisherService) GetByID(ctx context.Context, id uint) (*entities.Publisher, error) {
	publisher, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get publisher %d: %w", id, err)
	}
	if publisher == nil {
		return nil, NewNotFoundError("Publisher not found with id: %d", id)
	}
	return publisher, nil
}

// Delete removes the publisher along with its books.
func (s *PublisherService) Delete(ctx context.Context, id uint) error {
	publisher, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete publisher %d: %w", id, err)
	}
	if removed > 0 {
		s.cache.InvalidateAll(ctx)
		s.metrics.BooksDeleted(int(removed))
	}

	s.logger.Info("publisher deleted", zap.Uint("publisher_id", id), zap.Int64("books_removed", removed))
	s.audit.LogDelete(ctx, "publisher", strconv.FormatUint(uint64(id), 10),
		fmt.Sprintf("Deleted publisher: %s (%d books)", publisher.Name, removed))
	return nil
}

func (s *PublisherService) Books(ctx context.Context, id uint) ([]entities.Book, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	books, err := s.books.FindByPublisher(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("books by publisher %d: %w", id, err)
	}
	return books, nil
}
