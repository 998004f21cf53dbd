package services

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/entities"
)

type AuthorService struct {
	hooks
	store  AuthorStore
	books  BookStore
	logger *zap.Logger
}

func NewAuthorService(store AuthorStore, books BookStore, logger *zap.Logger) *AuthorService {
	return &AuthorService{hooks: newHooks(), store: store, books: books, logger: logger}
}

func (s *AuthorService) Create(ctx context.Context, name, email string) (*entities.Author, error) {
	if err := requireText(name, "Author name must not be null or empty"); err != nil {
		return nil, err
	}
	if err := requireText(email, "Author email must not be null or empty"); err != nil {
		return nil, err
	}

	author := &entities.Author{Name: name, Email: email}
	if err := s.store.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}

	s.logger.Info("author created", zap.Uint("author_id", author.ID), zap.String("name", author.Name))
	s.audit.LogCreate(ctx, "author", strconv.FormatUint(uint64(author.ID), 10), "Created author: "+author.Name)
	return author, nil
}

func (s *AuthorService) GetAll(ctx context.Context) ([]entities.Author, error) {
	authors, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

func (s *AuthorService) GetByID(ctx context.Context, id uint) (*entities.Author, error) {
	author, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get author %d: %w", id, err)
	}
	if author == nil {
		return nil, NewNotFoundError("Author not found with id: %d", id)
	}
	return author, nil
}

// Delete removes the author and every book it wrote.
func (s *AuthorService) Delete(ctx context.Context, id uint) error {
	author, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete author %d: %w", id, err)
	}
	if removed > 0 {
		s.cache.InvalidateAll(ctx)
		s.metrics.BooksDeleted(int(removed))
	}

	s.logger.Info("author deleted", zap.Uint("author_id", id), zap.Int64("books_removed", removed))
	s.audit.LogDelete(ctx, "author", strconv.FormatUint(uint64(id), 10),
		fmt.Sprintf("Deleted author: %s (%d books)", author.Name, removed))
	return nil
}

// Books lists the books written by the author.
func (s *AuthorService) Books(ctx context.Context, id uint) ([]entities.Book, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	books, err := s.books.FindByAuthor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("books by author %d: %w", id, err)
	}
	return books, nil
}
