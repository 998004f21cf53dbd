package services

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/entities"
)

// CreateBookRequest is the input of the book creation orchestrator.
// Author and publisher are identified by id or, failing that, by exact name.
type CreateBookRequest struct {
	Title         string   `json:"title"`
	ISBN          string   `json:"isbn"`
	Price         float64  `json:"price"`
	Quantity      int      `json:"quantity"`
	Category      string   `json:"category"`
	AuthorID      *uint    `json:"authorId,omitempty"`
	AuthorName    string   `json:"authorName,omitempty"`
	PublisherID   *uint    `json:"publisherId,omitempty"`
	PublisherName string   `json:"publisherName,omitempty"`
	TagIDs        []uint   `json:"tagIds,omitempty"`
	TagNames      []string `json:"tagNames,omitempty"`
}

type BookService struct {
	hooks
	books       BookStore
	authors     AuthorStore
	publishers  PublisherStore
	tags        TagStore
	logger      *zap.Logger
	priceFactor float64
	snapshots   PriceSnapshotter
}

// PriceSnapshot is one entry of the file written before prices change.
type PriceSnapshot struct {
	ISBN  string  `json:"isbn"`
	Price float64 `json:"price"`
}

func NewBookService(
	bookStore BookStore,
	authors AuthorStore,
	publishers PublisherStore,
	tags TagStore,
	priceFactor float64,
	logger *zap.Logger,
) *BookService {
	return &BookService{
		hooks:       newHooks(),
		books:       bookStore,
		authors:     authors,
		publishers:  publishers,
		tags:        tags,
		logger:      logger,
		priceFactor: priceFactor,
	}
}

// SetSnapshotter makes AdjustPrices save the previous prices first.
func (s *BookService) SetSnapshotter(snapshots PriceSnapshotter) {
	s.snapshots = snapshots
}

// PriceFactor is the multiplier AdjustPrices applies.
func (s *BookService) PriceFactor() float64 {
	return s.priceFactor
}

// Create validates the request, resolves the author, publisher and tags, and
// stores the new book.
func (s *BookService) Create(ctx context.Context, req CreateBookRequest) (*entities.Book, error) {
	if err := s.validateCreate(ctx, req); err != nil {
		return nil, err
	}

	author, err := s.resolveAuthor(ctx, req)
	if err != nil {
		return nil, err
	}
	publisher, err := s.resolvePublisher(ctx, req)
	if err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(ctx, req.TagIDs, req.TagNames)
	if err != nil {
		return nil, err
	}

	book := &entities.Book{
		Title:       req.Title,
		ISBN:        req.ISBN,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		AuthorID:    author.ID,
		Author:      *author,
		PublisherID: publisher.ID,
		Publisher:   *publisher,
		Tags:        tags,
	}
	if err := s.books.Create(ctx, book); err != nil {
		if errors.Is(err, books.ErrDuplicateISBN) {
			return nil, NewConflictError("Book with ISBN already exists: %s", req.ISBN)
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.metrics.BookCreated()
	s.logger.Info("book created",
		zap.Uint("book_id", book.ID),
		zap.String("isbn", book.ISBN),
		zap.Uint("author_id", author.ID),
		zap.Uint("publisher_id", publisher.ID),
		zap.Int("tags", len(tags)))
	s.audit.LogCreate(ctx, "book", book.ISBN, "Created book: "+book.Title)
	return book, nil
}

// validateCreate applies the creation checks in order; the first failure wins.
func (s *BookService) validateCreate(ctx context.Context, req CreateBookRequest) error {
	if req.AuthorID == nil && isBlank(req.AuthorName) {
		return NewValidationError("Author information is required (id or name)")
	}
	if req.PublisherID == nil && isBlank(req.PublisherName) {
		return NewValidationError("Publisher information is required (id or name)")
	}
	if err := requireText(req.ISBN, "ISBN must not be null or empty"); err != nil {
		return err
	}
	if err := check(req.ISBN, validation.Match(isbnPattern).Error("ISBN must match pattern NN-NNN-NNN")); err != nil {
		return err
	}
	if err := requireText(req.Title, "Title must not be null or empty"); err != nil {
		return err
	}
	if err := check(req.Price, validation.Min(0.0).Error("Price cannot be negative")); err != nil {
		return err
	}
	if err := check(req.Quantity, validation.Min(0).Error("Quantity cannot be negative")); err != nil {
		return err
	}

	exists, err := s.books.ExistsByISBN(ctx, req.ISBN)
	if err != nil {
		return fmt.Errorf("check isbn %s: %w", req.ISBN, err)
	}
	if exists {
		return NewConflictError("Book with ISBN already exists: %s", req.ISBN)
	}
	return nil
}

func (s *BookService) resolveAuthor(ctx context.Context, req CreateBookRequest) (*entities.Author, error) {
	if req.AuthorID != nil {
		author, err := s.authors.FindByID(ctx, *req.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("find author %d: %w", *req.AuthorID, err)
		}
		if author == nil {
			return nil, NewNotFoundError("Author not found with id: %d", *req.AuthorID)
		}
		return author, nil
	}

	author, err := s.authors.FindByName(ctx, req.AuthorName)
	if err != nil {
		return nil, fmt.Errorf("find author %q: %w", req.AuthorName, err)
	}
	if author == nil {
		return nil, NewNotFoundError("Author not found with name: %s", req.AuthorName)
	}
	return author, nil
}

func (s *BookService) resolvePublisher(ctx context.Context, req CreateBookRequest) (*entities.Publisher, error) {
	if req.PublisherID != nil {
		publisher, err := s.publishers.FindByID(ctx, *req.PublisherID)
		if err != nil {
			return nil, fmt.Errorf("find publisher %d: %w", *req.PublisherID, err)
		}
		if publisher == nil {
			return nil, NewNotFoundError("Publisher not found with id: %d", *req.PublisherID)
		}
		return publisher, nil
	}

	publisher, err := s.publishers.FindByName(ctx, req.PublisherName)
	if err != nil {
		return nil, fmt.Errorf("find publisher %q: %w", req.PublisherName, err)
	}
	if publisher == nil {
		return nil, NewNotFoundError("Publisher not found with name: %s", req.PublisherName)
	}
	return publisher, nil
}

// resolveTags looks up every id and every name, then unions the results.
// A tag reached through both an id and a name appears once.
func (s *BookService) resolveTags(ctx context.Context, ids []uint, names []string) ([]entities.Tag, error) {
	resolved := make([]entities.Tag, 0, len(ids)+len(names))

	for _, id := range ids {
		tag, err := s.tags.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find tag %d: %w", id, err)
		}
		if tag == nil {
			return nil, NewNotFoundError("Tag not found with id: %d", id)
		}
		resolved = append(resolved, *tag)
	}

	for _, name := range names {
		tag, err := s.tags.FindByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("find tag %q: %w", name, err)
		}
		if tag == nil {
			return nil, NewNotFoundError("Tag not found with name: %s", name)
		}
		resolved = append(resolved, *tag)
	}

	return lo.UniqBy(resolved, func(tag entities.Tag) uint { return tag.ID }), nil
}

// InventoryCount counts books in exactly the given category (case-sensitive).
func (s *BookService) InventoryCount(ctx context.Context, category string) (int64, error) {
	count, err := s.books.CountByCategory(ctx, category)
	if err != nil {
		return 0, fmt.Errorf("count category %q: %w", category, err)
	}
	return count, nil
}

// AdjustPrices multiplies every price by the configured factor. The read and the write are separate steps; books created in between
// keep their price. When a snapshotter is set the old prices are saved first
// and a failed snapshot aborts the adjustment.
func (s *BookService) AdjustPrices(ctx context.Context) ([]entities.Book, error) {
	all, err := s.books.FindAll(ctx)
	if err != nil {
		s.audit.LogPriceAdjust(ctx, s.priceFactor, 0, "", err)
		return nil, fmt.Errorf("load books: %w", err)
	}

	var snapshot string
	if s.snapshots != nil && len(all) > 0 {
		previous := lo.Map(all, func(b entities.Book, _ int) PriceSnapshot {
			return PriceSnapshot{ISBN: b.ISBN, Price: b.Price}
		})
		snapshot, err = s.snapshots.Save("prices", previous)
		if err != nil {
			s.audit.LogPriceAdjust(ctx, s.priceFactor, 0, "", err)
			return nil, fmt.Errorf("snapshot prices: %w", err)
		}
	}

	for i := range all {
		all[i].Price = AdjustPrice(all[i].Price, s.priceFactor)
	}

	if err := s.books.UpdatePrices(ctx, all); err != nil {
		s.audit.LogPriceAdjust(ctx, s.priceFactor, len(all), snapshot, err)
		return nil, fmt.Errorf("save prices: %w", err)
	}

	s.cache.InvalidateAll(ctx)
	s.metrics.PricesAdjusted(len(all))
	s.logger.Info("prices adjusted",
		zap.Float64("factor", s.priceFactor),
		zap.Int("count", len(all)),
		zap.String("snapshot", snapshot))
	s.audit.LogPriceAdjust(ctx, s.priceFactor, len(all), snapshot, nil)
	return all, nil
}

// AdjustPrice applies factor to price. The product is stored as is; rounding
// would push small positive prices to zero.
func AdjustPrice(price, factor float64) float64 {
	return price * factor
}

// DeleteByISBN removes the book with the ISBN. A missing ISBN is not an error.
func (s *BookService) DeleteByISBN(ctx context.Context, isbn string) error {
	removed, err := s.books.DeleteByISBN(ctx, isbn)
	if err != nil {
		return fmt.Errorf("delete book %s: %w", isbn, err)
	}
	s.cache.InvalidateBook(ctx, isbn)
	if removed == 0 {
		s.logger.Debug("delete by isbn matched nothing", zap.String("isbn", isbn))
		return nil
	}

	s.metrics.BooksDeleted(int(removed))
	s.logger.Info("book deleted", zap.String("isbn", isbn))
	s.audit.LogDelete(ctx, "book", isbn, "Deleted book: "+isbn)
	return nil
}

func (s *BookService) SearchByTitle(ctx context.Context, q string) ([]entities.Book, error) {
	found, err := s.books.SearchByTitle(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search title %q: %w", q, err)
	}
	return found, nil
}

func (s *BookService) SearchByAuthorName(ctx context.Context, q string) ([]entities.Book, error) {
	found, err := s.books.SearchByAuthorName(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search author %q: %w", q, err)
	}
	return found, nil
}

func (s *BookService) SearchByCategory(ctx context.Context, q string) ([]entities.Book, error) {
	found, err := s.books.SearchByCategory(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search category %q: %w", q, err)
	}
	return found, nil
}

// SearchByISBN is an exact lookup, served from the cache when possible.
func (s *BookService) SearchByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	if book, ok := s.cache.GetBook(ctx, isbn); ok {
		s.metrics.CacheLookup(true)
		return book, nil
	}
	s.metrics.CacheLookup(false)

	book, err := s.books.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("find isbn %s: %w", isbn, err)
	}
	if book == nil {
		return nil, NewNotFoundError("Book not found with ISBN: %s", isbn)
	}

	s.cache.SetBook(ctx, book)
	return book, nil
}

func (s *BookService) ListAll(ctx context.Context) ([]entities.Book, error) {
	all, err := s.books.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return all, nil
}
