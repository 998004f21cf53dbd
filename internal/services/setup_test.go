package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/authors"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/publishers"
	"github.com/mrlokans/bookstore/internal/database/tags"
	"github.com/mrlokans/bookstore/internal/entities"
)

type testServices struct {
	authors    *AuthorService
	publishers *PublisherService
	tags       *TagService
	books      *BookService
	cache      *fakeCache
	audit      *fakeAudit
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "services.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	authorRepo := authors.NewRepository(db.DB)
	publisherRepo := publishers.NewRepository(db.DB)
	tagRepo := tags.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	logger := zap.NewNop()

	ts := &testServices{
		authors:    NewAuthorService(authorRepo, bookRepo, logger),
		publishers: NewPublisherService(publisherRepo, bookRepo, logger),
		tags:       NewTagService(tagRepo, bookRepo, logger),
		books:      NewBookService(bookRepo, authorRepo, publisherRepo, tagRepo, 0.1, logger),
		cache:      newFakeCache(),
		audit:      &fakeAudit{},
	}
	for _, h := range []*hooks{&ts.authors.hooks, &ts.publishers.hooks, &ts.tags.hooks, &ts.books.hooks} {
		h.SetCache(ts.cache)
		h.SetAuditor(ts.audit)
	}
	return ts
}

func uintPtr(v uint) *uint { return &v }

type fakeCache struct {
	mu            sync.Mutex
	books         map[string]entities.Book
	invalidated   []string
	invalidateAll int
}

func newFakeCache() *fakeCache {
	return &fakeCache{books: make(map[string]entities.Book)}
}

func (c *fakeCache) GetBook(_ context.Context, isbn string) (*entities.Book, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	book, ok := c.books[isbn]
	if !ok {
		return nil, false
	}
	return &book, true
}

func (c *fakeCache) SetBook(_ context.Context, book *entities.Book) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.books[book.ISBN] = *book
}

func (c *fakeCache) InvalidateBook(_ context.Context, isbn string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.books, isbn)
	c.invalidated = append(c.invalidated, isbn)
}

func (c *fakeCache) InvalidateAll(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.books = make(map[string]entities.Book)
	c.invalidateAll++
}

type fakeSnapshots struct {
	saved []any
	err   error
}

func (f *fakeSnapshots) Save(kind string, data any) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, data)
	return kind + ".json", nil
}

type auditEntry struct {
	kind       string
	entityType string
	entityKey  string
	err        error
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (a *fakeAudit) record(e auditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

func (a *fakeAudit) LogCreate(_ context.Context, entityType, entityKey, _ string) {
	a.record(auditEntry{kind: "create", entityType: entityType, entityKey: entityKey})
}

func (a *fakeAudit) LogDelete(_ context.Context, entityType, entityKey, _ string) {
	a.record(auditEntry{kind: "delete", entityType: entityType, entityKey: entityKey})
}

func (a *fakeAudit) LogPriceAdjust(_ context.Context, _ float64, _ int, snapshot string, err error) {
	a.record(auditEntry{kind: "price_adjust", entityKey: snapshot, err: err})
}

func (a *fakeAudit) kinds() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.kind+":"+e.entityType)
	}
	return out
}
