package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/authors"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/publishers"
	"github.com/mrlokans/bookstore/internal/database/tags"
	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/metrics"
	"github.com/mrlokans/bookstore/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router  *gin.Engine
	db      *database.Database
	queue   *fakeQueue
	metrics *metrics.Metrics
}

// setupTestApp builds the router over real services and a throwaway sqlite file.
func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "http.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	authorRepo := authors.NewRepository(db.DB)
	publisherRepo := publishers.NewRepository(db.DB)
	tagRepo := tags.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	logger := zap.NewNop()

	app := &testApp{db: db, queue: newFakeQueue(), metrics: metrics.New()}
	app.router = NewRouter(RouterConfig{
		Books:       services.NewBookService(bookRepo, authorRepo, publisherRepo, tagRepo, 0.1, logger),
		Authors:     services.NewAuthorService(authorRepo, bookRepo, logger),
		Publishers:  services.NewPublisherService(publisherRepo, bookRepo, logger),
		Tags:        services.NewTagService(tagRepo, bookRepo, logger),
		Tasks:       app.queue,
		Database:    db,
		Metrics:     app.metrics,
		CORSOrigins: []string{"http://localhost:3000"},
		Logger:      logger,
		Version:     "test",
	})
	return app
}

func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	return a.doRaw(t, method, path, bytes.NewReader(payload))
}

func (a *testApp) doRaw(t *testing.T, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// seedCatalog creates one author, one publisher and one tag over HTTP.
func (a *testApp) seedCatalog(t *testing.T) (author entities.Author, publisher entities.Publisher, tag entities.Tag) {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/authors", gin.H{"name": "Ursula K. Le Guin", "email": "ursula@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &author)

	w = a.do(t, http.MethodPost, "/api/publishers", gin.H{"name": "Ace Books", "address": "New York"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &publisher)

	w = a.do(t, http.MethodPost, "/api/tags", gin.H{"name": "classic"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &tag)
	return
}

func (a *testApp) createBook(t *testing.T, body gin.H) entities.Book {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/books/createBook", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var book entities.Book
	decode(t, w, &book)
	return book
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// fakeQueue records enqueued tasks and serves preset statuses.
type fakeQueue struct {
	mu         sync.Mutex
	tasks      []backlite.Task
	statuses   map[string]backlite.TaskStatus
	enqueueErr error
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{statuses: map[string]backlite.TaskStatus{}}
}

func (q *fakeQueue) Enqueue(task backlite.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.enqueueErr != nil {
		return "", q.enqueueErr
	}
	q.tasks = append(q.tasks, task)
	return "task-1", nil
}

func (q *fakeQueue) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	if taskID == "broken" {
		return backlite.TaskStatusNotFound, errors.New("queue database closed")
	}
	status, ok := q.statuses[taskID]
	if !ok {
		return backlite.TaskStatusNotFound, nil
	}
	return status, nil
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}
