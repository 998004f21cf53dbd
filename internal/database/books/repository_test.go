package books

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

type fixture struct {
	repo      *Repository
	db        *gorm.DB
	author    *entities.Author
	publisher *entities.Publisher
}

func setupTestDB(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	author := &entities.Author{Name: "Frank Herbert", Email: "frank@example.com"}
	publisher := &entities.Publisher{Name: "Chilton", Address: "Philadelphia"}
	require.NoError(t, db.DB.Create(author).Error)
	require.NoError(t, db.DB.Create(publisher).Error)

	return &fixture{repo: NewRepository(db.DB), db: db.DB, author: author, publisher: publisher}
}

func (f *fixture) addBook(t *testing.T, title, isbn, category string, price float64, tags ...entities.Tag) *entities.Book {
	t.Helper()
	book := &entities.Book{
		Title:       title,
		ISBN:        isbn,
		Price:       price,
		Quantity:    1,
		Category:    category,
		AuthorID:    f.author.ID,
		PublisherID: f.publisher.ID,
		Tags:        tags,
	}
	require.NoError(t, f.repo.Create(context.Background(), book))
	return book
}

func TestRepository_CreateAndFindByISBN(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()

	tag := entities.Tag{Name: "scifi"}
	require.NoError(t, f.db.Create(&tag).Error)

	book := f.addBook(t, "Dune", "12-345-678", "fiction", 9.99, tag)
	assert.NotZero(t, book.ID)

	exists, err := f.repo.ExistsByISBN(ctx, "12-345-678")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := f.repo.FindByISBN(ctx, "12-345-678")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Dune", found.Title)
	assert.Equal(t, "Frank Herbert", found.Author.Name)
	assert.Equal(t, "Chilton", found.Publisher.Name)
	require.Len(t, found.Tags, 1)
	assert.Equal(t, "scifi", found.Tags[0].Name)

	missing, err := f.repo.FindByISBN(ctx, "00-000-000")
	require.NoError(t, err)
	assert.Nil(t, missing)

	exists, err = f.repo.ExistsByISBN(ctx, "00-000-000")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepository_CreateDoesNotDuplicateTags(t *testing.T) {
	f := setupTestDB(t)

	tag := entities.Tag{Name: "classic"}
	require.NoError(t, f.db.Create(&tag).Error)

	f.addBook(t, "One", "11-111-111", "fiction", 1, tag)
	f.addBook(t, "Two", "22-222-222", "fiction", 1, tag)

	var tagCount int64
	require.NoError(t, f.db.Model(&entities.Tag{}).Count(&tagCount).Error)
	assert.Equal(t, int64(1), tagCount)

	books, err := f.repo.FindByTag(context.Background(), tag.ID)
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestRepository_CountByCategory(t *testing.T) {
	f := setupTestDB(t)

	f.addBook(t, "A", "11-111-111", "fiction", 1)
	f.addBook(t, "B", "22-222-222", "fiction", 1)
	f.addBook(t, "C", "33-333-333", "fiction", 1)
	f.addBook(t, "D", "44-444-444", "Fiction", 1)
	f.addBook(t, "E", "55-555-555", "history", 1)

	count, err := f.repo.CountByCategory(context.Background(), "fiction")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = f.repo.CountByCategory(context.Background(), "poetry")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepository_CountByCategoryEmptyMatchesUncategorized(t *testing.T) {
	f := setupTestDB(t)

	f.addBook(t, "A", "11-111-111", "fiction", 1)
	f.addBook(t, "B", "22-222-222", "", 1)

	count, err := f.repo.CountByCategory(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_Search(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()

	f.addBook(t, "Concatenation", "11-111-111", "Computer Science", 1)
	f.addBook(t, "Dog", "22-222-222", "Pets", 1)
	f.addBook(t, "100% Pure", "33-333-333", "Cooking", 1)

	t.Run("title is case-insensitive substring", func(t *testing.T) {
		books, err := f.repo.SearchByTitle(ctx, "cat")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Concatenation", books[0].Title)
	})

	t.Run("wildcards match literally", func(t *testing.T) {
		books, err := f.repo.SearchByTitle(ctx, "0%")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "100% Pure", books[0].Title)
	})

	t.Run("category substring", func(t *testing.T) {
		books, err := f.repo.SearchByCategory(ctx, "SCIENCE")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Concatenation", books[0].Title)
	})

	t.Run("author name substring", func(t *testing.T) {
		books, err := f.repo.SearchByAuthorName(ctx, "herb")
		require.NoError(t, err)
		assert.Len(t, books, 3)
		assert.Equal(t, "Frank Herbert", books[0].Author.Name)
	})

	t.Run("no match is empty", func(t *testing.T) {
		books, err := f.repo.SearchByTitle(ctx, "zebra")
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestRepository_SearchNonASCII(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()

	author := &entities.Author{Name: "Émile Zola", Email: "emile@example.com"}
	require.NoError(t, f.db.Create(author).Error)
	book := &entities.Book{
		Title:       "Élan Vital",
		ISBN:        "66-666-666",
		Price:       5,
		Quantity:    1,
		Category:    "Éssai",
		AuthorID:    author.ID,
		PublisherID: f.publisher.ID,
	}
	require.NoError(t, f.repo.Create(ctx, book))

	byTitle, err := f.repo.SearchByTitle(ctx, "Élan")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Élan Vital", byTitle[0].Title)

	byTitle, err = f.repo.SearchByTitle(ctx, "VITAL")
	require.NoError(t, err)
	assert.Len(t, byTitle, 1)

	byAuthor, err := f.repo.SearchByAuthorName(ctx, "Émile")
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "Émile Zola", byAuthor[0].Author.Name)

	byCategory, err := f.repo.SearchByCategory(ctx, "Éssai")
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)
}

func TestRepository_CreateDuplicateISBN(t *testing.T) {
	f := setupTestDB(t)
	f.addBook(t, "Dune", "12-345-678", "fiction", 9.99)

	err := f.repo.Create(context.Background(), &entities.Book{
		Title:       "Dune Messiah",
		ISBN:        "12-345-678",
		AuthorID:    f.author.ID,
		PublisherID: f.publisher.ID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateISBN)
}

func TestRepository_ReverseLookups(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()

	other := &entities.Author{Name: "Other", Email: "o@example.com"}
	require.NoError(t, f.db.Create(other).Error)

	f.addBook(t, "Mine", "11-111-111", "fiction", 1)
	theirs := &entities.Book{Title: "Theirs", ISBN: "22-222-222", AuthorID: other.ID, PublisherID: f.publisher.ID}
	require.NoError(t, f.repo.Create(ctx, theirs))

	byAuthor, err := f.repo.FindByAuthor(ctx, f.author.ID)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "Mine", byAuthor[0].Title)

	byPublisher, err := f.repo.FindByPublisher(ctx, f.publisher.ID)
	require.NoError(t, err)
	assert.Len(t, byPublisher, 2)
}

func TestRepository_UpdatePrices(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()

	f.addBook(t, "A", "11-111-111", "fiction", 10)
	f.addBook(t, "B", "22-222-222", "fiction", 20)

	books, err := f.repo.FindAll(ctx)
	require.NoError(t, err)
	for i := range books {
		books[i].Price = books[i].Price / 2
	}
	require.NoError(t, f.repo.UpdatePrices(ctx, books))

	books, err = f.repo.FindAll(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, books[0].Price, 0.0001)
	assert.InDelta(t, 10.0, books[1].Price, 0.0001)
}

func TestRepository_DeleteByISBN(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()

	tag := entities.Tag{Name: "classic"}
	require.NoError(t, f.db.Create(&tag).Error)
	f.addBook(t, "Dune", "12-345-678", "fiction", 9.99, tag)

	removed, err := f.repo.DeleteByISBN(ctx, "12-345-678")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	found, err := f.repo.FindByISBN(ctx, "12-345-678")
	require.NoError(t, err)
	assert.Nil(t, found)

	var links int64
	require.NoError(t, f.db.Table("book_tags").Count(&links).Error)
	assert.Zero(t, links)

	t.Run("missing isbn is a no-op", func(t *testing.T) {
		removed, err := f.repo.DeleteByISBN(ctx, "12-345-678")
		require.NoError(t, err)
		assert.Zero(t, removed)
	})
}
