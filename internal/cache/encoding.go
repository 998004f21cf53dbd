package cache

import (
	"encoding/json"

	"github.com/mrlokans/bookstore/internal/entities"
)

// cachedBook stores a book with its foreign keys, which the API form omits.
type cachedBook entities.Book

type cachedBookJSON struct {
	entities.Book
	AuthorID    uint `json:"authorId"`
	PublisherID uint `json:"publisherId"`
}

func (b cachedBook) MarshalJSON() ([]byte, error) {
	return json.Marshal(cachedBookJSON{
		Book:        entities.Book(b),
		AuthorID:    b.AuthorID,
		PublisherID: b.PublisherID,
	})
}

func decodeBook(data []byte) (*entities.Book, error) {
	var raw cachedBookJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	book := raw.Book
	book.AuthorID = raw.AuthorID
	book.PublisherID = raw.PublisherID
	return &book, nil
}
