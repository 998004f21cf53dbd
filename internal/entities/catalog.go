package entities

import "time"

// Author writes books. Books is a back-reference and is never serialized.
type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:256;not null" json:"name"`
	Email     string    `gorm:"size:256;not null" json:"email"`
	Books     []Book    `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Publisher publishes books. Books is a back-reference and is never serialized.
type Publisher struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:256;not null" json:"name"`
	Address   string    `gorm:"size:512;not null" json:"address"`
	Books     []Book    `gorm:"foreignKey:PublisherID" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:100;not null" json:"name"`
	Books     []Book    `gorm:"many2many:book_tags;" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// Book is the catalog entry. ISBN is unique across the catalog.
type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"index;size:512;not null" json:"title"`
	ISBN        string    `gorm:"uniqueIndex;size:20;not null" json:"isbn"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	Quantity    int       `gorm:"not null;default:0" json:"quantity"`
	Category    string    `gorm:"index;size:100" json:"category"`
	AuthorID    uint      `gorm:"index;not null" json:"-"`
	Author      Author    `gorm:"foreignKey:AuthorID" json:"author"`
	PublisherID uint      `gorm:"index;not null" json:"-"`
	Publisher   Publisher `gorm:"foreignKey:PublisherID" json:"publisher"`
	Tags        []Tag     `gorm:"many2many:book_tags;" json:"tags"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
