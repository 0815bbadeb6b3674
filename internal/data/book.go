// Package data provides the data models and database interaction logic
// for the book library API.
package data

import (
	"time"

	"gorm.io/gorm"

	"github.com/aoideee/library-books-api/internal/validator"
)

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table.
type Book struct {
	ID        uint      `json:"id" gorm:"primaryKey"`                                      // Assigned by the database, never reused
	Title     string    `json:"title" gorm:"not null" validate:"required"`                 // Title of the book
	Author    string    `json:"author" gorm:"not null" validate:"required"`                // Author's full name
	Genre     string    `json:"genre" gorm:"not null" validate:"required"`                 // Free-form genre label
	ISBN      string    `json:"ISBN" gorm:"column:isbn;not null" validate:"required,min=4"` // Not unique
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var bookMessages = validator.Messages{
	"ISBN.min": "ISBN must be 4 characters or longer",
}

// Validate checks the book against its declared constraints and returns a
// *ValidationError listing every failing field, or nil.
func (b *Book) Validate() error {
	v := validator.New()
	v.Struct(b, "Book", bookMessages)
	if !v.Valid() {
		return &ValidationError{Messages: v.Messages()}
	}
	return nil
}

// BeforeSave runs on every create and update so no invalid row is written.
func (b *Book) BeforeSave(tx *gorm.DB) error {
	return b.Validate()
}

// CreateBookInput holds the fields a client must supply when creating a new book.
type CreateBookInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
	ISBN   string `json:"ISBN"`
}

// UpdateBookInput holds the fields a client may supply when partially updating a book.
// Every field is a pointer so we can distinguish between "not provided" (nil)
// and "intentionally set to empty". Only non-nil fields are applied.
type UpdateBookInput struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Genre  *string `json:"genre"`
	ISBN   *string `json:"ISBN"`
}

// apply copies the supplied fields of input onto book.
func (input UpdateBookInput) apply(book *Book) {
	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Author != nil {
		book.Author = *input.Author
	}
	if input.Genre != nil {
		book.Genre = *input.Genre
	}
	if input.ISBN != nil {
		book.ISBN = *input.ISBN
	}
}
