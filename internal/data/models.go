package data

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// queryTimeout bounds every database round-trip made by the models.
const queryTimeout = 3 * time.Second

// ErrRecordNotFound is returned when a query finds no matching row.
var ErrRecordNotFound = errors.New("record not found")

// ValidationError is returned by writes whose record fails a declared
// constraint. Messages are in field declaration order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Messages))
	for i, msg := range e.Messages {
		parts[i] = "Validation error: " + msg
	}
	return strings.Join(parts, ",\n")
}

// BookStore is the persistence port used by the book handlers.
type BookStore interface {
	Insert(ctx context.Context, book *Book) error
	Get(ctx context.Context, id uint) (*Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	Update(ctx context.Context, id uint, input UpdateBookInput) (*Book, error)
	Delete(ctx context.Context, id uint) error
}

// ReaderStore is the persistence port for reader accounts.
type ReaderStore interface {
	Insert(ctx context.Context, reader *Reader) error
	Get(ctx context.Context, id uint) (*Reader, error)
}

// Models is a top-level container that groups all model types together.
// It is passed around the application via applicationDependencies so every
// handler has access to the database without importing gorm directly.
type Models struct {
	Books   BookStore
	Readers ReaderStore
}

// NewModels constructs a Models value wired up to the given database handle.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels(db *gorm.DB) Models {
	return Models{
		Books:   BookModel{DB: db},
		Readers: ReaderModel{DB: db},
	}
}

// Migrate creates or updates the tables for every entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Book{}, &Reader{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// BookModel wraps a *gorm.DB handle and provides methods for
// creating, reading, updating, and deleting book records.
type BookModel struct {
	DB *gorm.DB
}

// Insert validates and adds a new book record to the database.
// The database-assigned id and timestamps are written back into book.
func (m BookModel) Insert(ctx context.Context, book *Book) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return m.DB.WithContext(ctx).Create(book).Error
}

// Get retrieves a single book by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) Get(ctx context.Context, id uint) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var book Book
	err := m.DB.WithContext(ctx).First(&book, id).Error
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAll retrieves every book. The result is never nil.
func (m BookModel) GetAll(ctx context.Context) ([]Book, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	books := []Book{}
	if err := m.DB.WithContext(ctx).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Update applies the supplied fields of input to the book with the given id
// and returns the record as re-read from the database. The read, the
// conditional UPDATE and the re-read share one transaction.
// Returns ErrRecordNotFound if no book matched, or a *ValidationError if the
// merged record breaks a constraint.
func (m BookModel) Update(ctx context.Context, id uint, input UpdateBookInput) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var book Book
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, id).Error; err != nil {
			return err
		}

		input.apply(&book)

		result := tx.Model(&book).
			Select("title", "author", "genre", "isbn", "updated_at").
			Updates(&book)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.First(&book, id).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// Delete removes the book with the given id from the database in a single
// statement. Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Delete(ctx context.Context, id uint) error {
	// Guard against obviously bad IDs before touching the database.
	if id < 1 {
		return ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result := m.DB.WithContext(ctx).Delete(&Book{}, id)
	if result.Error != nil {
		return result.Error
	}

	// If no rows were deleted, the book didn't exist.
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// ReaderModel provides database operations for reader accounts.
type ReaderModel struct {
	DB *gorm.DB
}

// Insert validates and stores a new reader.
func (m ReaderModel) Insert(ctx context.Context, reader *Reader) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return m.DB.WithContext(ctx).Create(reader).Error
}

// Get retrieves a reader by primary key.
func (m ReaderModel) Get(ctx context.Context, id uint) (*Reader, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var reader Reader
	err := m.DB.WithContext(ctx).First(&reader, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &reader, nil
}
