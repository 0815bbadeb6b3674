package data

import (
	"time"

	"gorm.io/gorm"

	"github.com/aoideee/library-books-api/internal/validator"
)

// Reader is a library account. The table is created with the rest of the
// schema but no HTTP route exposes it yet.
//
// Password is stored as given and never serialized.
type Reader struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"not null" validate:"required,email"`
	Name      string    `json:"name" gorm:"not null" validate:"required"`
	Password  string    `json:"-" gorm:"not null" validate:"required,min=8"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var readerMessages = validator.Messages{
	"email.email":  "Valid email required",
	"password.min": "Password needs to be 8 characters or more",
}

// Validate checks the reader against its declared constraints.
func (r *Reader) Validate() error {
	v := validator.New()
	v.Struct(r, "Reader", readerMessages)
	if !v.Valid() {
		return &ValidationError{Messages: v.Messages()}
	}
	return nil
}

func (r *Reader) BeforeSave(tx *gorm.DB) error {
	return r.Validate()
}
