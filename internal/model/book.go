package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/snnyvrz/bookshelf/internal/validation"
	"gorm.io/gorm"
)

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title" validate:"required"`
	Author    string    `gorm:"not null;index" json:"author" validate:"required"`
	Genre     string    `json:"genre"`
	Year      *int      `json:"year"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Normalize trims the free-text fields in place.
func (b *Book) Normalize() {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	b.Genre = strings.TrimSpace(b.Genre)
}

// Validate normalizes b and checks it. Failures are *validation.Error.
func (b *Book) Validate() error {
	b.Normalize()
	return validation.Struct(b)
}

// BeforeSave runs on both create and update, so nothing invalid reaches the table.
func (b *Book) BeforeSave(tx *gorm.DB) error {
	return b.Validate()
}

func (b Book) YearText() string {
	if b.Year == nil {
		return ""
	}
	return strconv.Itoa(*b.Year)
}
