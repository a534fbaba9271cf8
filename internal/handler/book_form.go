package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf/internal/model"
	"github.com/snnyvrz/bookshelf/internal/validation"
)

// BookForm is the create/edit form as submitted, kept as text so a rejected
// submission can be shown back unchanged.
type BookForm struct {
	ID     uint   `form:"-"`
	Title  string `form:"title"`
	Author string `form:"author"`
	Genre  string `form:"genre"`
	Year   string `form:"year"`
}

// bindForm decodes the request body into form. A body that cannot be decoded
// is reported like any other rejected submission.
func bindForm(c *gin.Context, form *BookForm) *validation.Error {
	if err := c.ShouldBind(form); err != nil {
		return validation.FieldErrorf("form", "The form could not be read. Please submit it again.")
	}
	return nil
}

func bookFormFrom(b model.Book) BookForm {
	return BookForm{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Genre:  b.Genre,
		Year:   b.YearText(),
	}
}

// applyTo copies the submitted values onto b. A year that is not a whole
// number is reported together with the rule violations of the other fields.
func (f BookForm) applyTo(b *model.Book) error {
	b.Title = f.Title
	b.Author = f.Author
	b.Genre = f.Genre
	b.Year = nil

	year := strings.TrimSpace(f.Year)
	if year == "" {
		return nil
	}

	n, err := strconv.Atoi(year)
	if err == nil {
		b.Year = &n
		return nil
	}

	verr := validation.FieldErrorf("year", "Year must be a whole number.")

	var other *validation.Error
	if err := b.Validate(); errors.As(err, &other) {
		verr.Merge(other)
	} else if err != nil {
		return err
	}
	return verr
}
