package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf/internal/model"
	"github.com/snnyvrz/bookshelf/internal/pagination"
	"github.com/snnyvrz/bookshelf/internal/validation"
	"github.com/snnyvrz/bookshelf/web"
)

// NotFound renders the 404 page. It also serves unmatched routes.
func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, web.ViewNotFound, gin.H{
		"title": "Page Not Found",
	})
}

// RedirectToList sends the site root to the book listing.
func RedirectToList(c *gin.Context) {
	c.Redirect(http.StatusFound, ListPath)
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func toBook(b model.Book) Book {
	return Book{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Genre:     b.Genre,
		Year:      b.Year,
		CreatedAt: model.DateOf(b.CreatedAt),
		UpdatedAt: model.DateOf(b.UpdatedAt),
	}
}

func toBookResponse(b model.Book) BookResponse {
	return BookResponse{
		Data: toBook(b),
	}
}

func toListBooksResponse(books []model.Book, page pagination.Page, term string) ListBooksResponse {
	data := make([]Book, 0, len(books))
	for _, b := range books {
		data = append(data, toBook(b))
	}

	return ListBooksResponse{
		Data:       data,
		Term:       term,
		Pagination: page,
	}
}
