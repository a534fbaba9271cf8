package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf/internal/pagination"
	"github.com/snnyvrz/bookshelf/internal/repository"
)

// APIHandler serves a read-only JSON view of the catalog.
type APIHandler struct {
	repo repository.BookRepository
}

func NewAPIHandler(repo repository.BookRepository) *APIHandler {
	return &APIHandler{repo: repo}
}

func (h *APIHandler) Routes() []Route {
	return []Route{
		{http.MethodGet, "", h.ListBooks},
		{http.MethodGet, "/:id", h.GetBookByID},
	}
}

func (h *APIHandler) RegisterRoutes(r gin.IRouter) {
	Register(r.Group("/books"), h.Routes())
}

// ListBooks godoc
// @Summary      List books
// @Description  Newest first, 10 per page. With a term, only books whose title, author, genre or year contains it (case-insensitive).
// @Tags         books
// @Produce      json
// @Param        page  query     int     false  "Zero-based page index"  default(0) minimum(0)
// @Param        term  query     string  false  "Free-text search term"
// @Success      200   {object}  ListBooksResponse
// @Failure      500   {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books [get]
func (h *APIHandler) ListBooks(c *gin.Context) {
	term := c.Query("term")
	page := pagination.ParsePage(c.Query("page"))
	size := pagination.DefaultPageSize

	books, total, err := h.repo.SearchPage(c.Request.Context(), term, pagination.Offset(page, size), size)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, toListBooksResponse(books, pagination.Calculate(page, size, total), term))
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  BookResponse
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/{id} [get]
func (h *APIHandler) GetBookByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
		return
	}

	book, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*book))
}
