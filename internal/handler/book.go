package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf/internal/metrics"
	"github.com/snnyvrz/bookshelf/internal/model"
	"github.com/snnyvrz/bookshelf/internal/pagination"
	"github.com/snnyvrz/bookshelf/internal/repository"
	"github.com/snnyvrz/bookshelf/internal/validation"
	"github.com/snnyvrz/bookshelf/web"
)

// ListPath is the canonical listing; every successful write redirects here.
const ListPath = "/books"

type BookHandler struct {
	repo    repository.BookRepository
	metrics *metrics.Metrics
}

func NewBookHandler(repo repository.BookRepository, m *metrics.Metrics) *BookHandler {
	return &BookHandler{repo: repo, metrics: m}
}

func (h *BookHandler) Routes() []Route {
	return []Route{
		{http.MethodGet, "", h.ListBooks},
		{http.MethodGet, "/new", h.NewBookForm},
		{http.MethodPost, "/new", h.CreateBook},
		{http.MethodGet, "/search", h.SearchBooks},
		{http.MethodGet, "/:id", h.EditBookForm},
		{http.MethodPost, "/:id", h.UpdateBook},
		{http.MethodPost, "/:id/delete", h.DeleteBook},
	}
}

func (h *BookHandler) RegisterRoutes(r gin.IRouter) {
	Register(r.Group(ListPath), h.Routes())
}

func (h *BookHandler) ListBooks(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	size := pagination.DefaultPageSize

	books, total, err := h.repo.ListPage(c.Request.Context(), pagination.Offset(page, size), size)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.renderList(c, "", books, pagination.Calculate(page, size, total))
}

func (h *BookHandler) SearchBooks(c *gin.Context) {
	term := c.Query("term")
	page := pagination.ParsePage(c.Query("page"))
	size := pagination.DefaultPageSize

	books, total, err := h.repo.SearchPage(c.Request.Context(), term, pagination.Offset(page, size), size)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.renderList(c, term, books, pagination.Calculate(page, size, total))
}

func (h *BookHandler) NewBookForm(c *gin.Context) {
	renderForm(c, web.ViewNewBook, BookForm{}, nil)
}

func (h *BookHandler) CreateBook(c *gin.Context) {
	var form BookForm
	if verr := bindForm(c, &form); verr != nil {
		h.observe("create", verr)
		renderForm(c, web.ViewNewBook, form, verr)
		return
	}

	var book model.Book
	err := form.applyTo(&book)
	if err == nil {
		err = h.repo.Create(c.Request.Context(), &book)
	}
	h.observe("create", err)

	var verr *validation.Error
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, ListPath)
	case errors.As(err, &verr):
		renderForm(c, web.ViewNewBook, form, verr)
	default:
		_ = c.Error(err)
	}
}

func (h *BookHandler) EditBookForm(c *gin.Context) {
	book, err := h.loadBook(c)
	if err != nil {
		return
	}

	renderForm(c, web.ViewUpdateBook, bookFormFrom(*book), nil)
}

func (h *BookHandler) UpdateBook(c *gin.Context) {
	book, err := h.loadBook(c)
	if err != nil {
		h.observe("update", err)
		return
	}

	var form BookForm
	if verr := bindForm(c, &form); verr != nil {
		h.observe("update", verr)
		renderForm(c, web.ViewUpdateBook, bookFormFrom(*book), verr)
		return
	}
	form.ID = book.ID

	err = form.applyTo(book)
	if err == nil {
		err = h.repo.Update(c.Request.Context(), book)
	}
	h.observe("update", err)

	var verr *validation.Error
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, ListPath)
	case errors.As(err, &verr):
		renderForm(c, web.ViewUpdateBook, form, verr)
	case errors.Is(err, repository.ErrBookNotFound):
		NotFound(c)
	default:
		_ = c.Error(err)
	}
}

func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.observe("delete", repository.ErrBookNotFound)
		NotFound(c)
		return
	}

	err := h.repo.Delete(c.Request.Context(), id)
	h.observe("delete", err)

	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, ListPath)
	case errors.Is(err, repository.ErrBookNotFound):
		NotFound(c)
	default:
		_ = c.Error(err)
	}
}

// loadBook resolves the :id parameter. On error the response is already
// taken care of: the not-found page was rendered or the failure was handed
// to the error boundary.
func (h *BookHandler) loadBook(c *gin.Context) (*model.Book, error) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c)
		return nil, repository.ErrBookNotFound
	}

	book, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			NotFound(c)
		} else {
			_ = c.Error(err)
		}
		return nil, err
	}

	return book, nil
}

func (h *BookHandler) renderList(c *gin.Context, term string, books []model.Book, page pagination.Page) {
	c.HTML(http.StatusOK, web.ViewIndex, gin.H{
		"title": "Books",
		"books": books,
		"term":  term,
		"page":  page,
	})
}

func (h *BookHandler) observe(operation string, err error) {
	var verr *validation.Error
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.As(err, &verr):
		outcome = metrics.OutcomeInvalid
	case errors.Is(err, repository.ErrBookNotFound):
		outcome = metrics.OutcomeNotFound
	default:
		outcome = metrics.OutcomeError
	}
	h.metrics.ObserveWrite(operation, outcome)
}

func renderForm(c *gin.Context, view string, form BookForm, verr *validation.Error) {
	title := "New Book"
	if view == web.ViewUpdateBook {
		title = "Update Book"
	}

	data := gin.H{
		"title": title,
		"book":  form,
	}
	if verr.HasErrors() {
		data["errors"] = verr
	}

	c.HTML(http.StatusOK, view, data)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
