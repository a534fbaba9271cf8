package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/snnyvrz/bookshelf/internal/metrics"
	"github.com/snnyvrz/bookshelf/internal/middleware"
	"github.com/snnyvrz/bookshelf/internal/db"
	"github.com/snnyvrz/bookshelf/internal/model"
	"github.com/snnyvrz/bookshelf/internal/repository"
	"github.com/snnyvrz/bookshelf/web"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:testdb_" + uuid.New().String() + "?mode=memory&cache=shared"

	database, err := gorm.Open(db.SQLite(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.AutoMigrate(&model.Book{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return database
}

func setupRouterWithRepo(t *testing.T, repo repository.BookRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.ErrorBoundary(zap.NewNop(), middleware.HTMLFaultRenderer(web.ViewError, false)))

	bh := NewBookHandler(repo, metrics.New(prometheus.NewRegistry()))
	bh.RegisterRoutes(r)

	api := r.Group("/api", middleware.UseFaultRenderer(middleware.JSONFaultRenderer()))
	NewAPIHandler(repo).RegisterRoutes(api)

	r.NoRoute(NotFound)

	return r
}

func setupRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	return setupRouterWithRepo(t, repository.NewGormBookRepository(db, zap.NewNop()))
}

func intPtr(v int) *int { return &v }

// seedBook inserts a book created age ago, so seeds can be ordered explicitly.
func seedBook(t *testing.T, db *gorm.DB, title, author string, age time.Duration) model.Book {
	t.Helper()

	book := model.Book{
		Title:     title,
		Author:    author,
		CreatedAt: time.Now().Add(-age),
	}

	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}

	return book
}

// seedNumberedBooks inserts "Book 01".."Book n", Book n being the newest.
func seedNumberedBooks(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		seedBook(t, db, fmt.Sprintf("Book %02d", i), "Author", time.Duration(n-i+1)*time.Minute)
	}
}

func countBooks(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&model.Book{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count books: %v", err)
	}
	return count
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postForm(router *gin.Engine, target string, values url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postRaw(router *gin.Engine, target, contentType, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type fakeBookRepo struct {
	ListPageFn   func(ctx context.Context, offset, limit int) ([]model.Book, int64, error)
	FindByIDFn   func(ctx context.Context, id uint) (*model.Book, error)
	CreateFn     func(ctx context.Context, b *model.Book) error
	UpdateFn     func(ctx context.Context, b *model.Book) error
	DeleteFn     func(ctx context.Context, id uint) error
	SearchPageFn func(ctx context.Context, term string, offset, limit int) ([]model.Book, int64, error)
}

func (f *fakeBookRepo) ListPage(ctx context.Context, offset, limit int) ([]model.Book, int64, error) {
	if f.ListPageFn != nil {
		return f.ListPageFn(ctx, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeBookRepo) ListAll(ctx context.Context) ([]model.Book, error) {
	books, _, err := f.ListPage(ctx, 0, -1)
	return books, err
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, repository.ErrBookNotFound
}

func (f *fakeBookRepo) Create(ctx context.Context, b *model.Book) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) Update(ctx context.Context, b *model.Book) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

func (f *fakeBookRepo) Search(ctx context.Context, term string) ([]model.Book, error) {
	books, _, err := f.SearchPage(ctx, term, 0, -1)
	return books, err
}

func (f *fakeBookRepo) SearchPage(ctx context.Context, term string, offset, limit int) ([]model.Book, int64, error) {
	if f.SearchPageFn != nil {
		return f.SearchPageFn(ctx, term, offset, limit)
	}
	return nil, 0, nil
}
