package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/snnyvrz/bookshelf/internal/model"
	"github.com/snnyvrz/bookshelf/internal/search"
	"github.com/snnyvrz/bookshelf/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrBookNotFound is returned when no book has the requested id.
var ErrBookNotFound = errors.New("book not found")

// pgNotNullViolation is the SQLSTATE of a NOT NULL constraint failure.
const pgNotNullViolation = "23502"

// BookRepository is the record store for books. Listings are newest first.
// Create and Update return a *validation.Error when the book is rejected.
type BookRepository interface {
	ListPage(ctx context.Context, offset, limit int) ([]model.Book, int64, error)
	ListAll(ctx context.Context) ([]model.Book, error)
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	Create(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, term string) ([]model.Book, error)
	SearchPage(ctx context.Context, term string, offset, limit int) ([]model.Book, int64, error)
}

type GormBookRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewGormBookRepository(db *gorm.DB, log *zap.Logger) *GormBookRepository {
	return &GormBookRepository{db: db, log: log}
}

func (r *GormBookRepository) ListPage(ctx context.Context, offset, limit int) ([]model.Book, int64, error) {
	return r.page(ctx, search.Filter{}, offset, limit)
}

func (r *GormBookRepository) ListAll(ctx context.Context) ([]model.Book, error) {
	return r.all(ctx, search.Filter{})
}

func (r *GormBookRepository) Search(ctx context.Context, term string) ([]model.Book, error) {
	return r.all(ctx, search.New(term))
}

func (r *GormBookRepository) SearchPage(ctx context.Context, term string, offset, limit int) ([]model.Book, int64, error) {
	return r.page(ctx, search.New(term), offset, limit)
}

func (r *GormBookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("find book %d: %w", id, err)
	}
	return &book, nil
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return translateWriteError("create book", err)
	}

	r.log.Info("Book created", zap.Uint("id", book.ID), zap.String("title", book.Title))
	return nil
}

// Update writes the editable fields of book. A row that no longer exists
// yields ErrBookNotFound and nothing is written.
func (r *GormBookRepository) Update(ctx context.Context, book *model.Book) error {
	result := r.db.WithContext(ctx).
		Model(book).
		Select("Title", "Author", "Genre", "Year", "UpdatedAt").
		Updates(book)
	if result.Error != nil {
		return translateWriteError("update book", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}

	r.log.Info("Book updated", zap.Uint("id", book.ID))
	return nil
}

func (r *GormBookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Book{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete book %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}

	r.log.Info("Book deleted", zap.Uint("id", id))
	return nil
}

func (r *GormBookRepository) query(ctx context.Context, f search.Filter) *gorm.DB {
	return f.Apply(r.db.WithContext(ctx).Model(&model.Book{}))
}

func (r *GormBookRepository) all(ctx context.Context, f search.Filter) ([]model.Book, error) {
	var books []model.Book
	if err := newestFirst(r.query(ctx, f)).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *GormBookRepository) page(ctx context.Context, f search.Filter, offset, limit int) ([]model.Book, int64, error) {
	var total int64
	if err := r.query(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	books := []model.Book{}
	if err := newestFirst(r.query(ctx, f)).Offset(offset).Limit(limit).Find(&books).Error; err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}

	return books, total, nil
}

func newestFirst(tx *gorm.DB) *gorm.DB {
	return tx.Order("created_at DESC").Order("id DESC")
}

// translateWriteError passes validation failures through untouched and maps
// a PostgreSQL NOT NULL violation onto the offending field.
func translateWriteError(op string, err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgNotNullViolation && pgErr.ColumnName != "" {
		return validation.FieldErrorf(pgErr.ColumnName, validation.Label(pgErr.ColumnName)+" cannot be empty.")
	}

	return fmt.Errorf("%s: %w", op, err)
}
