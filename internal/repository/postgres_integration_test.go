//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/snnyvrz/bookshelf/internal/config"
	"github.com/snnyvrz/bookshelf/internal/db"
	"github.com/snnyvrz/bookshelf/internal/model"
	"github.com/snnyvrz/bookshelf/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// setupPostgres connects with the DB_* variables of the environment and
// empties the books table.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("DB_DRIVER", config.DriverPostgres)

	cfg, err := config.Load()
	require.NoError(t, err)

	database, err := db.ConnectWithRetry(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(database) })

	require.NoError(t, db.Migrate(database))
	require.NoError(t, database.Exec("TRUNCATE TABLE books RESTART IDENTITY").Error)

	return database
}

func TestPostgres_SearchAndPagination(t *testing.T) {
	database := setupPostgres(t)
	repo := NewGormBookRepository(database, zap.NewNop())
	ctx := context.Background()

	seedBooks(t, database, numberedBooks(12)...)
	seedBooks(t, database, model.Book{Title: "100% Tolkien?", Author: "Fan Club", Genre: "tolkien_fans", Year: intPtr(1977)})

	books, total, err := repo.ListPage(ctx, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(13), total)
	require.Len(t, books, 3)
	assert.Equal(t, "Book 02", books[0].Title)

	found, err := repo.Search(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = repo.Search(ctx, "1977")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "100% Tolkien?", found[0].Title)
}

func TestPostgres_NotNullViolationBecomesFieldError(t *testing.T) {
	database := setupPostgres(t)

	err := database.Exec("INSERT INTO books (title, author, created_at, updated_at) VALUES (NULL, 'Nobody', now(), now())").Error
	require.Error(t, err)

	var verr *validation.Error
	require.True(t, errors.As(translateWriteError("create book", err), &verr))
	assert.Equal(t, []string{"Title cannot be empty."}, verr.For("title"))
}
