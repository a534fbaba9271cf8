package db

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
	"github.com/snnyvrz/bookshelf/internal/search"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteDriverName is the go-sqlite3 driver with the catalog's SQL functions
// registered on every connection.
const SQLiteDriverName = "sqlite3_bookshelf"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(search.FoldFunc, search.Fold, true)
		},
	})
}

// SQLite returns a dialector for dsn that uses SQLiteDriverName.
func SQLite(dsn string) gorm.Dialector {
	return sqlite.New(sqlite.Config{
		DriverName: SQLiteDriverName,
		DSN:        dsn,
	})
}
