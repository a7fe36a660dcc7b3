package library

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/gorewood/foldermap/internal/normalize"
)

// DriverName is the database/sql driver used to read libraries.
const DriverName = "sqlite"

// busyTimeoutMS lets reads wait while Mendeley Desktop holds a write lock.
const busyTimeoutMS = 5000

var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// DSN returns a read-only SQLite URI for path.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(%d)",
		uriEscaper.Replace(filepath.ToSlash(path)), busyTimeoutMS)
}

// Open opens the database at path read-only and verifies the connection.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, DSN(path))
	if err != nil {
		return nil, &ExtractionError{Step: "open " + path, Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &ExtractionError{Step: "open " + path, Err: err}
	}
	return db, nil
}

// Load opens path, extracts its Library and closes the handle.
func Load(ctx context.Context, path string, norm normalize.Func) (*Library, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close() //nolint:errcheck // read-only handle

	return Extract(ctx, db, norm)
}
