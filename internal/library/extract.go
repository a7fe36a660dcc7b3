package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gorewood/foldermap/internal/normalize"
)

// ErrExtractionFailed matches every error returned by Open, Extract and Load.
var ErrExtractionFailed = errors.New("extraction failed")

// ExtractionError reports which step of the extraction failed.
type ExtractionError struct {
	Step string
	Err  error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrExtractionFailed) match.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtractionFailed
}

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

const (
	foldersQuery     = "SELECT id, name FROM Folders"
	assignmentsQuery = "SELECT documentId, folderId FROM DocumentFolders"
	documentsQuery   = "SELECT id, title, year FROM Documents"
)

// Extract reads folders, assignments and documents and assembles a Library.
// Folder names and titles pass through norm before anything else sees them.
// Rows keep the order the database returns them in.
func Extract(ctx context.Context, db Querier, norm normalize.Func) (*Library, error) {
	if norm == nil {
		norm = normalize.Identity
	}

	folders, err := readFolders(ctx, db, norm)
	if err != nil {
		return nil, err
	}

	members, assigned, err := readAssignments(ctx, db)
	if err != nil {
		return nil, err
	}

	documents, order, err := readDocuments(ctx, db, norm)
	if err != nil {
		return nil, err
	}

	var unassigned []int64
	for _, id := range order {
		if !assigned[id] {
			unassigned = append(unassigned, id)
		}
	}

	return &Library{
		Folders:       folders,
		Members:       members,
		Documents:     documents,
		DocumentOrder: order,
		Unassigned:    unassigned,
	}, nil
}

func readFolders(ctx context.Context, db Querier, norm normalize.Func) ([]Folder, error) {
	var folders []Folder
	err := scanRows(ctx, db, foldersQuery, func(rows *sql.Rows) error {
		var (
			id   int64
			name sql.NullString
		)
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		folders = append(folders, Folder{ID: id, Name: norm(name.String)})
		return nil
	})
	return folders, err
}

func readAssignments(ctx context.Context, db Querier) (map[int64][]int64, map[int64]bool, error) {
	members := make(map[int64][]int64)
	assigned := make(map[int64]bool)
	err := scanRows(ctx, db, assignmentsQuery, func(rows *sql.Rows) error {
		var documentID, folderID int64
		if err := rows.Scan(&documentID, &folderID); err != nil {
			return err
		}
		members[folderID] = append(members[folderID], documentID)
		assigned[documentID] = true
		return nil
	})
	return members, assigned, err
}

func readDocuments(ctx context.Context, db Querier, norm normalize.Func) (map[int64]Document, []int64, error) {
	documents := make(map[int64]Document)
	var order []int64
	err := scanRows(ctx, db, documentsQuery, func(rows *sql.Rows) error {
		var (
			id    int64
			title sql.NullString
			year  sql.NullInt64
		)
		if err := rows.Scan(&id, &title, &year); err != nil {
			return err
		}
		doc := Document{ID: id, Title: norm(title.String)}
		if year.Valid {
			y := int(year.Int64)
			doc.Year = &y
		}
		if _, seen := documents[id]; !seen {
			order = append(order, id)
		}
		documents[id] = doc
		return nil
	})
	return documents, order, err
}

// scanRows runs query and calls scan for each row, wrapping any failure.
func scanRows(ctx context.Context, db Querier, query string, scan func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return &ExtractionError{Step: query, Err: err}
	}
	defer rows.Close() //nolint:errcheck // read-only cursor; Err is checked below

	for rows.Next() {
		if err := scan(rows); err != nil {
			return &ExtractionError{Step: query, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return &ExtractionError{Step: query, Err: err}
	}
	return nil
}
