// Package testdb builds small Mendeley-shaped SQLite files for tests.
//
//	path := testdb.Create(t, testdb.Fixture{
//		Folders:     []testdb.Folder{{ID: 1, Name: "Math"}},
//		Assignments: []testdb.Assignment{{DocumentID: 10, FolderID: 1}},
//		Documents:   []testdb.Document{{ID: 10, Title: "Calculus", Year: 2001}},
//	})
package testdb

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Schema is the subset of the Mendeley Desktop schema foldermap reads.
const Schema = `
CREATE TABLE Folders (id INTEGER PRIMARY KEY, name VARCHAR);
CREATE TABLE DocumentFolders (documentId INTEGER NOT NULL, folderId INTEGER NOT NULL);
CREATE TABLE Documents (id INTEGER PRIMARY KEY, title VARCHAR, year INT);
`

// Folder is a Folders row.
type Folder struct {
	ID   int64
	Name string
}

// Assignment is a DocumentFolders row.
type Assignment struct {
	DocumentID int64
	FolderID   int64
}

// Document is a Documents row. A nil Title or Year is stored as NULL.
type Document struct {
	ID    int64
	Title any
	Year  any
}

// Fixture is the content of a test database. Rows are inserted in order.
type Fixture struct {
	Folders     []Folder
	Assignments []Assignment
	Documents   []Document
}

// Create writes f to library.sqlite in a fresh temp directory and returns its path.
func Create(t testing.TB, f Fixture) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.sqlite")
	CreateAt(t, path, f)
	return path
}

// CreateAt writes f to a new database at path.
func CreateAt(t testing.TB, path string, f Fixture) {
	t.Helper()
	stmts := []string{Schema}
	db := exec(t, path, stmts...)
	defer closeDB(t, db)

	for _, folder := range f.Folders {
		mustExec(t, db, "INSERT INTO Folders (id, name) VALUES (?, ?)", folder.ID, folder.Name)
	}
	for _, a := range f.Assignments {
		mustExec(t, db, "INSERT INTO DocumentFolders (documentId, folderId) VALUES (?, ?)", a.DocumentID, a.FolderID)
	}
	for _, doc := range f.Documents {
		mustExec(t, db, "INSERT INTO Documents (id, title, year) VALUES (?, ?, ?)", doc.ID, doc.Title, doc.Year)
	}
}

// Raw creates a database at a temp path by running stmts, for schemas that
// deliberately differ from Schema.
func Raw(t testing.TB, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.sqlite")
	closeDB(t, exec(t, path, stmts...))
	return path
}

func exec(t testing.TB, path string, stmts ...string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("testdb: open %s: %v", path, err)
	}
	db.SetMaxOpenConns(1)
	for _, stmt := range stmts {
		mustExec(t, db, stmt)
	}
	return db
}

func mustExec(t testing.TB, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("testdb: %s: %v", query, err)
	}
}

func closeDB(t testing.TB, db *sql.DB) {
	t.Helper()
	if err := db.Close(); err != nil {
		t.Fatalf("testdb: close: %v", err)
	}
}
