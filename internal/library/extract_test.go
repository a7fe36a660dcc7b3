package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gorewood/foldermap/internal/normalize"
	"github.com/gorewood/foldermap/internal/testdb"
)

func intPtr(n int) *int { return &n }

// scenarioFixture is the Math/Art library used across packages.
func scenarioFixture() testdb.Fixture {
	return testdb.Fixture{
		Folders: []testdb.Folder{{ID: 1, Name: "Math"}, {ID: 2, Name: "Art"}},
		Assignments: []testdb.Assignment{
			{DocumentID: 10, FolderID: 1},
			{DocumentID: 11, FolderID: 1},
		},
		Documents: []testdb.Document{
			{ID: 10, Title: "Calculus", Year: 2001114},
			{ID: 11, Title: "Geometry", Year: 1990},
			{ID: 12, Title: "Unrelated", Year: 2020},
		},
	}
}

func TestLoad_Scenario(t *testing.T) {
	path := testdb.Create(t, scenarioFixture())

	lib, err := Load(context.Background(), path, normalize.Identity)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := &Library{
		Folders: []Folder{{ID: 1, Name: "Math"}, {ID: 2, Name: "Art"}},
		Members: map[int64][]int64{1: {10, 11}},
		Documents: map[int64]Document{
			10: {ID: 10, Title: "Calculus", Year: intPtr(2001114)},
			11: {ID: 11, Title: "Geometry", Year: intPtr(1990)},
			12: {ID: 12, Title: "Unrelated", Year: intPtr(2020)},
		},
		DocumentOrder: []int64{10, 11, 12},
		Unassigned:    []int64{12},
	}
	if diff := cmp.Diff(want, lib); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_NullsArePreserved(t *testing.T) {
	path := testdb.Create(t, testdb.Fixture{
		Documents: []testdb.Document{
			{ID: 1, Title: "Undated", Year: nil},
			{ID: 2, Title: nil, Year: 1999},
		},
	})

	lib, err := Load(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if lib.Documents[1].Year != nil {
		t.Errorf("NULL year should stay absent, got %d", *lib.Documents[1].Year)
	}
	if lib.Documents[2].Title != "" {
		t.Errorf("NULL title should become empty, got %q", lib.Documents[2].Title)
	}
	if diff := cmp.Diff([]int64{1, 2}, lib.Unassigned); diff != "" {
		t.Errorf("Unassigned mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_NormalizesNamesAndTitles(t *testing.T) {
	path := testdb.Create(t, testdb.Fixture{
		Folders:   []testdb.Folder{{ID: 1, Name: "Géométrie"}},
		Documents: []testdb.Document{{ID: 5, Title: "Über Flächen", Year: 1901}},
	})

	lib, err := Load(context.Background(), path, normalize.ASCII)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if lib.Folders[0].Name != "Geometrie" {
		t.Errorf("folder name = %q, want %q", lib.Folders[0].Name, "Geometrie")
	}
	if lib.Documents[5].Title != "Uber Flachen" {
		t.Errorf("title = %q, want %q", lib.Documents[5].Title, "Uber Flachen")
	}
}

func TestExtract_AssignmentOrderAndMultipleFolders(t *testing.T) {
	path := testdb.Create(t, testdb.Fixture{
		Folders: []testdb.Folder{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
		Assignments: []testdb.Assignment{
			{DocumentID: 30, FolderID: 1},
			{DocumentID: 10, FolderID: 2},
			{DocumentID: 20, FolderID: 1},
			{DocumentID: 30, FolderID: 2},
		},
		Documents: []testdb.Document{
			{ID: 10, Title: "ten"},
			{ID: 20, Title: "twenty"},
			{ID: 30, Title: "thirty"},
			{ID: 40, Title: "forty"},
		},
	})

	lib, err := Load(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	wantMembers := map[int64][]int64{1: {30, 20}, 2: {10, 30}}
	if diff := cmp.Diff(wantMembers, lib.Members); diff != "" {
		t.Errorf("Members mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{40}, lib.Unassigned); diff != "" {
		t.Errorf("Unassigned mismatch (-want +got):\n%s", diff)
	}

	stats := lib.Stats()
	want := Stats{Folders: 2, Documents: 4, Assignments: 4, Unassigned: 1}
	if stats != want {
		t.Errorf("Stats() = %+v, want %+v", stats, want)
	}
}

func TestExtract_SchemaMismatch(t *testing.T) {
	tests := []struct {
		name  string
		stmts []string
	}{
		{
			name:  "missing Folders table",
			stmts: []string{"CREATE TABLE Documents (id INTEGER PRIMARY KEY, title VARCHAR, year INT)"},
		},
		{
			name: "missing year column",
			stmts: []string{
				"CREATE TABLE Folders (id INTEGER PRIMARY KEY, name VARCHAR)",
				"CREATE TABLE DocumentFolders (documentId INTEGER, folderId INTEGER)",
				"CREATE TABLE Documents (id INTEGER PRIMARY KEY, title VARCHAR)",
			},
		},
		{
			name: "non-numeric year",
			stmts: []string{
				"CREATE TABLE Folders (id INTEGER PRIMARY KEY, name VARCHAR)",
				"CREATE TABLE DocumentFolders (documentId INTEGER, folderId INTEGER)",
				"CREATE TABLE Documents (id INTEGER PRIMARY KEY, title VARCHAR, year VARCHAR)",
				"INSERT INTO Documents VALUES (1, 'Odd', 'circa 1900')",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testdb.Raw(t, tt.stmts...)

			lib, err := Load(context.Background(), path, nil)
			if !errors.Is(err, ErrExtractionFailed) {
				t.Fatalf("Load() error = %v, want ErrExtractionFailed", err)
			}
			if lib != nil {
				t.Error("Load() should not return a partial library")
			}
			var extractErr *ExtractionError
			if !errors.As(err, &extractErr) || extractErr.Err == nil {
				t.Errorf("error should carry the underlying cause: %v", err)
			}
		})
	}
}

func TestOpen_NotADatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.sqlite")
	if err := os.WriteFile(path, []byte("this is not a sqlite file, just text padding it out"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Load(context.Background(), path, nil)
	if !errors.Is(err, ErrExtractionFailed) {
		t.Errorf("Load() error = %v, want ErrExtractionFailed", err)
	}
}

func TestOpen_IsReadOnly(t *testing.T) {
	path := testdb.Create(t, scenarioFixture())

	db, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("DELETE FROM Documents"); err == nil {
		t.Error("writes through an Open handle should fail")
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/data/library.sqlite", want: "file:/data/library.sqlite?mode=ro&_pragma=busy_timeout(5000)"},
		{path: "/data/what?#.sqlite", want: "file:/data/what%3f%23.sqlite?mode=ro&_pragma=busy_timeout(5000)"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DSN(tt.path); got != tt.want {
				t.Errorf("DSN(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
