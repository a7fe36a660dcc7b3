package locate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// touch creates empty files under dir.
func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
}

// fakeHome returns a Locator for goos whose home directory is a temp dir.
func fakeHome(t *testing.T, goos string) (*Locator, string) {
	t.Helper()
	home := t.TempDir()
	return &Locator{GOOS: goos, HomeDir: func() (string, error) { return home, nil }}, home
}

func TestLocate_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "library.sqlite")
	path := filepath.Join(dir, "library.sqlite")

	got, err := New().Locate(path)
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if got != path {
		t.Errorf("Locate() = %q, want %q", got, path)
	}
}

func TestLocate_ExplicitPathErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.sqlite")},
		{name: "directory", path: dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Locate(tt.path)
			if !errors.Is(err, ErrPathNotFound) {
				t.Errorf("Locate(%q) error = %v, want ErrPathNotFound", tt.path, err)
			}
		})
	}
}

func TestLocate_PlatformDirectories(t *testing.T) {
	tests := []struct {
		goos string
		rel  string
	}{
		{goos: "windows", rel: "AppData/Local/Mendeley Ltd/Mendeley Desktop"},
		{goos: "darwin", rel: "Library/Application Support/Mendeley Desktop"},
		{goos: "linux", rel: ".local/share/data/Mendeley Ltd./Mendeley Desktop"},
		{goos: "freebsd", rel: ".local/share/data/Mendeley Ltd./Mendeley Desktop"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			locator, home := fakeHome(t, tt.goos)
			dir := filepath.Join(home, filepath.FromSlash(tt.rel))
			if err := os.MkdirAll(dir, 0o755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			touch(t, dir, "user@example.com@www.mendeley.com.sqlite", "monitor.sqlite")

			got, err := locator.Locate("")
			if err != nil {
				t.Fatalf("Locate() error = %v", err)
			}
			want := filepath.Join(dir, "user@example.com@www.mendeley.com.sqlite")
			if got != want {
				t.Errorf("Locate() = %q, want %q", got, want)
			}
		})
	}
}

func TestLocate_UnsupportedPlatform(t *testing.T) {
	locator, _ := fakeHome(t, "plan9")

	_, err := locator.Locate("")
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("Locate() error = %v, want ErrUnsupportedPlatform", err)
	}
}

func TestLocate_HomeDirError(t *testing.T) {
	locator := &Locator{GOOS: "linux", HomeDir: func() (string, error) { return "", errors.New("no home") }}

	_, err := locator.Locate("")
	if !errors.Is(err, ErrDatabaseNotFound) {
		t.Errorf("Locate() error = %v, want ErrDatabaseNotFound", err)
	}
}

func TestFindInDir(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		dirs    []string
		want    string
		wantErr error
	}{
		{
			name:  "single database",
			files: []string{"library.sqlite", "notes.txt"},
			want:  "library.sqlite",
		},
		{
			name:  "monitor sidecar is ignored",
			files: []string{"monitor.sqlite", "library.sqlite"},
			want:  "library.sqlite",
		},
		{
			name:    "only monitor sidecar",
			files:   []string{"monitor.sqlite"},
			wantErr: ErrDatabaseNotFound,
		},
		{
			name:    "empty directory",
			wantErr: ErrDatabaseNotFound,
		},
		{
			name:  "directories are skipped",
			files: []string{"library.sqlite"},
			dirs:  []string{"backup.sqlite"},
			want:  "library.sqlite",
		},
		{
			name:    "suffix must match exactly",
			files:   []string{"library.sqlite-wal", "library.sqlite.bak"},
			wantErr: ErrDatabaseNotFound,
		},
		{
			name:  "hidden files are skipped",
			files: []string{"me@www.mendeley.com.sqlite", ".backup.sqlite"},
			want:  "me@www.mendeley.com.sqlite",
		},
		{
			name:    "only hidden database",
			files:   []string{".library.sqlite"},
			wantErr: ErrDatabaseNotFound,
		},
		{
			name:    "several databases",
			files:   []string{"b.sqlite", "a.sqlite"},
			wantErr: ErrAmbiguousDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.files...)
			for _, d := range tt.dirs {
				if err := os.Mkdir(filepath.Join(dir, d), 0o755); err != nil {
					t.Fatalf("mkdir: %v", err)
				}
			}

			got, err := FindInDir(dir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FindInDir() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindInDir() error = %v", err)
			}
			if got != filepath.Join(dir, tt.want) {
				t.Errorf("FindInDir() = %q, want %q", got, filepath.Join(dir, tt.want))
			}
		})
	}
}

func TestFindInDir_MissingDirectory(t *testing.T) {
	_, err := FindInDir(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrDatabaseNotFound) {
		t.Errorf("FindInDir() error = %v, want ErrDatabaseNotFound", err)
	}
}

func TestAmbiguousError_ListsEveryCandidate(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "c.sqlite", "a.sqlite", "b.sqlite", "monitor.sqlite")

	_, err := FindInDir(dir)

	var ambiguous *AmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("FindInDir() error = %v, want *AmbiguousError", err)
	}
	want := []string{
		filepath.Join(dir, "a.sqlite"),
		filepath.Join(dir, "b.sqlite"),
		filepath.Join(dir, "c.sqlite"),
	}
	if diff := cmp.Diff(want, ambiguous.Candidates); diff != "" {
		t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
	}
	for _, path := range want {
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error message should list %s: %v", path, err)
		}
	}
	if strings.Contains(err.Error(), "monitor.sqlite") {
		t.Errorf("error message should not list monitor.sqlite: %v", err)
	}
}
