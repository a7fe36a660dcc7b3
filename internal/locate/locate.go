// Package locate finds the Mendeley Desktop SQLite database to read.
package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gobwas/glob"
)

// Pattern matches candidate database file names.
const Pattern = "*.sqlite"

// monitorFile is a sidecar database Mendeley keeps next to the library.
const monitorFile = "monitor.sqlite"

var (
	// ErrPathNotFound is returned when an explicit database path is unusable.
	ErrPathNotFound = errors.New("database path not found")
	// ErrDatabaseNotFound is returned when discovery finds no candidate.
	ErrDatabaseNotFound = errors.New("no database found")
	// ErrAmbiguousDatabase is returned when discovery finds several candidates.
	ErrAmbiguousDatabase = errors.New("multiple databases found")
	// ErrUnsupportedPlatform is returned for platforms without a default location.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

var sqliteGlob = glob.MustCompile(Pattern)

// AmbiguousError lists every candidate found in the search directory.
type AmbiguousError struct {
	Dir        string
	Candidates []string
}

// Error implements the error interface.
func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("multiple sqlite files found in %s: %s", e.Dir, strings.Join(e.Candidates, ", "))
}

// Is makes errors.Is(err, ErrAmbiguousDatabase) match.
func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguousDatabase
}

// Locator resolves the database path for the current platform.
type Locator struct {
	// GOOS selects the default search directory.
	GOOS string
	// HomeDir returns the user's home directory.
	HomeDir func() (string, error)
}

// New creates a Locator for the running platform.
func New() *Locator {
	return &Locator{GOOS: runtime.GOOS, HomeDir: os.UserHomeDir}
}

// Locate returns the database path to read. A non-empty explicit path is
// checked and returned as is; otherwise the platform directory is searched.
func (l *Locator) Locate(explicit string) (string, error) {
	if explicit != "" {
		if err := checkReadable(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	dir, err := l.SearchDir()
	if err != nil {
		return "", err
	}
	return FindInDir(dir)
}

// SearchDir returns the platform default directory Mendeley Desktop uses.
func (l *Locator) SearchDir() (string, error) {
	rel, ok := platformDirs[l.GOOS]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, l.GOOS)
	}

	home, err := l.HomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: resolving home directory: %w", ErrDatabaseNotFound, err)
	}
	return filepath.Join(home, filepath.FromSlash(rel)), nil
}

// platformDirs maps GOOS to the data directory relative to the home directory.
var platformDirs = map[string]string{
	"windows":   "AppData/Local/Mendeley Ltd/Mendeley Desktop",
	"darwin":    "Library/Application Support/Mendeley Desktop",
	"linux":     unixDir,
	"freebsd":   unixDir,
	"openbsd":   unixDir,
	"netbsd":    unixDir,
	"dragonfly": unixDir,
	"solaris":   unixDir,
	"illumos":   unixDir,
	"aix":       unixDir,
}

const unixDir = ".local/share/data/Mendeley Ltd./Mendeley Desktop"

// FindInDir returns the single *.sqlite file in dir, ignoring monitor.sqlite
// and hidden files.
// The search is not recursive. A missing directory counts as no match.
func FindInDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w in %s", ErrDatabaseNotFound, dir)
		}
		return "", fmt.Errorf("%w: reading %s: %w", ErrDatabaseNotFound, dir, err)
	}

	// os.ReadDir returns entries sorted by name
	var candidates []string
	for _, entry := range entries {
		name := entry.Name()
		// hidden files are not candidates, as with a shell glob
		if entry.IsDir() || strings.HasPrefix(name, ".") || name == monitorFile || !sqliteGlob.Match(name) {
			continue
		}
		candidates = append(candidates, filepath.Join(dir, name))
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w in %s", ErrDatabaseNotFound, dir)
	case 1:
		return candidates[0], nil
	default:
		return "", &AmbiguousError{Dir: dir, Candidates: candidates}
	}
}

// checkReadable verifies that path is a regular file that can be opened.
func checkReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPathNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrPathNotFound, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPathNotFound, path, err)
	}
	return file.Close()
}
