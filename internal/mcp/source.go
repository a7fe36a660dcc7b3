package mcp

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/gorewood/foldermap/internal/library"
	"github.com/gorewood/foldermap/internal/locate"
	"github.com/gorewood/foldermap/internal/normalize"
	"github.com/gorewood/foldermap/internal/report"
)

// cacheTTL bounds how stale a served library can be.
const cacheTTL = 30 * time.Second

// LoadFunc extracts the library stored at path.
type LoadFunc func(ctx context.Context, path string) (*library.Library, error)

// Source resolves and loads libraries for tool calls. Extracted libraries
// are cached per database path.
type Source struct {
	locator         *locate.Locator
	database        string
	load            LoadFunc
	options         report.Options
	yearPlaceholder string
	cache           *gocache.Cache
}

// SourceConfig configures NewSource.
type SourceConfig struct {
	Locator         *locate.Locator
	Database        string
	Normalize       normalize.Func
	Options         report.Options
	YearPlaceholder string
	// Load overrides library.Load, for tests.
	Load LoadFunc
}

// NewSource creates a Source. Database is the default when a tool call
// names no database; if both are empty the locator searches.
func NewSource(cfg SourceConfig) *Source {
	load := cfg.Load
	if load == nil {
		norm := cfg.Normalize
		load = func(ctx context.Context, path string) (*library.Library, error) {
			return library.Load(ctx, path, norm)
		}
	}
	locator := cfg.Locator
	if locator == nil {
		locator = locate.New()
	}
	return &Source{
		locator:         locator,
		database:        cfg.Database,
		load:            load,
		options:         cfg.Options,
		yearPlaceholder: cfg.YearPlaceholder,
		cache:           gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// resolve returns the database path for an optional per-call override.
func (s *Source) resolve(database string) (string, error) {
	if database == "" {
		database = s.database
	}
	return s.locator.Locate(database)
}

// cachedLibrary returns the cached library for path, loading it on a miss.
func (s *Source) cachedLibrary(ctx context.Context, path string) (*library.Library, error) {
	if cached, ok := s.cache.Get(path); ok {
		if lib, ok := cached.(*library.Library); ok {
			return lib, nil
		}
	}

	lib, err := s.load(ctx, path)
	if err != nil {
		return nil, err
	}
	s.cache.Set(path, lib, gocache.DefaultExpiration)
	return lib, nil
}

// buildReport resolves, loads and builds the report for an optional database.
func (s *Source) buildReport(ctx context.Context, database string) (string, *library.Library, *report.Report, error) {
	path, err := s.resolve(database)
	if err != nil {
		return "", nil, nil, err
	}
	lib, err := s.cachedLibrary(ctx, path)
	if err != nil {
		return "", nil, nil, err
	}
	rep, err := report.Build(lib, s.options)
	if err != nil {
		return "", nil, nil, err
	}
	return path, lib, rep, nil
}
