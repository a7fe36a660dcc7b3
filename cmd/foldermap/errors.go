package main

import (
	"errors"

	"github.com/gorewood/foldermap/internal/library"
	"github.com/gorewood/foldermap/internal/locate"
	"github.com/gorewood/foldermap/internal/output"
	"github.com/gorewood/foldermap/internal/report"
)

// classify maps a domain error onto an exit-coded error.
// Errors that already carry an exit code pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	switch {
	case errors.Is(err, report.ErrDanglingReference):
		return output.NewDataErrorWithCause(err.Error(), err)
	case errors.Is(err, library.ErrExtractionFailed):
		return output.NewSystemErrorWithCause(err.Error(), err)
	case errors.Is(err, locate.ErrPathNotFound),
		errors.Is(err, locate.ErrDatabaseNotFound),
		errors.Is(err, locate.ErrAmbiguousDatabase),
		errors.Is(err, locate.ErrUnsupportedPlatform):
		return output.NewUserErrorWithCause(err.Error(), err)
	default:
		// cobra flag and argument errors land here
		return output.NewUserErrorWithCause(err.Error(), err)
	}
}
