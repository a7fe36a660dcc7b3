package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stdout is the output path that selects standard output.
const Stdout = "-"

// reportPerm is the mode of a finished report file.
const reportPerm = 0o644

// WriteFile replaces path with data using write-to-temp-then-rename.
// The temp file is created in the same directory as path, so a failure
// leaves any previous report untouched and no partial file behind.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".foldermap-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Chmod(reportPerm); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// WriteTo writes data to path, or to stdout when path is Stdout.
func WriteTo(path string, data []byte, stdout io.Writer) error {
	if path == Stdout {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}
	return WriteFile(path, data)
}
