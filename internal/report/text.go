package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gorewood/foldermap/internal/library"
)

// WriteText writes the report in the plain-text block format. Missing years
// print yearPlaceholder.
func (r *Report) WriteText(w io.Writer, yearPlaceholder string) error {
	var builder strings.Builder
	for i, section := range r.Sections {
		if i > 0 {
			builder.WriteString("\n")
		}
		writeSection(&builder, section, yearPlaceholder)
	}
	if _, err := io.WriteString(w, builder.String()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// writeSection writes the framed header and the document lines.
func writeSection(builder *strings.Builder, section Section, yearPlaceholder string) {
	width := utf8.RuneCountInString(section.Name)
	builder.WriteString(strings.Repeat("=", width) + "\n")
	builder.WriteString(section.Name + "\n")
	builder.WriteString(strings.Repeat("-", width) + "\n")

	for _, line := range section.Documents {
		fmt.Fprintf(builder, "\"%s\", %s\n", line.Title, formatYear(line.Year, yearPlaceholder))
	}
}

// formatYear renders a year or the placeholder when it is absent.
func formatYear(year *int, placeholder string) string {
	if year == nil {
		return placeholder
	}
	return strconv.Itoa(*year)
}

// WriteJSON writes the sections as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.Sections); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// Render builds the report for lib and writes it as text.
func Render(w io.Writer, lib *library.Library, opts Options, yearPlaceholder string) error {
	report, err := Build(lib, opts)
	if err != nil {
		return err
	}
	return report.WriteText(w, yearPlaceholder)
}

// FormatText returns the text rendering of the report.
func (r *Report) FormatText(yearPlaceholder string) string {
	var buf bytes.Buffer
	_ = r.WriteText(&buf, yearPlaceholder) // bytes.Buffer writes do not fail
	return buf.String()
}
