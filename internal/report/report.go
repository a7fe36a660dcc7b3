package report

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/gorewood/foldermap/internal/library"
)

// UnsortedName titles the section of documents without a folder.
const UnsortedName = "Unsorted"

// Order selects how folder sections are arranged.
type Order string

const (
	// OrderName sorts folders by normalized name, byte-wise and stable.
	OrderName Order = "name"
	// OrderDiscovery keeps the order the database returned folders in.
	OrderDiscovery Order = "discovery"
)

// ParseOrder validates an order name. The empty string means OrderName.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "", OrderName:
		return OrderName, nil
	case OrderDiscovery:
		return OrderDiscovery, nil
	default:
		return "", fmt.Errorf("unknown order %q (want %s or %s)", s, OrderName, OrderDiscovery)
	}
}

// Options controls Build.
type Options struct {
	Order           Order
	IncludeUnsorted bool
}

// ErrDanglingReference matches errors for assignments to unknown documents.
var ErrDanglingReference = errors.New("dangling document reference")

// DanglingReferenceError reports an assignment whose document does not exist.
type DanglingReferenceError struct {
	Folder     string
	DocumentID int64
}

// Error implements the error interface.
func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("folder %q references missing document %d", e.Folder, e.DocumentID)
}

// Is makes errors.Is(err, ErrDanglingReference) match.
func (e *DanglingReferenceError) Is(target error) bool {
	return target == ErrDanglingReference
}

// Line is one document in a section.
type Line struct {
	Title string `json:"title"`
	Year  *int   `json:"year"`
}

// Section is one block of the report.
type Section struct {
	Name      string `json:"name"`
	Unsorted  bool   `json:"unsorted,omitempty"`
	Documents []Line `json:"documents"`
}

// Report is the ordered list of sections.
type Report struct {
	Sections []Section `json:"sections"`
}

// Build arranges the folders of lib into sections. Every assignment of a
// listed folder must resolve to a document.
func Build(lib *library.Library, opts Options) (*Report, error) {
	folders := slices.Clone(lib.Folders)
	if opts.Order != OrderDiscovery {
		slices.SortStableFunc(folders, func(a, b library.Folder) int {
			return cmp.Compare(a.Name, b.Name)
		})
	}

	sections := make([]Section, 0, len(folders)+1)
	for _, folder := range folders {
		lines, err := resolve(lib, folder.Name, lib.Members[folder.ID])
		if err != nil {
			return nil, err
		}
		sections = append(sections, Section{Name: folder.Name, Documents: lines})
	}

	if opts.IncludeUnsorted && len(lib.Unassigned) > 0 {
		lines, err := resolve(lib, UnsortedName, lib.Unassigned)
		if err != nil {
			return nil, err
		}
		sections = append(sections, Section{Name: UnsortedName, Unsorted: true, Documents: lines})
	}

	return &Report{Sections: sections}, nil
}

// resolve looks up each document id in order.
func resolve(lib *library.Library, folder string, ids []int64) ([]Line, error) {
	lines := make([]Line, 0, len(ids))
	for _, id := range ids {
		doc, ok := lib.Documents[id]
		if !ok {
			return nil, &DanglingReferenceError{Folder: folder, DocumentID: id}
		}
		lines = append(lines, Line{Title: doc.Title, Year: doc.Year})
	}
	return lines, nil
}

// DocumentCount returns the number of document lines across all sections.
func (r *Report) DocumentCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Documents)
	}
	return n
}
