// Package library extracts the folder/document structure from a Mendeley
// Desktop database into an immutable in-memory model.
package library

import "slices"

// Folder is a named grouping of documents.
type Folder struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Document is a bibliographic record. Year is nil when the source has none.
type Document struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Year  *int   `json:"year"`
}

// Library is the extracted structure. It is built once by Extract and must
// not be modified afterwards.
type Library struct {
	// Folders in the order the database returned them.
	Folders []Folder
	// Members maps a folder ID to its document IDs in assignment-row order.
	Members map[int64][]int64
	// Documents indexes every document by ID.
	Documents map[int64]Document
	// DocumentOrder lists document IDs in the order the database returned them.
	DocumentOrder []int64
	// Unassigned lists documents without any folder, in DocumentOrder.
	Unassigned []int64
}

// Stats summarizes a Library.
type Stats struct {
	Folders     int `json:"folders"`
	Documents   int `json:"documents"`
	Assignments int `json:"assignments"`
	Unassigned  int `json:"unassigned"`
}

// Stats counts folders, documents, assignment rows and unassigned documents.
func (l *Library) Stats() Stats {
	assignments := 0
	for _, ids := range l.Members {
		assignments += len(ids)
	}
	return Stats{
		Folders:     len(l.Folders),
		Documents:   len(l.DocumentOrder),
		Assignments: assignments,
		Unassigned:  len(l.Unassigned),
	}
}

// UnknownFolders returns the folder IDs that have assignment rows but no
// Folders row, in ascending order. Their assignments appear in no section.
func (l *Library) UnknownFolders() []int64 {
	known := make(map[int64]bool, len(l.Folders))
	for _, folder := range l.Folders {
		known[folder.ID] = true
	}
	var unknown []int64
	for id := range l.Members {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	slices.Sort(unknown)
	return unknown
}
