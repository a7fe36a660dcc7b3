// Package report turns an extracted library into the folder report.
//
// A report is a list of sections, one per folder, followed by an optional
// "Unsorted" section for documents that belong to no folder:
//
//	report, err := report.Build(lib, report.Options{Order: report.OrderName, IncludeUnsorted: true})
//	err = report.WriteText(&buf, "")
//
// # Text Format
//
// Each section is a header framed by '=' and '-' lines as long as the name,
// followed by one line per document. Sections are separated by a single
// blank line:
//
//	===
//	Art
//	---
//
//	====
//	Math
//	----
//	"Calculus", 2001
//	"Geometry", 1990
//
//	========
//	Unsorted
//	--------
//	"Unrelated", 2020
//
// A document without a year prints the year placeholder (empty by default)
// after the comma. The layout has no version header; it is kept stable so
// consecutive reports diff cleanly.
//
// # JSON Format
//
// WriteJSON emits the same sections as an indented JSON array with years as
// numbers or null.
//
// # Files
//
// WriteFile replaces the destination atomically, so a failed run never leaves
// a truncated report behind.
package report
