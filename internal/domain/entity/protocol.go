package entity

import "time"

// RawRow is one spreadsheet row as read, before coercion. Cells are nil when absent.
type RawRow struct {
	Day   any
	Value any
}

// Protocol is an injury-specific recovery curve loaded from a spreadsheet.
type Protocol struct {
	Name    string
	Path    string
	Columns []string
	Rows    []RawRow
}

type SeriesPoint struct {
	Date  time.Time
	Value float64
}

// ProtocolIssue explains why a spreadsheet in the protocols directory was skipped.
type ProtocolIssue struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}
