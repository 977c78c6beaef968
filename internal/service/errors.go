package service

import "fmt"

// MalformedPeriodError is returned when a phase period descriptor matches neither
// "após N dias" nor "X a Y dias".
type MalformedPeriodError struct {
	Period string
}

func (e *MalformedPeriodError) Error() string {
	return fmt.Sprintf("malformed period descriptor %q", e.Period)
}

// InsufficientDataError is returned when fewer than two usable protocol rows remain.
type InsufficientDataError struct {
	Stage string
	Rows  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient protocol data after %s: %d rows, need at least %d", e.Stage, e.Rows, minSeriesRows)
}

// TechniqueFormatError is returned for rugby technique entries not shaped as name:1|2|3.
type TechniqueFormatError struct {
	Entry string
}

func (e *TechniqueFormatError) Error() string {
	return fmt.Sprintf("invalid rugby technique entry %q, use name:1|2|3", e.Entry)
}
