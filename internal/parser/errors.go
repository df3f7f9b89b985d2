package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrWorkbookNotFound the workbook path does not exist
	ErrWorkbookNotFound = errors.New("workbook not found")
	// ErrSheetNotFound the workbook has no sheet with the requested name
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrSheetEmpty the sheet has no data rows
	ErrSheetEmpty = errors.New("sheet has no data rows")
	// ErrColumnMissing an expected column is absent from the header row
	ErrColumnMissing = errors.New("column missing")
)

// ColumnMissingError an expected column that the header row does not contain.
// Non-fatal for every column except the release sheet's CLUSTER.
type ColumnMissingError struct {
	Sheet  string
	Column string
}

// Error implements the error interface
func (e *ColumnMissingError) Error() string {
	return fmt.Sprintf("column %q not found in sheet %q", e.Column, e.Sheet)
}

// Is implements errors.Is support
func (e *ColumnMissingError) Is(target error) bool {
	return target == ErrColumnMissing
}
