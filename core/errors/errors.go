// Package errors provides standardized error types and helpers for the
// boardkit codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrInvalidBoard indicates a board failed validation
	ErrInvalidBoard = errors.New("invalid board")
	// ErrUnsupportedFormat indicates an unknown target format
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrExportFailed indicates a packager could not produce its deliverable
	ErrExportFailed = errors.New("export failed")
)

// ExportError is the single opaque error surface a packager exposes when
// archive assembly fails. The low-level cause is kept for logging via Unwrap
// but deliberately left out of the message, so the public error stays
// format-library-agnostic.
type ExportError struct {
	Format string // Target format name (e.g., "gridset", "obf")
	Err    error  // Underlying cause, logged but not shown
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed for format %s", e.Format)
}

func (e *ExportError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrExportFailed
}

// Is reports ErrExportFailed for any ExportError so callers can match the
// sentinel without knowing the format.
func (e *ExportError) Is(target error) bool {
	return target == ErrExportFailed
}

// UnsupportedFormatError identifies a format name no packager claims.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s", e.Format)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// InvalidBoardError carries the individual validation failures of a board.
type InvalidBoardError struct {
	Problems []error
}

func (e *InvalidBoardError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("invalid board: %v", e.Problems[0])
	}
	return fmt.Sprintf("invalid board: %d problems, first: %v", len(e.Problems), e.Problems[0])
}

func (e *InvalidBoardError) Unwrap() error {
	return ErrInvalidBoard
}

// NewExport creates an ExportError
func NewExport(format string, err error) *ExportError {
	return &ExportError{Format: format, Err: err}
}

// NewUnsupportedFormat creates an UnsupportedFormatError
func NewUnsupportedFormat(format string) *UnsupportedFormatError {
	return &UnsupportedFormatError{Format: format}
}

// NewInvalidBoard creates an InvalidBoardError
func NewInvalidBoard(problems []error) *InvalidBoardError {
	return &InvalidBoardError{Problems: problems}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
