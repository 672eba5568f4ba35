package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestExportError(t *testing.T) {
	cause := stderrors.New("zip: write failed")
	err := NewExport("obf", cause)

	if got := err.Error(); got != "export failed for format obf" {
		t.Errorf("Error() = %q", got)
	}
	// The cause is reachable for logging but never part of the message.
	if strings.Contains(err.Error(), "zip") {
		t.Error("ExportError message leaks the low-level cause")
	}
	if !Is(err, ErrExportFailed) {
		t.Error("ExportError does not match ErrExportFailed")
	}
	if !stderrors.Is(err, cause) {
		t.Error("ExportError does not unwrap to its cause")
	}
}

func TestExportErrorWithoutCause(t *testing.T) {
	err := NewExport("gridset", nil)
	if !Is(err, ErrExportFailed) {
		t.Error("causeless ExportError does not match ErrExportFailed")
	}
}

func TestUnsupportedFormatError(t *testing.T) {
	err := NewUnsupportedFormat("pdf")
	if !Is(err, ErrUnsupportedFormat) {
		t.Error("UnsupportedFormatError does not match sentinel")
	}
	if got := err.Error(); got != "unsupported format: pdf" {
		t.Errorf("Error() = %q", got)
	}
}

func TestInvalidBoardError(t *testing.T) {
	problems := []error{
		stderrors.New("board.rows: Rows must be positive"),
		stderrors.New("board.pages[0]: ID is required"),
	}
	err := NewInvalidBoard(problems)
	if !Is(err, ErrInvalidBoard) {
		t.Error("InvalidBoardError does not match sentinel")
	}
	if !strings.Contains(err.Error(), "2 problems") {
		t.Errorf("Error() = %q, want problem count", err.Error())
	}

	single := NewInvalidBoard(problems[:1])
	if !strings.Contains(single.Error(), "Rows must be positive") {
		t.Errorf("Error() = %q, want single problem inline", single.Error())
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) != nil")
	}
	base := stderrors.New("base")
	wrapped := Wrapf(base, "doing %s", "thing")
	if wrapped.Error() != "doing thing: base" {
		t.Errorf("Wrapf() = %q", wrapped.Error())
	}
	if !stderrors.Is(wrapped, base) {
		t.Error("Wrapf loses the chain")
	}
}
