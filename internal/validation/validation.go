// Package validation sanitizes user-supplied names before they become
// archive entry paths or download filenames. Board names come straight from
// the editing UI and can contain anything; everything the packagers embed in
// a ZIP entry name goes through SanitizeName first.
package validation

import (
	"errors"
	"strings"
	"unicode"
)

// MaxNameLength is the maximum allowed sanitized name length.
const MaxNameLength = 100

// Common validation errors.
var (
	ErrInvalidFilename = errors.New("invalid filename")
	ErrEmptyName       = errors.New("name cannot be empty")
)

// SanitizeName converts a board or page name into a safe archive entry name.
// Path separators and control characters are replaced, whitespace runs
// collapse to single spaces, and overlong names are truncated. An empty or
// fully-stripped name falls back to "board".
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)

	var b strings.Builder
	lastSpace := false
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == ':':
			b.WriteRune('_')
			lastSpace = false
		case unicode.IsControl(r) || r == 0:
			// dropped
		case unicode.IsSpace(r):
			if !lastSpace && b.Len() > 0 {
				b.WriteRune(' ')
			}
			lastSpace = true
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}

	out := strings.TrimSpace(b.String())
	out = strings.TrimPrefix(out, "-")
	if out == "" || out == "." || out == ".." {
		return "board"
	}
	if len(out) > MaxNameLength {
		out = out[:MaxNameLength]
	}
	return out
}

// ValidateFilename checks if a filename is safe to hand to a download
// integration: no path separators, null bytes, control characters, or
// flag-like leading hyphens.
func ValidateFilename(filename string) error {
	if filename == "" {
		return ErrEmptyName
	}
	if filename == "." || filename == ".." {
		return ErrInvalidFilename
	}
	if strings.ContainsAny(filename, "/\\") {
		return ErrInvalidFilename
	}
	if strings.Contains(filename, "\x00") {
		return ErrInvalidFilename
	}
	for _, r := range filename {
		if unicode.IsControl(r) {
			return ErrInvalidFilename
		}
	}
	if strings.HasPrefix(filename, "-") {
		return ErrInvalidFilename
	}
	return nil
}
