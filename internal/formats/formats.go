// Package formats defines the packager interface and the registry that maps
// format names to their implementations. Format packages register themselves
// on import, mirroring how callers select a target format by name.
package formats

import (
	"sort"
	"time"

	"github.com/openaac/boardkit/core/board"
	"github.com/openaac/boardkit/core/errors"
	"github.com/openaac/boardkit/internal/logging"
	"github.com/openaac/boardkit/internal/validation"
)

// Packager serializes a board into one target format's deliverable. A
// packager is a pure function of its input: it never mutates the board and
// holds no state between calls, so concurrent exports need no coordination.
type Packager interface {
	// Format is the registry name (e.g. "gridset").
	Format() string

	// Extension is the vendor filename extension, with dot.
	Extension() string

	// MIME is the deliverable's content type.
	MIME() string

	// Package produces the deliverable bytes.
	Package(b *board.Board) ([]byte, error)
}

// registry holds all registered packagers.
var registry = make(map[string]Packager)

// Register registers a packager by its format name.
func Register(p Packager) {
	if p != nil && p.Format() != "" {
		registry[p.Format()] = p
	}
}

// Get returns the packager for a format name.
func Get(name string) (Packager, error) {
	p, ok := registry[name]
	if !ok {
		return nil, errors.NewUnsupportedFormat(name)
	}
	return p, nil
}

// List returns all registered packagers sorted by format name.
func List() []Packager {
	result := make([]Packager, 0, len(registry))
	for _, p := range registry {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Format() < result[j].Format()
	})
	return result
}

// Names returns all registered format names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Export packages a board into the named format, with export lifecycle
// logging around the call.
func Export(b *board.Board, format string) ([]byte, error) {
	p, err := Get(format)
	if err != nil {
		return nil, err
	}

	logging.ExportStarted(format, b.Name, len(b.Pages))
	start := time.Now()

	data, err := p.Package(b)
	if err != nil {
		logging.ExportFailed(format, b.Name, err)
		return nil, err
	}

	logging.ExportCompleted(format, b.Name, len(data), time.Since(start))
	return data, nil
}

// Filename returns the download filename for a board in the packager's
// vendor convention: sanitized board name plus extension.
func Filename(b *board.Board, p Packager) string {
	return validation.SanitizeName(b.Name) + p.Extension()
}
