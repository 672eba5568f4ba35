package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"time"

	"github.com/ulikunitz/xz"
)

// BundleEntry is one deliverable inside an export bundle.
type BundleEntry struct {
	// Name is the filename inside the bundle, already carrying its
	// vendor extension (e.g. "Snack Time.gridset").
	Name string
	// Data is the deliverable bytes.
	Data []byte
}

// WriteBundle writes entries as a tar.xz stream. Bundles carry one board
// exported to several formats at once, for backup-integration hand-off.
func WriteBundle(w io.Writer, entries []BundleEntry) error {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating xz stream: %w", err)
	}

	tw := tar.NewWriter(xw)
	now := time.Now()

	for _, entry := range entries {
		hdr := &tar.Header{
			Name:    entry.Name,
			Mode:    0644,
			Size:    int64(len(entry.Data)),
			ModTime: now,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("writing header for %s: %w", entry.Name, err)
		}
		if _, err := tw.Write(entry.Data); err != nil {
			return fmt.Errorf("writing %s: %w", entry.Name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("closing tar stream: %w", err)
	}
	if err := xw.Close(); err != nil {
		return fmt.Errorf("closing xz stream: %w", err)
	}
	return nil
}
