// Package archive assembles packager output into final deliverables: ZIP
// containers for the archive-based board formats and tar.xz bundles for
// multi-format backup hand-off.
package archive

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
)

// deflateLevel is the fixed compression level for every ZIP deliverable.
const deflateLevel = flate.BestCompression

// ZipBuilder accumulates an in-memory ZIP archive. Errors are sticky: the
// first failure is reported by Bytes and later writes are no-ops, so
// packagers can chain AddFile calls without checking each one.
type ZipBuilder struct {
	buf bytes.Buffer
	zw  *zip.Writer
	err error
}

// NewZipBuilder creates an empty archive builder.
func NewZipBuilder() *ZipBuilder {
	b := &ZipBuilder{}
	b.zw = zip.NewWriter(&b.buf)
	b.zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, deflateLevel)
	})
	return b
}

// AddFile adds a deflate-compressed entry at the given archive path.
func (b *ZipBuilder) AddFile(name string, data []byte) {
	if b.err != nil {
		return
	}
	w, err := b.zw.Create(name)
	if err != nil {
		b.err = fmt.Errorf("creating %s: %w", name, err)
		return
	}
	if _, err := w.Write(data); err != nil {
		b.err = fmt.Errorf("writing %s: %w", name, err)
	}
}

// AddStored adds an uncompressed entry, for payloads that are already
// compressed (thumbnails, media).
func (b *ZipBuilder) AddStored(name string, data []byte) {
	if b.err != nil {
		return
	}
	w, err := b.zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Store,
	})
	if err != nil {
		b.err = fmt.Errorf("creating %s: %w", name, err)
		return
	}
	if _, err := w.Write(data); err != nil {
		b.err = fmt.Errorf("writing %s: %w", name, err)
	}
}

// Bytes seals the archive and returns its contents, or the first error
// encountered while building.
func (b *ZipBuilder) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return b.buf.Bytes(), nil
}
