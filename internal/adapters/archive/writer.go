package archive

import (
	"io"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/remold/internal/core/ports"
	"go.trai.ch/zerr"
)

// Writer writes a zip archive and rejects duplicate entry names.
// Duplicates under the metadata namespace are dropped and the first entry wins.
type Writer struct {
	zw     *zip.Writer
	logger ports.Logger
	seen   map[string]struct{}
}

// NewWriter creates a Writer on w. The logger may be nil.
func NewWriter(w io.Writer, logger ports.Logger) *Writer {
	return &Writer{
		zw:     zip.NewWriter(w),
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// reserve reports whether name may be written.
func (w *Writer) reserve(name string) (bool, error) {
	if _, dup := w.seen[name]; !dup {
		w.seen[name] = struct{}{}
		return true, nil
	}
	if strings.HasPrefix(name, domain.MetadataNamespace) {
		if w.logger != nil {
			w.logger.Warn("duplicated entry ignored: " + name)
		}
		return false, nil
	}
	return false, zerr.With(zerr.Wrap(domain.ErrDuplicateEntry, domain.ErrExportFailed.Error()), "entry", name)
}

// Copy copies f verbatim, without recompressing it.
func (w *Writer) Copy(f *zip.File) error {
	ok, err := w.reserve(f.Name)
	if err != nil || !ok {
		return err
	}
	if err := w.zw.Copy(f); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "entry", f.Name)
	}
	return nil
}

// WriteFile writes content as a deflated entry.
func (w *Writer) WriteFile(name string, content []byte) error {
	ok, err := w.reserve(name)
	if err != nil || !ok {
		return err
	}

	fh := &zip.FileHeader{Name: name, Method: zip.Deflate}
	fh.Modified = time.Now()
	dst, err := w.zw.CreateHeader(fh)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "entry", name)
	}
	if _, err := dst.Write(content); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "entry", name)
	}
	return nil
}

// Close finishes the archive.
func (w *Writer) Close() error {
	if err := w.zw.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrExportFailed.Error())
	}
	return nil
}
