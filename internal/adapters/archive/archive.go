// Package archive reads and writes zip based sources.
//
// Entries compressed with Zstandard (method 93) are supported in both directions.
package archive

import (
	"io"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/zerr"
)

func init() {
	zip.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
	zip.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
}

// Contents is the decoded content of an archive.
type Contents struct {
	// Order lists file entries in archive order.
	Order   []string
	Entries map[string][]byte
	Signing domain.SigningStatus
}

// Read decodes every file entry of the archive at path.
// Directory entries are not part of the result.
func Read(path string) (*Contents, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceLoadFailed.Error()), "path", path)
	}
	defer rc.Close() //nolint:errcheck // Read-only handle

	out := &Contents{
		Entries: make(map[string][]byte, len(rc.File)),
		Signing: DetectSigning(&rc.Reader),
	}
	for _, f := range rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		content, err := ReadFile(f)
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
		if _, dup := out.Entries[f.Name]; !dup {
			out.Order = append(out.Order, f.Name)
		}
		out.Entries[f.Name] = content
	}
	return out, nil
}

// ReadFile returns the decompressed content of one entry.
func ReadFile(f *zip.File) ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceLoadFailed.Error()), "entry", f.Name)
	}
	defer r.Close() //nolint:errcheck // Read-only handle

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceLoadFailed.Error()), "entry", f.Name)
	}
	return content, nil
}
