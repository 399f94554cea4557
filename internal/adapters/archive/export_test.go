package archive

import (
	"sort"

	"github.com/klauspost/compress/zip"
)

// Has reports whether name was already written.
func (w *Writer) Has(name string) bool {
	_, ok := w.seen[name]
	return ok
}

// Names returns the entry names of r sorted.
func Names(r *zip.Reader) []string {
	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}
