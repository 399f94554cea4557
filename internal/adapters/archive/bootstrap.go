package archive

import (
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ExtractBootstrapDependencies returns the entries of r named namespace or
// nested below it, keyed by name.
func ExtractBootstrapDependencies(r *zip.Reader, namespace string) map[string]*zip.File {
	namespace = strings.Trim(namespace, "/")
	out := make(map[string]*zip.File)
	if namespace == "" {
		return out
	}

	for _, f := range r.File {
		name := strings.TrimSuffix(f.Name, "/")
		if name == namespace || strings.HasPrefix(name, namespace+"/") {
			out[f.Name] = f
		}
	}
	return out
}

// SortedKeys returns the names of files sorted.
func SortedKeys(files map[string]*zip.File) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
