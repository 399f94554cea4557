package domain

import (
	"path"
	"strings"
)

// SourceKind identifies the container format of a SourceUnit.
type SourceKind int

const (
	// KindArchive is a zip-compatible archive.
	KindArchive SourceKind = iota
	// KindDirectory is a plain directory tree.
	KindDirectory
	// KindBaseImage is the base runtime image archive.
	KindBaseImage
)

// String returns the human-readable name of the kind.
func (k SourceKind) String() string {
	switch k {
	case KindArchive:
		return "archive"
	case KindDirectory:
		return "directory"
	case KindBaseImage:
		return "base-image"
	default:
		return "unknown"
	}
}

// SigningStatus reports whether an archive carries a signature and whether it verified.
type SigningStatus int

const (
	// Unsigned means no signature files were found.
	Unsigned SigningStatus = iota
	// SignedValid means a signature was found and its manifest digest verified.
	SignedValid
	// SignedInvalid means signature files were found but did not verify.
	SignedInvalid
)

// String returns the human-readable name of the status.
func (s SigningStatus) String() string {
	switch s {
	case Unsigned:
		return "unsigned"
	case SignedValid:
		return "signed"
	case SignedInvalid:
		return "invalidly-signed"
	default:
		return "unknown"
	}
}

// IsSigned reports whether any signature material was discovered.
func (s SigningStatus) IsSigned() bool {
	return s != Unsigned
}

// ExportKind selects the packaging variant used for a source.
type ExportKind int

const (
	// ExportDirectory writes transformed entries into an output directory.
	ExportDirectory ExportKind = iota
	// ExportArchive rewrites the original archive with transformed entries.
	ExportArchive
	// ExportPatchedBaseImage rewrites the base image with bootstrap entries and transformed entries.
	ExportPatchedBaseImage
)

// String returns the human-readable name of the export kind.
func (k ExportKind) String() string {
	switch k {
	case ExportDirectory:
		return "directory"
	case ExportArchive:
		return "archive"
	case ExportPatchedBaseImage:
		return "patched-base-image"
	default:
		return "unknown"
	}
}

// SourceUnit is one loaded input package.
// It is produced by a SourceLoader and is read-only afterwards.
type SourceUnit struct {
	// Path is the resolved filesystem path of the source.
	Path string
	// Kind is the container format.
	Kind SourceKind
	// Entries maps entry names, as stored in the container, to their raw content.
	Entries map[string][]byte
	// Order lists entry names in the order they appear in the container.
	Order []string
	// Signing is the verification result of the container signature.
	Signing SigningStatus
	// Export selects the packaging strategy for this source.
	Export ExportKind
}

// EntryNames returns entry names in container order.
// Sources built without an explicit order fall back to sorted names.
func (s *SourceUnit) EntryNames() []string {
	if len(s.Order) == len(s.Entries) {
		return s.Order
	}
	names := make([]string, 0, len(s.Entries))
	for name := range s.Entries {
		names = append(names, name)
	}
	sortStrings(names)
	return names
}

// NormalizeEntryName canonicalizes an entry name before it is compared or stored.
// Separators become forward slashes, leading "./" and "/" are removed and base image
// entries lose their "classes/" origin prefix.
func NormalizeEntryName(kind SourceKind, name string) string {
	n := strings.ReplaceAll(name, "\\", "/")
	for {
		switch {
		case strings.HasPrefix(n, "./"):
			n = n[2:]
		case strings.HasPrefix(n, "/"):
			n = n[1:]
		default:
			if kind == KindBaseImage {
				n = strings.TrimPrefix(n, BaseImageClassesPrefix)
			}
			if n == "" {
				return n
			}
			return path.Clean(n)
		}
	}
}
