package archive

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // SHA-1 manifests are still produced by older signers
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"hash"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.trai.ch/remold/internal/core/domain"
)

const manifestName = "META-INF/MANIFEST.MF"

var blockExtensions = []string{".RSA", ".DSA", ".EC"}

var digests = map[string]func() hash.Hash{
	"SHA-256": sha256.New,
	"SHA-384": sha512.New384,
	"SHA-512": sha512.New,
	"SHA-1":   sha1.New,
	"SHA1":    sha1.New,
}

// DetectSigning classifies the signature material of an archive.
//
// An archive is signed when it holds a META-INF/*.SF file. It is validly signed
// when every signature file has a block file and its manifest digest matches
// META-INF/MANIFEST.MF.
func DetectSigning(r *zip.Reader) domain.SigningStatus {
	files := make(map[string]*zip.File, len(r.File))
	var signatures []string
	for _, f := range r.File {
		upper := strings.ToUpper(f.Name)
		files[upper] = f
		if path.Dir(upper) == "META-INF" && path.Ext(upper) == ".SF" {
			signatures = append(signatures, upper)
		}
	}
	if len(signatures) == 0 {
		return domain.Unsigned
	}

	mf, ok := files[manifestName]
	if !ok {
		return domain.SignedInvalid
	}
	manifest, err := ReadFile(mf)
	if err != nil {
		return domain.SignedInvalid
	}

	for _, sf := range signatures {
		if !hasBlock(files, strings.TrimSuffix(sf, ".SF")) {
			return domain.SignedInvalid
		}
		content, err := ReadFile(files[sf])
		if err != nil || !manifestDigestMatches(content, manifest) {
			return domain.SignedInvalid
		}
	}
	return domain.SignedValid
}

func hasBlock(files map[string]*zip.File, base string) bool {
	for _, ext := range blockExtensions {
		if _, ok := files[base+ext]; ok {
			return true
		}
	}
	return false
}

// manifestDigestMatches checks every *-Digest-Manifest attribute of the main
// section of a signature file. At least one known digest must be present.
func manifestDigestMatches(signature, manifest []byte) bool {
	checked := 0
	for name, value := range mainAttributes(signature) {
		algo, ok := strings.CutSuffix(name, "-DIGEST-MANIFEST")
		if !ok {
			continue
		}
		newHash, ok := digests[algo]
		if !ok {
			continue
		}
		h := newHash()
		_, _ = h.Write(manifest)
		if base64.StdEncoding.EncodeToString(h.Sum(nil)) != value {
			return false
		}
		checked++
	}
	return checked > 0
}

// mainAttributes parses the first section of a manifest-style file.
// Names are upper-cased. Lines starting with a space continue the previous value.
func mainAttributes(content []byte) map[string]string {
	attrs := make(map[string]string)
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	var last string
	for _, line := range strings.Split(string(content), "\n") {
		if line == "" {
			break
		}
		if strings.HasPrefix(line, " ") {
			if last != "" {
				attrs[last] += line[1:]
			}
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		last = strings.ToUpper(strings.TrimSpace(name))
		attrs[last] = strings.TrimSpace(value)
	}
	return attrs
}
