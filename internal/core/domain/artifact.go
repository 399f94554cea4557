package domain

import "sort"

// Artifact is the latest content of one output entry together with the
// identifiers of every transformer that has written it.
type Artifact struct {
	Content      []byte
	Transformers map[string]struct{}
}

// NewArtifact creates an artifact. An empty transformerID yields an unattributed artifact.
func NewArtifact(transformerID string, content []byte) Artifact {
	a := Artifact{
		Content:      content,
		Transformers: make(map[string]struct{}, 1),
	}
	if transformerID != "" {
		a.Transformers[transformerID] = struct{}{}
	}
	return a
}

// TransformerIDs returns the contributing transformer identifiers in sorted order.
func (a Artifact) TransformerIDs() []string {
	ids := make([]string, 0, len(a.Transformers))
	for id := range a.Transformers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Attributed reports whether at least one transformer wrote this artifact.
func (a Artifact) Attributed() bool {
	return len(a.Transformers) > 0
}

// Clone returns a deep copy of the artifact.
func (a Artifact) Clone() Artifact {
	content := make([]byte, len(a.Content))
	copy(content, a.Content)
	ids := make(map[string]struct{}, len(a.Transformers))
	for id := range a.Transformers {
		ids[id] = struct{}{}
	}
	return Artifact{Content: content, Transformers: ids}
}

func sortStrings(s []string) {
	sort.Strings(s)
}
