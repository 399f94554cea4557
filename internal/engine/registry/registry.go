// Package registry tracks the artifacts produced while one source is transformed.
package registry

import "go.trai.ch/remold/internal/core/domain"

// Registry maps normalized entry names to their latest artifact.
// It is owned by a single orchestrator and is not safe for concurrent use.
type Registry struct {
	artifacts map[string]domain.Artifact
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{artifacts: make(map[string]domain.Artifact)}
}

// Put records content written by transformerID for entry.
// The first write creates the artifact; later writes replace its content and
// add transformerID to its set.
func (r *Registry) Put(entry, transformerID string, content []byte) {
	a, ok := r.artifacts[entry]
	if !ok {
		r.artifacts[entry] = domain.NewArtifact(transformerID, content)
		return
	}
	a.Content = content
	if transformerID != "" {
		a.Transformers[transformerID] = struct{}{}
	}
	r.artifacts[entry] = a
}

// PutUnattributed merges an injected entry that no transformer wrote.
// An existing artifact keeps its transformer set.
func (r *Registry) PutUnattributed(entry string, content []byte) {
	r.Put(entry, "", content)
}

// Lookup returns the artifact recorded for entry.
func (r *Registry) Lookup(entry string) (domain.Artifact, bool) {
	a, ok := r.artifacts[entry]
	return a, ok
}

// GetAll returns a snapshot of every artifact.
func (r *Registry) GetAll() map[string]domain.Artifact {
	out := make(map[string]domain.Artifact, len(r.artifacts))
	for name, a := range r.artifacts {
		out[name] = a.Clone()
	}
	return out
}

// Len returns the number of recorded artifacts.
func (r *Registry) Len() int {
	return len(r.artifacts)
}

// Clear forgets every artifact.
func (r *Registry) Clear() {
	clear(r.artifacts)
}
