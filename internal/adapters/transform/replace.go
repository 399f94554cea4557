package transform

import (
	"bytes"
	"context"

	"go.trai.ch/remold/internal/core/ports"
)

var _ ports.Transformer = (*Replace)(nil)

// Replace substitutes every occurrence of a byte sequence.
type Replace struct {
	id      string
	matcher *Matcher
	old     []byte
	new     []byte
}

// NewReplace creates a Replace transformer.
func NewReplace(id string, matcher *Matcher, old, replacement string) *Replace {
	return &Replace{id: id, matcher: matcher, old: []byte(old), new: []byte(replacement)}
}

// ID returns the transformer identifier.
func (r *Replace) ID() string { return r.id }

// Apply returns the substituted content, or nil when nothing changed.
func (r *Replace) Apply(_ context.Context, entryName string, content []byte) ([]byte, error) {
	if !r.matcher.Match(entryName) || !bytes.Contains(content, r.old) {
		return nil, nil
	}
	out := bytes.ReplaceAll(content, r.old, r.new)
	if bytes.Equal(out, content) {
		return nil, nil
	}
	return out, nil
}
