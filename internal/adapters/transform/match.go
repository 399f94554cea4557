// Package transform provides the configurable transformer plugins.
package transform

import (
	"github.com/gobwas/glob"
	"go.trai.ch/remold/internal/core/domain"
	"go.trai.ch/zerr"
)

// Matcher selects the entries a transformer applies to.
// "*" stays within one path segment, "**" crosses segments.
type Matcher struct {
	globs []glob.Glob
}

// NewMatcher compiles patterns. No patterns match every entry.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "pattern", pattern)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether entry is selected.
func (m *Matcher) Match(entry string) bool {
	if len(m.globs) == 0 {
		return true
	}
	for _, g := range m.globs {
		if g.Match(entry) {
			return true
		}
	}
	return false
}
