package cache

import "go.trai.ch/remold/internal/core/ports"

var _ ports.ChecksumCache = NoneCache{}

// NoneCache never records anything.
type NoneCache struct{}

// Contains always reports false.
func (NoneCache) Contains(string) (bool, error) { return false, nil }

// CacheSource does nothing.
func (NoneCache) CacheSource(string) error { return nil }

// Close does nothing.
func (NoneCache) Close() error { return nil }
