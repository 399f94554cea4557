// Package partition splits a run configuration into balanced worker shares.
package partition

import "go.trai.ch/remold/internal/core/domain"

// PartitionSources splits paths into at most n chunks while preserving order.
// With no more paths than n, every path gets its own chunk. Otherwise exactly n
// chunks are returned and the first len(paths)%n of them hold one extra path.
func PartitionSources(paths []string, n int) [][]string {
	if len(paths) == 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}

	if len(paths) <= n {
		chunks := make([][]string, len(paths))
		for i, p := range paths {
			chunks[i] = []string{p}
		}
		return chunks
	}

	base := len(paths) / n
	extra := len(paths) % n

	chunks := make([][]string, 0, n)
	start := 0
	for i := range n {
		size := base
		if i < extra {
			size++
		}
		chunks = append(chunks, paths[start:start+size:start+size])
		start += size
	}
	return chunks
}

// PartitionConfig splits every library of cfg independently into at most n
// shares and assembles one configuration per share.
//
// A library appears in partition i only if it contributed paths to it. Scalar
// fields are copied to every partition. The base image is applied once and is
// only carried by the last partition.
func PartitionConfig(cfg *domain.Config, n int) []*domain.Config {
	if cfg == nil {
		return nil
	}

	names := cfg.LibraryNames()
	chunksByLibrary := make(map[string][][]string, len(names))
	count := 0
	for _, name := range names {
		chunks := PartitionSources(cfg.Libraries[name], n)
		chunksByLibrary[name] = chunks
		count = max(count, len(chunks))
	}

	// A run with only a base image still needs one partition to carry it.
	if count == 0 && cfg.BaseImage != "" {
		count = 1
	}

	partitions := make([]*domain.Config, count)
	for i := range count {
		part := cfg.CloneScalars()
		part.BaseImage = ""
		for _, name := range names {
			chunks := chunksByLibrary[name]
			if i < len(chunks) && len(chunks[i]) > 0 {
				part.Libraries[name] = append([]string(nil), chunks[i]...)
			}
		}
		partitions[i] = part
	}

	if count > 0 {
		partitions[count-1].BaseImage = cfg.BaseImage
	}
	return partitions
}
