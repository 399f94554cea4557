package scheduler

// SetNumCPU replaces the CPU count probe and returns a function restoring it.
func SetNumCPU(n int) func() {
	prev := numCPU
	numCPU = func() int { return n }
	return func() { numCPU = prev }
}
