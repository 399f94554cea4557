package domain

import "math"

// Counter identifies one aggregated summary value.
type Counter int

const (
	// CounterProcessed counts every source outcome.
	CounterProcessed Counter = iota
	// CounterTransformed counts sources that produced artifacts without failures.
	CounterTransformed
	// CounterSignedSeen counts sources carrying signature material.
	CounterSignedSeen
	// CounterSignedTransformed counts signed sources that produced artifacts.
	CounterSignedTransformed
	// CounterUnresolvable counts sources with entries that failed recoverably.
	CounterUnresolvable
)

// Counters lists every counter in rendering order.
var Counters = []Counter{
	CounterProcessed,
	CounterTransformed,
	CounterSignedSeen,
	CounterSignedTransformed,
	CounterUnresolvable,
}

// Summary holds non-negative progress counters.
type Summary struct {
	Processed         int
	Transformed       int
	SignedSeen        int
	SignedTransformed int
	Unresolvable      int
}

// Get returns the value of a counter.
func (s *Summary) Get(c Counter) int {
	switch c {
	case CounterProcessed:
		return s.Processed
	case CounterTransformed:
		return s.Transformed
	case CounterSignedSeen:
		return s.SignedSeen
	case CounterSignedTransformed:
		return s.SignedTransformed
	case CounterUnresolvable:
		return s.Unresolvable
	default:
		return 0
	}
}

// Add increments a counter. The result saturates at math.MaxInt and never drops below zero.
func (s *Summary) Add(c Counter, v int) {
	switch c {
	case CounterProcessed:
		s.Processed = saturatingAdd(s.Processed, v)
	case CounterTransformed:
		s.Transformed = saturatingAdd(s.Transformed, v)
	case CounterSignedSeen:
		s.SignedSeen = saturatingAdd(s.SignedSeen, v)
	case CounterSignedTransformed:
		s.SignedTransformed = saturatingAdd(s.SignedTransformed, v)
	case CounterUnresolvable:
		s.Unresolvable = saturatingAdd(s.Unresolvable, v)
	}
}

func saturatingAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case a+b < 0:
		return 0
	default:
		return a + b
	}
}

// Merge adds every counter of other into s.
func (s *Summary) Merge(other Summary) {
	for _, c := range Counters {
		s.Add(c, other.Get(c))
	}
}

// SummarizeOutcomes folds outcomes into counters.
func SummarizeOutcomes(outcomes []WorkOutcome) Summary {
	var s Summary
	for _, o := range outcomes {
		s.Processed++
		if o.Signing().IsSigned() {
			s.SignedSeen++
		}
		if o.Status() == StatusNoOp {
			continue
		}
		if o.Signing().IsSigned() {
			s.SignedTransformed++
		}
		if o.HasFailed() {
			s.Unresolvable++
		} else {
			s.Transformed++
		}
	}
	return s
}
