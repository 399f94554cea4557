package domain

// OutcomeStatus classifies the result of processing one source.
type OutcomeStatus int

const (
	// StatusNoOp means no transformer produced any artifact.
	StatusNoOp OutcomeStatus = iota
	// StatusWarningOccurred means at least one entry failed recoverably.
	StatusWarningOccurred
	// StatusCompleted means artifacts were produced without warnings.
	StatusCompleted
)

// String returns the human-readable name of the status.
func (s OutcomeStatus) String() string {
	switch s {
	case StatusNoOp:
		return "no-op"
	case StatusWarningOccurred:
		return "warning"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// SkipReason explains why a source was not loaded.
type SkipReason int

const (
	// NotSkipped means the source went through the orchestrator.
	NotSkipped SkipReason = iota
	// SkippedCached means the checksum cache already holds the source.
	SkippedCached
	// SkippedSigned means the signed-source handling strategy rejected the source.
	SkippedSigned
)

// WorkOutcome is the immutable result of processing one source.
type WorkOutcome struct {
	status       OutcomeStatus
	failed       []string
	artifactPath string
	sourcePath   string
	signing      SigningStatus
	skipped      SkipReason
}

// NewWorkOutcome builds an outcome. The failed slice is copied.
func NewWorkOutcome(
	sourcePath string,
	status OutcomeStatus,
	failed []string,
	artifactPath string,
	signing SigningStatus,
) WorkOutcome {
	var f []string
	if len(failed) > 0 {
		f = make([]string, len(failed))
		copy(f, failed)
	}
	return WorkOutcome{
		status:       status,
		failed:       f,
		artifactPath: artifactPath,
		sourcePath:   sourcePath,
		signing:      signing,
	}
}

// NewSkippedOutcome builds a NoOp outcome for a source that was never loaded or transformed.
func NewSkippedOutcome(sourcePath string, signing SigningStatus, reason SkipReason) WorkOutcome {
	return WorkOutcome{
		status:     StatusNoOp,
		sourcePath: sourcePath,
		signing:    signing,
		skipped:    reason,
	}
}

// Status returns the outcome status.
func (o WorkOutcome) Status() OutcomeStatus { return o.status }

// FailedEntries returns a copy of the entries that failed recoverably.
func (o WorkOutcome) FailedEntries() []string {
	if o.failed == nil {
		return nil
	}
	out := make([]string, len(o.failed))
	copy(out, o.failed)
	return out
}

// HasFailed reports whether any entry failed recoverably.
func (o WorkOutcome) HasFailed() bool { return len(o.failed) > 0 }

// ArtifactPath returns the produced package path, or "" if nothing was produced.
func (o WorkOutcome) ArtifactPath() string { return o.artifactPath }

// SourcePath returns the path of the processed source.
func (o WorkOutcome) SourcePath() string { return o.sourcePath }

// Signing returns the signing status discovered for the source.
func (o WorkOutcome) Signing() SigningStatus { return o.signing }

// Skipped returns why the source was not processed, if it was not.
func (o WorkOutcome) Skipped() SkipReason { return o.skipped }
