package domain

import "fmt"

type Status int

const (
	Completed Status = iota
	CompletedWithSkips
	Failed
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case CompletedWithSkips:
		return "completed_with_skips"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Skip records one item a copy could not write.
type Skip struct {
	RelativePath string
	Err          error
}

// Outcome is the result of a copy or delete run.
type Outcome struct {
	Kind    OperationKind
	Target  string
	Status  Status
	Skipped []Skip
	Err     error
}

func CompletedOutcome(kind OperationKind, target string) Outcome {
	return Outcome{Kind: kind, Target: target, Status: Completed}
}

func FailedOutcome(kind OperationKind, target string, err error) Outcome {
	return Outcome{Kind: kind, Target: target, Status: Failed, Err: err}
}

// WithSkips returns the outcome for a walk that finished with the given skips.
func WithSkips(kind OperationKind, target string, skipped []Skip) Outcome {
	if len(skipped) == 0 {
		return CompletedOutcome(kind, target)
	}
	return Outcome{Kind: kind, Target: target, Status: CompletedWithSkips, Skipped: skipped}
}

func (o Outcome) OK() bool {
	return o.Status != Failed
}

// SkippedPaths lists the relative paths of every skipped item in walk order.
func (o Outcome) SkippedPaths() []string {
	paths := make([]string, 0, len(o.Skipped))
	for _, skip := range o.Skipped {
		paths = append(paths, skip.RelativePath)
	}
	return paths
}

// String is the one-line status the shells display. Failures carry the raw error;
// presentation swaps in the user-facing message.
func (o Outcome) String() string {
	switch o.Status {
	case Completed:
		return "Complete!"
	case CompletedWithSkips:
		return fmt.Sprintf("Completed with %d skipped item(s).", len(o.Skipped))
	default:
		if o.Err == nil {
			return "Failed!"
		}
		return "Failed! " + o.Err.Error()
	}
}
