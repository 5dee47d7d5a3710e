package selection

import (
	"fmt"
	"math"
	"strings"
)

// RecordKind classifies an iteration log record.
type RecordKind string

const (
	// RecordEntered marks a variable entering the model.
	RecordEntered RecordKind = "entered"
	// RecordEliminated marks a variable leaving the model.
	RecordEliminated RecordKind = "eliminated"
	// RecordRegained marks an elimination reverted by the criterion gate.
	RecordRegained RecordKind = "regained"
	// RecordSummary carries a full model summary for one round.
	RecordSummary RecordKind = "summary"
	// RecordStopped marks normal termination with its reason.
	RecordStopped RecordKind = "stopped"
)

// Stop reasons carried by RecordStopped records.
const (
	StopNoCandidate    = "no candidate below significance level"
	StopCriterion      = "criterion did not improve"
	StopAllSignificant = "all remaining variables significant"
)

// Record is one structured event of a selection run.
type Record struct {
	Round    int
	Kind     RecordKind
	Variable string  // entered/eliminated/regained records
	Reason   string  // stopped records
	PValue   float64 // p-value of the moved variable, NaN when n/a

	// Criterion is the gating statistic's value at this round; NaN when
	// no criterion gates the run.
	Criterion float64
	AIC       float64
	BIC       float64

	// Summary holds the rendered model summary for summary records.
	Summary string
}

// IterationLog is the append-only sequence of records produced by one
// selection run. It is owned by the running algorithm and safe to read
// once returned.
type IterationLog struct {
	records []Record
}

func (l *IterationLog) append(r Record) {
	l.records = append(l.records, r)
}

// Records returns a copy of the log records in order.
func (l *IterationLog) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *IterationLog) Len() int { return len(l.records) }

// CriterionPath returns the gating criterion value of each summary
// record, in round order. Empty when the run was not criterion-gated.
func (l *IterationLog) CriterionPath() []float64 {
	var path []float64
	for _, r := range l.records {
		if r.Kind == RecordSummary && !math.IsNaN(r.Criterion) {
			path = append(path, r.Criterion)
		}
	}
	return path
}

// String renders the log as the human-readable iteration text callers
// persist: entry/elimination announcements, full model summaries with
// AIC/BIC trailers, and the stop reason.
func (l *IterationLog) String() string {
	var b strings.Builder
	for _, r := range l.records {
		switch r.Kind {
		case RecordEntered:
			fmt.Fprintf(&b, "\nEntered : %s\n", r.Variable)
		case RecordEliminated:
			fmt.Fprintf(&b, "\n\nEliminated : %s\n\n", r.Variable)
		case RecordRegained:
			fmt.Fprintf(&b, "\n\nRegained : %s\n\n", r.Variable)
		case RecordSummary:
			fmt.Fprintf(&b, "\n%s\nAIC: %v\nBIC: %v\n", r.Summary, r.AIC, r.BIC)
		case RecordStopped:
			fmt.Fprintf(&b, "\nBreak : %s\n", r.Reason)
		}
	}
	return b.String()
}
