// Package grading turns raw submissions into verdicts. It has no knowledge
// of persistence or transport: callers feed it typed test cases, execution
// results or answer keys and receive a Verdict back.
package grading

import "encoding/json"

type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomePartial Outcome = "partial"
)

// ItemResult is the per-case breakdown of a verdict.
type ItemResult struct {
	Index    int             `json:"index"`
	Passed   bool            `json:"passed"`
	Expected json.RawMessage `json:"expected,omitempty"`
	Actual   json.RawMessage `json:"actual,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type Verdict struct {
	Outcome      Outcome      `json:"outcome"`
	CorrectCount int          `json:"correct_count"`
	TotalCount   int          `json:"total_count"`
	Items        []ItemResult `json:"items,omitempty"`
}

func (v Verdict) Percent() float64 {
	if v.TotalCount == 0 {
		return 0
	}
	return float64(v.CorrectCount) / float64(v.TotalCount)
}

// Rejected builds the all-failed verdict used when grading cannot even
// start, e.g. unparsable test data or an unreachable runner. The learner
// sees a failed submission with a diagnostic instead of an error page.
func Rejected(reason string) Verdict {
	return Verdict{
		Outcome: OutcomeFailed,
		Items:   []ItemResult{{Index: 0, Error: reason}},
	}
}
