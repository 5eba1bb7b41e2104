package submission

import "github.com/codequest-labs/codequest-backend/internal/grading"

type Status string

const (
	// StatusPending exists for rows created before grading finishes;
	// with synchronous grading it is transient and never returned.
	StatusPending Status = "pending"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
)

// statusFromVerdict collapses the verdict to the binary exercise outcome.
// Partial credit exists for quizzes only.
func statusFromVerdict(v grading.Verdict) Status {
	if v.Outcome == grading.OutcomePassed {
		return StatusPassed
	}
	return StatusFailed
}
