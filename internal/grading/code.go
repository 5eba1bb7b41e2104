package grading

import (
	"github.com/codequest-labs/codequest-backend/internal/runner"
)

// GradeCode matches runner results against the exercise's test cases.
// Code submissions are binary: the verdict is passed only when every case
// passes. A per-case execution error counts as a failed case.
func GradeCode(cases []TestCase, results []runner.ExecResult) Verdict {
	v := Verdict{
		TotalCount: len(cases),
		Items:      make([]ItemResult, 0, len(cases)),
	}

	for i, c := range cases {
		item := ItemResult{Index: i, Expected: c.Expected}

		switch {
		case i >= len(results):
			item.Error = "no result returned for this test case"
		case results[i].Err != "":
			item.Error = results[i].Err
		default:
			item.Actual = results[i].Output
			item.Passed = valuesEqual(c.Expected, results[i].Output)
		}

		if item.Passed {
			v.CorrectCount++
		}
		v.Items = append(v.Items, item)
	}

	if v.TotalCount > 0 && v.CorrectCount == v.TotalCount {
		v.Outcome = OutcomePassed
	} else {
		v.Outcome = OutcomeFailed
	}
	return v
}
