package grading

import "encoding/json"

// GradeQuiz scores submitted answers positionally against the correct
// answers. Missing answers and answers that match nothing count as
// incorrect, never as errors, so early submissions stay gradable.
func GradeQuiz(correctAnswers, answers []string) Verdict {
	v := Verdict{
		TotalCount: len(correctAnswers),
		Items:      make([]ItemResult, 0, len(correctAnswers)),
	}

	for i, correct := range correctAnswers {
		given := ""
		if i < len(answers) {
			given = answers[i]
		}

		item := ItemResult{
			Index:    i,
			Passed:   given == correct,
			Expected: mustJSON(correct),
			Actual:   mustJSON(given),
		}
		if item.Passed {
			v.CorrectCount++
		}
		v.Items = append(v.Items, item)
	}

	switch {
	case v.TotalCount > 0 && v.CorrectCount == v.TotalCount:
		v.Outcome = OutcomePassed
	case v.CorrectCount == 0:
		v.Outcome = OutcomeFailed
	default:
		v.Outcome = OutcomePartial
	}
	return v
}

// QuizPoints is the candidate reward for an attempt:
// floor(correct/total * reward). Integer math keeps the floor exact.
func QuizPoints(correct, total, reward int) int {
	if total <= 0 || correct <= 0 {
		return 0
	}
	return correct * reward / total
}

func mustJSON(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
