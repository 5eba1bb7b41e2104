package quiz

import (
	"github.com/codequest-labs/codequest-backend/internal/badge"
	"github.com/codequest-labs/codequest-backend/internal/grading"
)

type QuestionInput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   *string  `json:"explanation,omitempty"`
}

type CreateQuizInput struct {
	LessonID     uint            `json:"lesson_id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	PointsReward int             `json:"points_reward"`
	Questions    []QuestionInput `json:"questions,omitempty"`
}

// QuestionView is the learner-facing shape: no correct answer, no
// explanation until after an attempt.
type QuestionView struct {
	ID         uint     `json:"id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	OrderIndex int      `json:"order_index"`
}

type QuizView struct {
	ID           uint           `json:"id"`
	LessonID     uint           `json:"lesson_id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	PointsReward int            `json:"points_reward"`
	Questions    []QuestionView `json:"questions"`
}

type SubmitAttemptInput struct {
	UserID  uint     `json:"user_id"`
	QuizID  uint     `json:"quiz_id"`
	Answers []string `json:"answers"`
}

type AttemptResult struct {
	Attempt      *QuizAttempt      `json:"attempt"`
	Verdict      grading.Verdict   `json:"verdict"`
	PointsEarned int               `json:"points_earned"`
	NewBadges    []badge.UserBadge `json:"new_badges,omitempty"`
}
