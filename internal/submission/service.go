package submission

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/codequest-labs/codequest-backend/internal/badge"
	"github.com/codequest-labs/codequest-backend/internal/config"
	"github.com/codequest-labs/codequest-backend/internal/exercise"
	"github.com/codequest-labs/codequest-backend/internal/grading"
	"github.com/codequest-labs/codequest-backend/internal/lesson"
	"github.com/codequest-labs/codequest-backend/internal/progress"
	"github.com/codequest-labs/codequest-backend/internal/runner"
	"github.com/codequest-labs/codequest-backend/internal/user"
)

var ErrInvalidInput = errors.New("invalid submission data")

type SubmitInput struct {
	UserID     uint   `json:"user_id"`
	ExerciseID uint   `json:"exercise_id"`
	Code       string `json:"code"`
	Language   string `json:"language"`
}

// SubmitResult is what the learner gets back: the stored submission, the
// per-case verdict and any badges this attempt unlocked.
type SubmitResult struct {
	Submission *CodeSubmission   `json:"submission"`
	Verdict    grading.Verdict   `json:"verdict"`
	NewBadges  []badge.UserBadge `json:"new_badges,omitempty"`
}

type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error)
	ListByUser(ctx context.Context, userID uint) ([]CodeSubmission, error)
}

type service struct {
	repo         Repository
	userRepo     user.Repository
	exerciseRepo exercise.Repository
	lessonRepo   lesson.Repository
	runner       runner.Runner
	progress     progress.Service
	badges       badge.Service
}

func NewService(
	repo Repository,
	userRepo user.Repository,
	exerciseRepo exercise.Repository,
	lessonRepo lesson.Repository,
	r runner.Runner,
	progressService progress.Service,
	badgeService badge.Service,
) Service {
	return &service{
		repo:         repo,
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		lessonRepo:   lessonRepo,
		runner:       r,
		progress:     progressService,
		badges:       badgeService,
	}
}

// Submit grades one attempt end to end. The submission row is always
// persisted, whatever the verdict. Progress reconciliation and badge
// evaluation run after the grade and are best-effort: their failures are
// logged and the learner still receives the verdict.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	log := config.WithContext(ctx)

	if input.UserID == 0 || input.ExerciseID == 0 || input.Code == "" || input.Language == "" {
		return nil, ErrInvalidInput
	}

	u, err := s.userRepo.FindByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	ex, err := s.exerciseRepo.FindByID(input.ExerciseID)
	if err != nil {
		return nil, err
	}
	if ex == nil {
		return nil, exercise.ErrExerciseNotFound
	}

	verdict := s.grade(ctx, input, ex)

	sub := &CodeSubmission{
		UserID:      input.UserID,
		ExerciseID:  input.ExerciseID,
		Code:        input.Code,
		Language:    input.Language,
		Status:      statusFromVerdict(verdict),
		SubmittedAt: time.Now(),
	}
	if results, err := json.Marshal(verdict.Items); err == nil {
		sub.TestResults = results
	}
	if err := s.repo.Create(sub); err != nil {
		return nil, err
	}

	result := &SubmitResult{Submission: sub, Verdict: verdict}
	if verdict.Outcome != grading.OutcomePassed {
		return result, nil
	}

	courseID, err := s.courseOf(ex.LessonID)
	if err != nil {
		log.WithError(err).Warnf("could not resolve course for lesson %d, progress not updated", ex.LessonID)
		return result, nil
	}

	target := progress.ForExercise(ex.ID)
	if _, _, err := s.progress.Apply(ctx, input.UserID, courseID, target, progress.StatusCompleted, ex.PointsReward); err != nil {
		log.WithError(err).Warnf("progress update failed for user %d exercise %d", input.UserID, ex.ID)
		return result, nil
	}

	granted, err := s.badges.Evaluate(ctx, input.UserID)
	if err != nil {
		log.WithError(err).Warnf("badge evaluation failed for user %d", input.UserID)
		return result, nil
	}
	result.NewBadges = granted

	return result, nil
}

// grade never returns an error: unusable test data or an unreachable runner
// degrade to a failed verdict carrying the diagnostic.
func (s *service) grade(ctx context.Context, input SubmitInput, ex *exercise.Exercise) grading.Verdict {
	log := config.WithContext(ctx)

	cases, err := grading.ParseTestCases(ex.TestCases)
	if err != nil {
		log.WithError(err).Errorf("exercise %d has unusable test cases", ex.ID)
		return grading.Rejected("exercise test data is invalid, please contact an administrator")
	}

	inputs := make([]json.RawMessage, len(cases))
	for i, c := range cases {
		inputs[i] = c.Input
	}

	results, err := s.runner.Execute(ctx, input.Code, input.Language, inputs)
	if err != nil {
		log.WithError(err).Error("code runner unavailable")
		return grading.Rejected("code execution service is unavailable, please try again later")
	}

	return grading.GradeCode(cases, results)
}

func (s *service) courseOf(lessonID uint) (uint, error) {
	l, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		return 0, err
	}
	if l == nil {
		return 0, lesson.ErrLessonNotFound
	}
	return l.CourseID, nil
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]CodeSubmission, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(userID)
}
