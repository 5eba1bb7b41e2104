package progress

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/codequest-labs/codequest-backend/internal/config"
	"github.com/codequest-labs/codequest-backend/internal/points"
)

var (
	ErrInvalidInput  = errors.New("invalid progress data")
	ErrInvalidTarget = errors.New("progress target must reference at most one of lesson, exercise or quiz")
)

type UpdateProgressInput struct {
	UserID       uint   `json:"user_id"`
	CourseID     uint   `json:"course_id"`
	LessonID     *uint  `json:"lesson_id,omitempty"`
	ExerciseID   *uint  `json:"exercise_id,omitempty"`
	QuizID       *uint  `json:"quiz_id,omitempty"`
	Status       Status `json:"status"`
	PointsEarned int    `json:"points_earned"`
}

type Service interface {
	// Apply reconciles one attempt against the stored progress row. The
	// row is created on first sight; on re-attempts points_earned only
	// ever goes up and a completed row never reverts to started. The
	// returned delta is what the ledger credited for this attempt.
	Apply(ctx context.Context, userID, courseID uint, target Target, status Status, candidatePoints int) (*UserProgress, int, error)
	UpdateProgress(ctx context.Context, input UpdateProgressInput) (*UserProgress, error)
	ListByUser(ctx context.Context, userID uint) ([]UserProgress, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	ledger points.Ledger
}

func NewService(db *gorm.DB, repo Repository, ledger points.Ledger) Service {
	return &service{db: db, repo: repo, ledger: ledger}
}

func (s *service) Apply(ctx context.Context, userID, courseID uint, target Target, status Status, candidatePoints int) (*UserProgress, int, error) {
	log := config.WithContext(ctx)

	if userID == 0 || courseID == 0 {
		return nil, 0, ErrInvalidInput
	}
	if !status.Valid() {
		return nil, 0, ErrInvalidInput
	}
	if candidatePoints < 0 {
		return nil, 0, ErrInvalidInput
	}
	set := 0
	for _, id := range []*uint{target.LessonID, target.ExerciseID, target.QuizID} {
		if id != nil {
			set++
		}
	}
	if set > 1 {
		return nil, 0, ErrInvalidTarget
	}

	var (
		row   *UserProgress
		delta int
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindForUpdate(tx, userID, courseID, target)
		if err != nil {
			return err
		}

		now := time.Now()
		if existing == nil {
			fresh := &UserProgress{
				UserID:       userID,
				CourseID:     courseID,
				LessonID:     target.LessonID,
				ExerciseID:   target.ExerciseID,
				QuizID:       target.QuizID,
				Status:       status,
				PointsEarned: candidatePoints,
			}
			if status == StatusCompleted {
				fresh.CompletedAt = &now
			}
			inserted, err := s.repo.Create(tx, fresh)
			if err != nil {
				return err
			}
			if inserted {
				row = fresh
				delta = candidatePoints
				return s.ledger.Credit(ctx, tx, userID, delta)
			}
			// A concurrent attempt inserted the row between our read and
			// our write. Lock the winner's row and reconcile against it
			// like any re-attempt.
			existing, err = s.repo.FindForUpdate(tx, userID, courseID, target)
			if err != nil {
				return err
			}
			if existing == nil {
				return errors.New("progress row missing after conflicting insert")
			}
		}

		row = existing
		delta = candidatePoints - row.PointsEarned
		if delta < 0 {
			delta = 0
		}
		changed := false
		if delta > 0 {
			row.PointsEarned += delta
			changed = true
		}
		if status == StatusCompleted && row.Status != StatusCompleted {
			row.Status = StatusCompleted
			row.CompletedAt = &now
			changed = true
		}
		if changed {
			if err := s.repo.Update(tx, row); err != nil {
				return err
			}
		}

		return s.ledger.Credit(ctx, tx, userID, delta)
	})
	if err != nil {
		return nil, 0, err
	}

	if delta > 0 {
		log.Infof("progress for user %d in course %d advanced by %d points", userID, courseID, delta)
	}
	return row, delta, nil
}

func (s *service) UpdateProgress(ctx context.Context, input UpdateProgressInput) (*UserProgress, error) {
	target := Target{
		LessonID:   input.LessonID,
		ExerciseID: input.ExerciseID,
		QuizID:     input.QuizID,
	}
	row, _, err := s.Apply(ctx, input.UserID, input.CourseID, target, input.Status, input.PointsEarned)
	return row, err
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]UserProgress, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(userID)
}
