package badge

import (
	"context"
	"errors"
	"time"

	"github.com/codequest-labs/codequest-backend/internal/config"
)

var (
	ErrBadgeNotFound = errors.New("badge not found")
	ErrInvalidInput  = errors.New("invalid badge data")
)

type CreateBadgeInput struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Icon             string          `json:"icon"`
	RequirementType  RequirementType `json:"requirement_type"`
	RequirementValue int             `json:"requirement_value"`
}

type Service interface {
	CreateBadge(ctx context.Context, input CreateBadgeInput) (*Badge, error)
	ListBadges(ctx context.Context) ([]Badge, error)
	ListUserBadges(ctx context.Context, userID uint) ([]UserBadge, error)
	// Evaluate recomputes the user's aggregates and grants every badge the
	// user now qualifies for but does not hold yet. Returns the new grants.
	Evaluate(ctx context.Context, userID uint) ([]UserBadge, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateBadge(ctx context.Context, input CreateBadgeInput) (*Badge, error) {
	if input.Name == "" || !input.RequirementType.Valid() || input.RequirementValue <= 0 {
		return nil, ErrInvalidInput
	}

	b := &Badge{
		Name:             input.Name,
		Description:      input.Description,
		Icon:             input.Icon,
		RequirementType:  input.RequirementType,
		RequirementValue: input.RequirementValue,
	}
	if err := s.repo.Create(b); err != nil {
		return nil, err
	}

	config.WithContext(ctx).Infof("badge %q created", b.Name)
	return b, nil
}

func (s *service) ListBadges(ctx context.Context) ([]Badge, error) {
	return s.repo.ListAll()
}

func (s *service) ListUserBadges(ctx context.Context, userID uint) ([]UserBadge, error) {
	return s.repo.ListByUser(userID)
}

func (s *service) Evaluate(ctx context.Context, userID uint) ([]UserBadge, error) {
	log := config.WithContext(ctx)

	badges, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	if len(badges) == 0 {
		return nil, nil
	}

	earned, err := s.repo.ListEarnedIDs(userID)
	if err != nil {
		return nil, err
	}

	var (
		points          int
		coursesDone     int64
		exercisesDone   int64
		pointsLoaded    bool
		coursesLoaded   bool
		exercisesLoaded bool
	)

	var granted []UserBadge
	for _, b := range badges {
		if earned[b.ID] {
			continue
		}

		var current int64
		switch b.RequirementType {
		case RequirementPoints:
			if !pointsLoaded {
				if points, err = s.repo.UserTotalPoints(userID); err != nil {
					return granted, err
				}
				pointsLoaded = true
			}
			current = int64(points)
		case RequirementCoursesCompleted:
			if !coursesLoaded {
				if coursesDone, err = s.repo.CountCompletedCourses(userID); err != nil {
					return granted, err
				}
				coursesLoaded = true
			}
			current = coursesDone
		case RequirementExercisesCompleted:
			if !exercisesLoaded {
				if exercisesDone, err = s.repo.CountPassedSubmissions(userID); err != nil {
					return granted, err
				}
				exercisesLoaded = true
			}
			current = exercisesDone
		default:
			continue
		}

		if current < int64(b.RequirementValue) {
			continue
		}

		ub := &UserBadge{UserID: userID, BadgeID: b.ID, EarnedAt: time.Now()}
		inserted, err := s.repo.Grant(ub)
		if err != nil {
			return granted, err
		}
		if !inserted {
			continue
		}
		ub.Badge = b
		granted = append(granted, *ub)
		log.Infof("badge %q granted to user %d", b.Name, userID)
	}

	return granted, nil
}
