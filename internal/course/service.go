package course

import (
	"context"
	"errors"
	"strings"

	"github.com/codequest-labs/codequest-backend/internal/config"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrInvalidInput   = errors.New("invalid course input")
)

type Service interface {
	CreateCourse(ctx context.Context, input CreateCourseInput) (*Course, error)
	GetCourse(ctx context.Context, id uint) (*Course, error)
	ListCourses(ctx context.Context) ([]Course, error)
	UpdateCourse(ctx context.Context, id uint, input UpdateCourseInput) (*Course, error)
	DeleteCourse(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCourse(ctx context.Context, input CreateCourseInput) (*Course, error) {
	log := config.WithContext(ctx)

	if strings.TrimSpace(input.Title) == "" || !input.Difficulty.Valid() || input.CreatedBy == 0 {
		return nil, ErrInvalidInput
	}

	c := &Course{
		Title:       input.Title,
		Description: input.Description,
		Language:    input.Language,
		Difficulty:  input.Difficulty,
		CreatedBy:   input.CreatedBy,
	}
	if err := s.repo.Create(c); err != nil {
		log.WithError(err).Error("failed to create course")
		return nil, err
	}

	log.Infof("created course %d (%s)", c.ID, c.Title)
	return c, nil
}

func (s *service) GetCourse(ctx context.Context, id uint) (*Course, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCourseNotFound
	}
	return c, nil
}

func (s *service) ListCourses(ctx context.Context) ([]Course, error) {
	return s.repo.List()
}

func (s *service) UpdateCourse(ctx context.Context, id uint, input UpdateCourseInput) (*Course, error) {
	log := config.WithContext(ctx)

	c, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrInvalidInput
		}
		c.Title = *input.Title
	}
	if input.Description != nil {
		c.Description = *input.Description
	}
	if input.Language != nil {
		c.Language = *input.Language
	}
	if input.Difficulty != nil {
		if !input.Difficulty.Valid() {
			return nil, ErrInvalidInput
		}
		c.Difficulty = *input.Difficulty
	}
	if input.IsPublished != nil {
		c.IsPublished = *input.IsPublished
	}

	if err := s.repo.Update(c); err != nil {
		log.WithError(err).Error("failed to update course")
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCourse(ctx context.Context, id uint) error {
	log := config.WithContext(ctx)

	if _, err := s.GetCourse(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		log.WithError(err).Error("failed to delete course")
		return err
	}
	log.Infof("deleted course %d", id)
	return nil
}
