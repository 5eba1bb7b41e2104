package lesson

import (
	"context"
	"errors"
	"strings"

	"github.com/codequest-labs/codequest-backend/internal/config"
	"github.com/codequest-labs/codequest-backend/internal/course"
)

var (
	ErrLessonNotFound = errors.New("lesson not found")
	ErrInvalidInput   = errors.New("invalid lesson input")
)

type CreateLessonInput struct {
	CourseID   uint   `json:"course_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	OrderIndex int    `json:"order_index"`
}

type UpdateLessonInput struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	OrderIndex *int    `json:"order_index"`
}

type Service interface {
	CreateLesson(ctx context.Context, input CreateLessonInput) (*Lesson, error)
	GetLesson(ctx context.Context, id uint) (*Lesson, error)
	ListByCourse(ctx context.Context, courseID uint) ([]Lesson, error)
	UpdateLesson(ctx context.Context, id uint, input UpdateLessonInput) (*Lesson, error)
	DeleteLesson(ctx context.Context, id uint) error
}

type service struct {
	repo       Repository
	courseRepo course.Repository
}

func NewService(repo Repository, courseRepo course.Repository) Service {
	return &service{repo: repo, courseRepo: courseRepo}
}

func (s *service) CreateLesson(ctx context.Context, input CreateLessonInput) (*Lesson, error) {
	log := config.WithContext(ctx)

	if strings.TrimSpace(input.Title) == "" || input.OrderIndex < 0 {
		return nil, ErrInvalidInput
	}

	c, err := s.courseRepo.FindByID(input.CourseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, course.ErrCourseNotFound
	}

	l := &Lesson{
		CourseID:   input.CourseID,
		Title:      input.Title,
		Content:    input.Content,
		OrderIndex: input.OrderIndex,
	}
	if err := s.repo.Create(l); err != nil {
		log.WithError(err).Error("failed to create lesson")
		return nil, err
	}

	log.Infof("created lesson %d in course %d", l.ID, l.CourseID)
	return l, nil
}

func (s *service) GetLesson(ctx context.Context, id uint) (*Lesson, error) {
	l, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLessonNotFound
	}
	return l, nil
}

func (s *service) ListByCourse(ctx context.Context, courseID uint) ([]Lesson, error) {
	c, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, course.ErrCourseNotFound
	}
	return s.repo.ListByCourse(courseID)
}

func (s *service) UpdateLesson(ctx context.Context, id uint, input UpdateLessonInput) (*Lesson, error) {
	log := config.WithContext(ctx)

	l, err := s.GetLesson(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrInvalidInput
		}
		l.Title = *input.Title
	}
	if input.Content != nil {
		l.Content = *input.Content
	}
	if input.OrderIndex != nil {
		if *input.OrderIndex < 0 {
			return nil, ErrInvalidInput
		}
		l.OrderIndex = *input.OrderIndex
	}

	if err := s.repo.Update(l); err != nil {
		log.WithError(err).Error("failed to update lesson")
		return nil, err
	}
	return l, nil
}

func (s *service) DeleteLesson(ctx context.Context, id uint) error {
	log := config.WithContext(ctx)

	if _, err := s.GetLesson(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		log.WithError(err).Error("failed to delete lesson")
		return err
	}
	log.Infof("deleted lesson %d", id)
	return nil
}
