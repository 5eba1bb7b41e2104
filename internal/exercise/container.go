package exercise

import (
	"gorm.io/gorm"

	"github.com/codequest-labs/codequest-backend/internal/lesson"
)

type ExerciseContainer struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewExerciseContainer(db *gorm.DB, lessonRepo lesson.Repository) *ExerciseContainer {
	repo := NewRepository(db)
	service := NewService(repo, lessonRepo)
	handler := NewHandler(service)

	return &ExerciseContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
