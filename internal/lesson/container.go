package lesson

import (
	"gorm.io/gorm"

	"github.com/codequest-labs/codequest-backend/internal/course"
)

type LessonContainer struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewLessonContainer(db *gorm.DB, courseRepo course.Repository) *LessonContainer {
	repo := NewRepository(db)
	service := NewService(repo, courseRepo)
	handler := NewHandler(service)

	return &LessonContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
