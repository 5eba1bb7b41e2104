package quiz

import (
	"gorm.io/gorm"

	"github.com/codequest-labs/codequest-backend/internal/badge"
	"github.com/codequest-labs/codequest-backend/internal/lesson"
	"github.com/codequest-labs/codequest-backend/internal/progress"
	"github.com/codequest-labs/codequest-backend/internal/user"
)

type QuizContainer struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewQuizContainer(
	db *gorm.DB,
	userRepo user.Repository,
	lessonRepo lesson.Repository,
	progressService progress.Service,
	badgeService badge.Service,
) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, userRepo, lessonRepo, progressService, badgeService)
	handler := NewHandler(service)

	return &QuizContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
