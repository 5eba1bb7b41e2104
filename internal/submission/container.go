package submission

import (
	"gorm.io/gorm"

	"github.com/codequest-labs/codequest-backend/internal/badge"
	"github.com/codequest-labs/codequest-backend/internal/exercise"
	"github.com/codequest-labs/codequest-backend/internal/lesson"
	"github.com/codequest-labs/codequest-backend/internal/progress"
	"github.com/codequest-labs/codequest-backend/internal/runner"
	"github.com/codequest-labs/codequest-backend/internal/user"
)

type SubmissionContainer struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewSubmissionContainer(
	db *gorm.DB,
	userRepo user.Repository,
	exerciseRepo exercise.Repository,
	lessonRepo lesson.Repository,
	r runner.Runner,
	progressService progress.Service,
	badgeService badge.Service,
) *SubmissionContainer {
	repo := NewRepository(db)
	service := NewService(repo, userRepo, exerciseRepo, lessonRepo, r, progressService, badgeService)
	handler := NewHandler(service)

	return &SubmissionContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
