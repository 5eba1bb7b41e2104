package progress

import (
	"gorm.io/gorm"

	"github.com/codequest-labs/codequest-backend/internal/points"
)

type ProgressContainer struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewProgressContainer(db *gorm.DB, ledger points.Ledger) *ProgressContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, ledger)
	handler := NewHandler(service)

	return &ProgressContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
