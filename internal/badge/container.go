package badge

import "gorm.io/gorm"

type BadgeContainer struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewBadgeContainer(db *gorm.DB) *BadgeContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &BadgeContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
