package submission

import "gorm.io/gorm"

type Repository interface {
	Create(s *CodeSubmission) error
	ListByUser(userID uint) ([]CodeSubmission, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(s *CodeSubmission) error {
	return r.db.Create(s).Error
}

func (r *repository) ListByUser(userID uint) ([]CodeSubmission, error) {
	var subs []CodeSubmission
	err := r.db.Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
