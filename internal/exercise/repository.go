package exercise

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(e *Exercise) error
	FindByID(id uint) (*Exercise, error)
	ListByLesson(lessonID uint) ([]Exercise, error)
	Update(e *Exercise) error
	Delete(id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(e *Exercise) error {
	return r.db.Create(e).Error
}

func (r *repository) FindByID(id uint) (*Exercise, error) {
	var e Exercise
	if err := r.db.First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) ListByLesson(lessonID uint) ([]Exercise, error) {
	var exercises []Exercise
	if err := r.db.
		Where("lesson_id = ?", lessonID).
		Order("created_at ASC").
		Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *repository) Update(e *Exercise) error {
	return r.db.Save(e).Error
}

func (r *repository) Delete(id uint) error {
	return r.db.Delete(&Exercise{}, "id = ?", id).Error
}
