package lesson

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(l *Lesson) error
	FindByID(id uint) (*Lesson, error)
	ListByCourse(courseID uint) ([]Lesson, error)
	Update(l *Lesson) error
	Delete(id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(l *Lesson) error {
	return r.db.Create(l).Error
}

func (r *repository) FindByID(id uint) (*Lesson, error) {
	var l Lesson
	if err := r.db.First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *repository) ListByCourse(courseID uint) ([]Lesson, error) {
	var lessons []Lesson
	if err := r.db.
		Where("course_id = ?", courseID).
		Order("order_index ASC").
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *repository) Update(l *Lesson) error {
	return r.db.Save(l).Error
}

func (r *repository) Delete(id uint) error {
	return r.db.Delete(&Lesson{}, "id = ?", id).Error
}
