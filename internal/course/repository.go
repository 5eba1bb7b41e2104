package course

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(c *Course) error
	FindByID(id uint) (*Course, error)
	List() ([]Course, error)
	Update(c *Course) error
	Delete(id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(c *Course) error {
	return r.db.Create(c).Error
}

func (r *repository) FindByID(id uint) (*Course, error) {
	var c Course
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) List() ([]Course, error) {
	var courses []Course
	if err := r.db.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *repository) Update(c *Course) error {
	return r.db.Save(c).Error
}

func (r *repository) Delete(id uint) error {
	return r.db.Delete(&Course{}, "id = ?", id).Error
}
