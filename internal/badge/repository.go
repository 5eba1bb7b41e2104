package badge

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(b *Badge) error
	FindByID(id uint) (*Badge, error)
	ListAll() ([]Badge, error)
	ListByUser(userID uint) ([]UserBadge, error)
	ListEarnedIDs(userID uint) (map[uint]bool, error)
	// Grant inserts the user/badge pair. Returns false when the pair
	// already exists, relying on the unique index so concurrent
	// evaluations cannot double-grant.
	Grant(ub *UserBadge) (bool, error)

	UserTotalPoints(userID uint) (int, error)
	CountCompletedCourses(userID uint) (int64, error)
	CountPassedSubmissions(userID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(b *Badge) error {
	return r.db.Create(b).Error
}

func (r *repository) FindByID(id uint) (*Badge, error) {
	var b Badge
	if err := r.db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListAll() ([]Badge, error) {
	var badges []Badge
	if err := r.db.Order("requirement_value ASC").Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *repository) ListByUser(userID uint) ([]UserBadge, error) {
	var earned []UserBadge
	err := r.db.Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&earned).Error
	if err != nil {
		return nil, err
	}
	return earned, nil
}

func (r *repository) ListEarnedIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.db.Model(&UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error
	if err != nil {
		return nil, err
	}
	earned := make(map[uint]bool, len(ids))
	for _, id := range ids {
		earned[id] = true
	}
	return earned, nil
}

func (r *repository) Grant(ub *UserBadge) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
		DoNothing: true,
	}).Create(ub)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) UserTotalPoints(userID uint) (int, error) {
	var total int
	err := r.db.Table("users").
		Where("id = ?", userID).
		Pluck("total_points", &total).Error
	return total, err
}

func (r *repository) CountCompletedCourses(userID uint) (int64, error) {
	var count int64
	err := r.db.Table("user_progress").
		Where("user_id = ? AND status = 'completed' AND lesson_id IS NULL AND exercise_id IS NULL AND quiz_id IS NULL", userID).
		Count(&count).Error
	return count, err
}

func (r *repository) CountPassedSubmissions(userID uint) (int64, error) {
	var count int64
	err := r.db.Table("code_submissions").
		Where("user_id = ? AND status = 'passed'", userID).
		Count(&count).Error
	return count, err
}
