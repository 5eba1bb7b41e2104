package user

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(u *User) error
	FindByID(id uint) (*User, error)
	FindByUsername(username string) (*User, error)
	List() ([]User, error)
	Leaderboard(limit int) ([]LeaderboardEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(u *User) error {
	return r.db.Create(u).Error
}

func (r *repository) FindByID(id uint) (*User, error) {
	var u User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByUsername(username string) (*User, error) {
	var u User
	if err := r.db.First(&u, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) List() ([]User, error) {
	var users []User
	if err := r.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repository) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := r.db.Table("users").
		Select(`users.id AS user_id,
			users.username,
			users.total_points,
			COUNT(DISTINCT user_badges.id) AS badge_count,
			COUNT(DISTINCT CASE
				WHEN user_progress.status = 'completed'
					AND user_progress.lesson_id IS NULL
					AND user_progress.exercise_id IS NULL
					AND user_progress.quiz_id IS NULL
				THEN user_progress.course_id
			END) AS courses_completed`).
		Joins("LEFT JOIN user_badges ON user_badges.user_id = users.id").
		Joins("LEFT JOIN user_progress ON user_progress.user_id = users.id").
		Group("users.id, users.username, users.total_points").
		Order("users.total_points DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
