package quiz

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(tx *gorm.DB, q *Quiz) error
	FindByID(id uint) (*Quiz, error)
	ListByLesson(lessonID uint) ([]Quiz, error)
	Delete(id uint) error

	AddQuestions(tx *gorm.DB, questions []*QuizQuestion) error
	ListQuestions(quizID uint) ([]QuizQuestion, error)
	DeleteQuestion(id uint) error

	CreateAttempt(a *QuizAttempt) error
	ListAttemptsByUser(userID uint) ([]QuizAttempt, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *repository) Create(tx *gorm.DB, q *Quiz) error {
	return r.conn(tx).Create(q).Error
}

func (r *repository) FindByID(id uint) (*Quiz, error) {
	var q Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		First(&q, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *repository) ListByLesson(lessonID uint) ([]Quiz, error) {
	var quizzes []Quiz
	if err := r.db.
		Where("lesson_id = ?", lessonID).
		Order("created_at ASC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *repository) Delete(id uint) error {
	return r.db.Delete(&Quiz{}, "id = ?", id).Error
}

func (r *repository) AddQuestions(tx *gorm.DB, questions []*QuizQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return r.conn(tx).Create(&questions).Error
}

func (r *repository) ListQuestions(quizID uint) ([]QuizQuestion, error) {
	var questions []QuizQuestion
	if err := r.db.
		Where("quiz_id = ?", quizID).
		Order("order_index ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *repository) DeleteQuestion(id uint) error {
	return r.db.Delete(&QuizQuestion{}, "id = ?", id).Error
}

func (r *repository) CreateAttempt(a *QuizAttempt) error {
	return r.db.Create(a).Error
}

func (r *repository) ListAttemptsByUser(userID uint) ([]QuizAttempt, error) {
	var attempts []QuizAttempt
	if err := r.db.
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}
