package progress

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// FindForUpdate locks the matching row until the surrounding
	// transaction commits. Returns (nil, nil) when no row exists yet.
	FindForUpdate(tx *gorm.DB, userID, courseID uint, target Target) (*UserProgress, error)
	// Create inserts the row, yielding to a concurrent insert of the same
	// identifying tuple: returns false when the unique index already holds
	// the tuple and nothing was written.
	Create(tx *gorm.DB, p *UserProgress) (bool, error)
	Update(tx *gorm.DB, p *UserProgress) error
	ListByUser(userID uint) ([]UserProgress, error)
	CountCompletedCourses(userID uint) (int64, error)
}

// EnsureIndexes builds the identifying-tuple unique index. NULL slots are
// folded to 0 (never a real foreign key) because unique indexes treat NULLs
// as distinct and would accept duplicate tuples otherwise. Run after
// AutoMigrate.
func EnsureIndexes(db *gorm.DB) error {
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_progress_target
		ON user_progress (user_id, course_id, COALESCE(lesson_id, 0), COALESCE(exercise_id, 0), COALESCE(quiz_id, 0))`).Error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// nullEq builds a WHERE clause that treats NULL keys as part of the tuple,
// since "col = NULL" never matches in SQL.
func nullEq(q *gorm.DB, column string, id *uint) *gorm.DB {
	if id == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *id)
}

func (r *repository) FindForUpdate(tx *gorm.DB, userID, courseID uint, target Target) (*UserProgress, error) {
	q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND course_id = ?", userID, courseID)
	q = nullEq(q, "lesson_id", target.LessonID)
	q = nullEq(q, "exercise_id", target.ExerciseID)
	q = nullEq(q, "quiz_id", target.QuizID)

	var p UserProgress
	if err := q.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(tx *gorm.DB, p *UserProgress) (bool, error) {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(p)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) Update(tx *gorm.DB, p *UserProgress) error {
	return tx.Save(p).Error
}

func (r *repository) ListByUser(userID uint) ([]UserProgress, error) {
	var rows []UserProgress
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CountCompletedCourses(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&UserProgress{}).
		Where("user_id = ? AND status = ? AND lesson_id IS NULL AND exercise_id IS NULL AND quiz_id IS NULL",
			userID, StatusCompleted).
		Count(&count).Error
	return count, err
}
