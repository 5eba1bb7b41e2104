package progress

import "time"

// UserProgress is one row per (user, course, lesson?, exercise?, quiz?)
// tuple. Course-level rows leave the three optional keys NULL. Tuple
// uniqueness is enforced by the COALESCE index from EnsureIndexes, since
// NULLs are distinct in an ordinary unique index.
type UserProgress struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	CourseID     uint       `gorm:"not null;index" json:"course_id"`
	LessonID     *uint      `json:"lesson_id,omitempty"`
	ExerciseID   *uint      `json:"exercise_id,omitempty"`
	QuizID       *uint      `json:"quiz_id,omitempty"`
	Status       Status     `gorm:"type:text;not null;default:'started'" json:"status"`
	PointsEarned int        `gorm:"not null;default:0" json:"points_earned"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
