package submission

import (
	"time"

	"gorm.io/datatypes"
)

type CodeSubmission struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	ExerciseID  uint           `gorm:"not null;index" json:"exercise_id"`
	Code        string         `gorm:"type:text;not null" json:"code"`
	Language    string         `gorm:"not null" json:"language"`
	Status      Status         `gorm:"type:text;not null" json:"status"`
	TestResults datatypes.JSON `gorm:"type:jsonb" json:"test_results"`
	SubmittedAt time.Time      `gorm:"not null" json:"submitted_at"`
}
