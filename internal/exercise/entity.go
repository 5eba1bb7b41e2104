package exercise

import (
	"time"

	"gorm.io/datatypes"
)

type Exercise struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	LessonID    uint   `gorm:"not null;index" json:"lesson_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	StarterCode string `gorm:"type:text;not null" json:"starter_code"`
	// SolutionCode is stored AES-GCM encrypted, never serialized.
	SolutionCode string         `gorm:"type:text;not null" json:"-"`
	TestCases    datatypes.JSON `gorm:"type:jsonb;not null" json:"test_cases"`
	PointsReward int            `gorm:"not null" json:"points_reward"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}
