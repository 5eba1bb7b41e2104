package course

import "time"

type Course struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Language    string     `gorm:"not null" json:"language"`
	Difficulty  Difficulty `gorm:"type:text;not null" json:"difficulty"`
	CreatedBy   uint       `gorm:"not null;index" json:"created_by"`
	IsPublished bool       `gorm:"not null;default:false" json:"is_published"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
