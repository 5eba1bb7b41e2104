package badge

import "time"

type Badge struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Name             string          `gorm:"not null;uniqueIndex" json:"name"`
	Description      string          `json:"description"`
	Icon             string          `json:"icon"`
	RequirementType  RequirementType `gorm:"type:text;not null" json:"requirement_type"`
	RequirementValue int             `gorm:"not null" json:"requirement_value"`
	CreatedAt        time.Time       `json:"created_at"`
}

type UserBadge struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"user_id"`
	BadgeID  uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"badge_id"`
	EarnedAt time.Time `gorm:"not null" json:"earned_at"`
	Badge    Badge     `gorm:"foreignKey:BadgeID" json:"badge"`
}
