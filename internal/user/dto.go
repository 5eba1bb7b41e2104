package user

type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type LeaderboardEntry struct {
	UserID           uint   `gorm:"column:user_id" json:"user_id"`
	Username         string `gorm:"column:username" json:"username"`
	TotalPoints      int    `gorm:"column:total_points" json:"total_points"`
	BadgeCount       int    `gorm:"column:badge_count" json:"badge_count"`
	CoursesCompleted int    `gorm:"column:courses_completed" json:"courses_completed"`
}
