package model

type AchievementType string

const (
	AchievementCoursesEnrolled     AchievementType = "courses_enrolled"
	AchievementCoursesCompleted    AchievementType = "courses_completed"
	AchievementLessonsCompleted    AchievementType = "lessons_completed"
	AchievementAssignmentsComplete AchievementType = "assignments_completed"
	AchievementTestsCompleted      AchievementType = "tests_completed"
	AchievementFriendsMade         AchievementType = "friends_made"
	AchievementStudyStreak         AchievementType = "study_streak"
	AchievementStudyTime           AchievementType = "study_time"
)

// AchievementDefinition is a static rule: once a user's tracked counter of
// Type reaches Target, the achievement is complete.
// swagger:model AchievementDefinition
type AchievementDefinition struct {
	BaseModel
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	Icon        string          `gorm:"size:255" json:"icon"`
	Type        AchievementType `gorm:"size:50;index;not null" json:"type"`
	Target      int             `gorm:"not null" json:"target"`
	XPReward    int             `gorm:"default:0" json:"xpReward"`
	IsActive    bool            `gorm:"default:true" json:"isActive"`
}

func (AchievementDefinition) TableName() string {
	return "achievement_definitions"
}

// UserAchievement is a user's progress counter against one definition.
// Progress never exceeds the definition target. Notified guards the one-shot
// completion notification and XP reward.
// swagger:model UserAchievement
type UserAchievement struct {
	BaseModel
	UserID        uint                   `gorm:"not null;type:bigint unsigned;uniqueIndex:idx_user_achievement" json:"userId"`
	AchievementID uint                   `gorm:"not null;type:bigint unsigned;uniqueIndex:idx_user_achievement" json:"achievementId"`
	Achievement   *AchievementDefinition `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
	Progress      int                    `gorm:"default:0" json:"progress"`
	IsCompleted   bool                   `gorm:"default:false" json:"isCompleted"`
	Notified      bool                   `gorm:"default:false" json:"-"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
