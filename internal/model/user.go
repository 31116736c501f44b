package model

import (
	"time"
)

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name                string    `gorm:"size:100;not null" json:"name"`
	Email               string    `gorm:"size:100;unique;not null" json:"email"`
	Password            string    `gorm:"size:100;not null" json:"-"`
	Role                UserRole  `gorm:"type:enum('student','instructor','admin');default:'student'" json:"role"`
	Avatar              string    `gorm:"size:255" json:"avatar"`
	Bio                 string    `gorm:"type:text" json:"bio"`
	Grade               string    `gorm:"size:50" json:"grade"`
	School              string    `gorm:"size:255" json:"school"`
	OnboardingCompleted bool      `gorm:"default:false" json:"onboardingCompleted"`
	Disabled            bool      `gorm:"default:false" json:"disabled"`
	LastLogin           time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen            time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`

	// Denormalized stats. Mutated only through atomic increments in
	// UserRepository, never read-modify-write.
	XP                   int `gorm:"default:0" json:"xp"`
	StudyStreak          int `gorm:"default:0" json:"studyStreak"`
	CoursesCompleted     int `gorm:"default:0" json:"coursesCompleted"`
	AssignmentsCompleted int `gorm:"default:0" json:"assignmentsCompleted"`
	TestsCompleted       int `gorm:"default:0" json:"testsCompleted"`
	TotalStudyTime       int `gorm:"default:0" json:"totalStudyTime"` // minutes
}

func (User) TableName() string {
	return "users"
}

// UserPreferences is the onboarding questionnaire result, one row per user.
type UserPreferences struct {
	BaseModel
	UserID        uint     `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"userId"`
	Subjects      []string `gorm:"serializer:json;type:json" json:"subjects"`
	Goals         []string `gorm:"serializer:json;type:json" json:"goals"`
	StudyTime     string   `gorm:"size:50" json:"studyTime"` // e.g. "morning", "evening"
	Schedule      []string `gorm:"serializer:json;type:json" json:"schedule"`
	Level         string   `gorm:"size:50" json:"level"`
	DailyGoalMins int      `gorm:"default:30" json:"dailyGoalMins"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}
