package model

import "time"

// Enrollment links a user to a course. The composite unique index is the
// real duplicate-enrollment guard; the service-level pre-check only exists
// to return a friendly error.
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID           uint       `gorm:"not null;type:bigint unsigned;uniqueIndex:idx_user_course" json:"userId"`
	CourseID         uint       `gorm:"not null;type:bigint unsigned;uniqueIndex:idx_user_course;index" json:"courseId"`
	Course           *Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Progress         float64    `gorm:"default:0" json:"progress"` // 0-100
	CompletedLessons int        `gorm:"default:0" json:"completedLessons"`
	IsCompleted      bool       `gorm:"default:false" json:"isCompleted"`
	EnrolledAt       time.Time  `gorm:"autoCreateTime" json:"enrolledAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	LastAccessedAt   *time.Time `json:"lastAccessedAt,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
