package model

import "time"

type ProgressType string

const (
	ProgressLesson ProgressType = "lesson"
	ProgressModule ProgressType = "module"
	ProgressCourse ProgressType = "course"
)

// ProgressRecord tracks per-lesson/module/course completion. One row per
// (user, course, type, lesson, module) combination; TimeSpent accumulates
// across updates while CompletionPercentage is overwritten.
// swagger:model ProgressRecord
type ProgressRecord struct {
	BaseModel
	UserID               uint         `gorm:"not null;type:bigint unsigned;uniqueIndex:idx_progress_key" json:"userId"`
	CourseID             uint         `gorm:"not null;type:bigint unsigned;uniqueIndex:idx_progress_key;index" json:"courseId"`
	Type                 ProgressType `gorm:"size:20;not null;uniqueIndex:idx_progress_key" json:"type"`
	LessonID             *uint        `gorm:"type:bigint unsigned;uniqueIndex:idx_progress_key" json:"lessonId,omitempty"`
	ModuleID             *uint        `gorm:"type:bigint unsigned;uniqueIndex:idx_progress_key" json:"moduleId,omitempty"`
	CompletionPercentage float64      `gorm:"default:0" json:"completionPercentage"`
	TimeSpent            int          `gorm:"default:0" json:"timeSpent"` // minutes, accumulated
	IsCompleted          bool         `gorm:"default:false" json:"isCompleted"`
	LastAccessedAt       time.Time    `json:"lastAccessedAt"`
}

func (ProgressRecord) TableName() string {
	return "progress_records"
}

// StudySession is one reported chunk of study time. Rows are append-only;
// the dashboard aggregates them per window.
type StudySession struct {
	BaseModel
	UserID    uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	CourseID  uint      `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	LessonID  *uint     `gorm:"type:bigint unsigned" json:"lessonId,omitempty"`
	Minutes   int       `gorm:"not null" json:"minutes"`
	StudiedAt time.Time `gorm:"index;not null" json:"studiedAt"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}
