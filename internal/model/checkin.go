package model

import (
	"time"
)

// Checkin records one study day per user; StreakDays carries the running
// consecutive-day count at the time of the check-in.
// swagger:model Checkin
type Checkin struct {
	BaseModel
	UserID     uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	CheckinAt  time.Time `gorm:"not null;index" json:"checkinAt"`
	StreakDays int       `gorm:"default:1" json:"streakDays"`
}

func (Checkin) TableName() string {
	return "checkins"
}
