package model

type NotificationType string

const (
	NotificationAchievement   NotificationType = "achievement"
	NotificationFriendRequest NotificationType = "friend_request"
	NotificationFriendAccept  NotificationType = "friend_accept"
	NotificationCourse        NotificationType = "course"
)

// swagger:model Notification
type Notification struct {
	BaseModel
	UserID uint             `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Type   NotificationType `gorm:"size:30;not null" json:"type"`
	Title  string           `gorm:"size:255;not null" json:"title"`
	Body   string           `gorm:"type:text" json:"body"`
	IsRead bool             `gorm:"default:false" json:"isRead"`
}

func (Notification) TableName() string {
	return "notifications"
}
