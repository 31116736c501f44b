package model

// Lesson belongs to a course and is consumed sequentially by Order.
// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID    uint   `gorm:"index;type:bigint unsigned;not null;uniqueIndex:idx_course_order" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Order       int    `gorm:"not null;uniqueIndex:idx_course_order" json:"order"`
	Duration    int    `gorm:"default:0" json:"duration"` // minutes
	IsPreview   bool   `gorm:"default:false" json:"isPreview"`
	Content     string `gorm:"type:text" json:"content"`
	VideoURL    string `gorm:"size:512" json:"videoUrl"`
	ResourceURL string `gorm:"size:512" json:"resourceUrl"`
}

func (Lesson) TableName() string {
	return "lessons"
}
