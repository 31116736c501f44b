package repository

import (
	"time"

	"masomo_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// ProgressKey is the composite lookup filter for one progress row.
type ProgressKey struct {
	UserID   uint
	CourseID uint
	Type     model.ProgressType
	LessonID *uint
	ModuleID *uint
}

func (r *ProgressRepository) Find(key ProgressKey) (*model.ProgressRecord, error) {
	var record model.ProgressRecord
	db := r.DB.Where("user_id = ? AND course_id = ? AND type = ?", key.UserID, key.CourseID, key.Type)
	if key.LessonID != nil {
		db = db.Where("lesson_id = ?", *key.LessonID)
	} else {
		db = db.Where("lesson_id IS NULL")
	}
	if key.ModuleID != nil {
		db = db.Where("module_id = ?", *key.ModuleID)
	} else {
		db = db.Where("module_id IS NULL")
	}
	err := db.First(&record).Error
	return &record, err
}

func (r *ProgressRepository) Create(record *model.ProgressRecord) error {
	return r.DB.Create(record).Error
}

func (r *ProgressRepository) Update(record *model.ProgressRecord) error {
	return r.DB.Save(record).Error
}

func (r *ProgressRepository) FindByUserAndCourse(userID, courseID uint) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&records).Error
	return records, err
}

func (r *ProgressRepository) CountCompletedLessons(userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ProgressRecord{}).
		Where("user_id = ? AND course_id = ? AND type = ? AND is_completed = ?",
			userID, courseID, model.ProgressLesson, true).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) IsLessonCompleted(userID uint, lessonID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ProgressRecord{}).
		Where("user_id = ? AND lesson_id = ? AND type = ? AND is_completed = ?",
			userID, lessonID, model.ProgressLesson, true).
		Count(&count).Error
	return count > 0, err
}

// DeleteByCourse is unscoped so the course reset flow frees the progress
// unique index instead of leaving soft-deleted rows in it.
func (r *ProgressRepository) DeleteByCourse(tx *gorm.DB, courseID uint) error {
	return tx.Unscoped().Where("course_id = ?", courseID).Delete(&model.ProgressRecord{}).Error
}

func (r *ProgressRepository) CreateSession(session *model.StudySession) error {
	return r.DB.Create(session).Error
}

// SumSessionMinutes totals reported study time for the user since the given
// instant.
func (r *ProgressRepository) SumSessionMinutes(userID uint, since time.Time) (int64, error) {
	var total int64
	err := r.DB.Model(&model.StudySession{}).
		Where("user_id = ? AND studied_at >= ?", userID, since).
		Select("COALESCE(SUM(minutes), 0)").
		Scan(&total).Error
	return total, err
}
