package repository

import (
	"time"

	"masomo_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(tx *gorm.DB, enrollment *model.Enrollment) error {
	return tx.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) Exists(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *EnrollmentRepository) FindByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) Update(enrollment *model.Enrollment) error {
	return r.DB.Save(enrollment).Error
}

// UpdateLessonProgress refreshes the denormalized course progress after a
// lesson completion.
func (r *EnrollmentRepository) UpdateLessonProgress(userID, courseID uint, completedLessons int, progress float64, completed bool) error {
	updates := map[string]interface{}{
		"completed_lessons": completedLessons,
		"progress":          progress,
		"last_accessed_at":  time.Now(),
	}
	if completed {
		updates["is_completed"] = true
		updates["completed_at"] = time.Now()
	}
	return r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(updates).Error
}

// DeleteByCourse removes every enrollment of a course; used by the admin
// course reset flow together with progress deletion and counter reset.
// The delete is unscoped: a soft-deleted row would still occupy the
// (user, course) unique index and block re-enrolling after a reset.
func (r *EnrollmentRepository) DeleteByCourse(tx *gorm.DB, courseID uint) error {
	return tx.Unscoped().Where("course_id = ?", courseID).Delete(&model.Enrollment{}).Error
}
