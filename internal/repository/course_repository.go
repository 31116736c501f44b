package repository

import (
	"masomo_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

// CourseFilter narrows the public catalog listing.
type CourseFilter struct {
	Category string
	Subject  string
	Level    string
	Search   string
}

func (r *CourseRepository) FindPublished(filter CourseFilter, limit, offset int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	db := r.DB.Model(&model.Course{}).Where("is_published = ?", true)

	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Subject != "" {
		db = db.Where("subject = ?", filter.Subject)
	}
	if filter.Level != "" {
		db = db.Where("level = ?", filter.Level)
	}
	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", searchTerm, searchTerm)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Instructor").
		Order("students DESC").
		Limit(limit).Offset(offset).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) FindByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ?", instructorID).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) IncrementStudents(tx *gorm.DB, courseID uint, delta int) error {
	return tx.Model(&model.Course{}).
		Where("id = ?", courseID).
		Update("students", gorm.Expr("students + ?", delta)).
		Error
}

func (r *CourseRepository) SetLessonCount(courseID uint, count int) error {
	return r.DB.Model(&model.Course{}).
		Where("id = ?", courseID).
		Update("lesson_count", count).
		Error
}
