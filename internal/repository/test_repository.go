package repository

import (
	"masomo_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) Create(test *model.Test) error {
	return r.DB.Create(test).Error
}

func (r *TestRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	err := r.DB.First(&test, id).Error
	return &test, err
}

func (r *TestRepository) Update(test *model.Test) error {
	return r.DB.Save(test).Error
}

func (r *TestRepository) FindPublishedByCourse(courseID uint) ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.Where("course_id = ? AND is_published = ?", courseID, true).
		Order("created_at DESC").
		Find(&tests).Error
	return tests, err
}

func (r *TestRepository) FindPublishedByCourses(courseIDs []uint) ([]model.Test, error) {
	var tests []model.Test
	if len(courseIDs) == 0 {
		return tests, nil
	}
	err := r.DB.Where("course_id IN ? AND is_published = ?", courseIDs, true).
		Order("created_at DESC").
		Find(&tests).Error
	return tests, err
}

func (r *TestRepository) FindQuestions(testID uint) ([]model.TestQuestion, error) {
	var questions []model.TestQuestion
	err := r.DB.Where("test_id = ?", testID).Order("`order` ASC").Find(&questions).Error
	return questions, err
}

func (r *TestRepository) CreateQuestion(q *model.TestQuestion) error {
	return r.DB.Create(q).Error
}

func (r *TestRepository) SetTotalPoints(testID uint, total int) error {
	return r.DB.Model(&model.Test{}).
		Where("id = ?", testID).
		Update("total_points", total).Error
}

func (r *TestRepository) AttemptExists(userID, testID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.TestAttempt{}).
		Where("user_id = ? AND test_id = ?", userID, testID).
		Count(&count).Error
	return count > 0, err
}

func (r *TestRepository) CreateAttempt(tx *gorm.DB, attempt *model.TestAttempt, answers []model.TestAttemptAnswer) error {
	if err := tx.Create(attempt).Error; err != nil {
		return err
	}
	// gorm errors on creating an empty slice.
	if len(answers) == 0 {
		return nil
	}
	for i := range answers {
		answers[i].AttemptID = attempt.ID
	}
	return tx.Create(&answers).Error
}

func (r *TestRepository) FindAttempt(userID, testID uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.DB.Where("user_id = ? AND test_id = ?", userID, testID).First(&attempt).Error
	return &attempt, err
}

func (r *TestRepository) FindAttemptsByUser(userID uint) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.DB.Where("user_id = ?", userID).Find(&attempts).Error
	return attempts, err
}

func (r *TestRepository) FindAttemptAnswers(attemptID string) ([]model.TestAttemptAnswer, error) {
	var answers []model.TestAttemptAnswer
	err := r.DB.Where("attempt_id = ?", attemptID).Find(&answers).Error
	return answers, err
}
