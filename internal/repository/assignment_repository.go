package repository

import (
	"masomo_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.First(&assignment, id).Error
	return &assignment, err
}

func (r *AssignmentRepository) Update(assignment *model.Assignment) error {
	return r.DB.Save(assignment).Error
}

func (r *AssignmentRepository) FindPublishedByCourse(courseID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("course_id = ? AND is_published = ?", courseID, true).
		Order("due_date ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) FindPublishedByCourses(courseIDs []uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	if len(courseIDs) == 0 {
		return assignments, nil
	}
	err := r.DB.Where("course_id IN ? AND is_published = ?", courseIDs, true).
		Order("due_date ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) FindQuestions(assignmentID uint) ([]model.AssignmentQuestion, error) {
	var questions []model.AssignmentQuestion
	err := r.DB.Where("assignment_id = ?", assignmentID).Order("`order` ASC").Find(&questions).Error
	return questions, err
}

func (r *AssignmentRepository) CreateQuestion(q *model.AssignmentQuestion) error {
	return r.DB.Create(q).Error
}

func (r *AssignmentRepository) SetTotalPoints(assignmentID uint, total int) error {
	return r.DB.Model(&model.Assignment{}).
		Where("id = ?", assignmentID).
		Update("total_points", total).Error
}

func (r *AssignmentRepository) SubmissionExists(userID, assignmentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Submission{}).
		Where("user_id = ? AND assignment_id = ?", userID, assignmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) CreateSubmission(tx *gorm.DB, sub *model.Submission, answers []model.SubmissionAnswer) error {
	if err := tx.Create(sub).Error; err != nil {
		return err
	}
	// gorm errors on creating an empty slice; a question-less assignment
	// still gets its submission row.
	if len(answers) == 0 {
		return nil
	}
	for i := range answers {
		answers[i].SubmissionID = sub.ID
	}
	return tx.Create(&answers).Error
}

func (r *AssignmentRepository) FindSubmission(userID, assignmentID uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.Where("user_id = ? AND assignment_id = ?", userID, assignmentID).First(&sub).Error
	return &sub, err
}

func (r *AssignmentRepository) FindSubmissionsByUser(userID uint) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Where("user_id = ?", userID).Find(&subs).Error
	return subs, err
}

func (r *AssignmentRepository) FindSubmissionsByAssignment(assignmentID uint) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Where("assignment_id = ?", assignmentID).Order("submitted_at DESC").Find(&subs).Error
	return subs, err
}

func (r *AssignmentRepository) FindSubmissionAnswers(submissionID string) ([]model.SubmissionAnswer, error) {
	var answers []model.SubmissionAnswer
	err := r.DB.Where("submission_id = ?", submissionID).Find(&answers).Error
	return answers, err
}
