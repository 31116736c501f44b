package service

import (
	"regexp"
	"testing"
	"time"

	"masomo_backend/internal/model"
	"masomo_backend/internal/repository"
	"masomo_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestDeriveAssignmentStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-48 * time.Hour)

	t.Run("no submission before due date", func(t *testing.T) {
		assert.Equal(t, "pending", deriveAssignmentStatus(nil, future, now))
	})

	t.Run("no submission after due date", func(t *testing.T) {
		assert.Equal(t, "overdue", deriveAssignmentStatus(nil, past, now))
	})

	t.Run("stored status wins over due date", func(t *testing.T) {
		sub := &model.Submission{Status: model.SubmissionGraded}
		assert.Equal(t, "graded", deriveAssignmentStatus(sub, past, now))
	})

	t.Run("late submission keeps late status", func(t *testing.T) {
		sub := &model.Submission{Status: model.SubmissionLate}
		assert.Equal(t, "late", deriveAssignmentStatus(sub, past, now))
	})
}

// The submission pre-check must reject a second submit before any grading or
// insert work happens.
func TestSubmitRejectsDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
		userRepo,
		NewGamificationService(userRepo, nil),
		newAchievementService(db),
		db,
	)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `assignments`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "is_published"}).
			AddRow(11, 5, true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `enrollments`")).
		WithArgs(7, 5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `submissions`")).
		WithArgs(7, 11).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Submit(7, 11, SubmitRequest{Answers: map[uint]string{1: "a"}})
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
