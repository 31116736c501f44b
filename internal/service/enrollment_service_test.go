package service

import (
	"regexp"
	"testing"

	"masomo_backend/internal/repository"
	"masomo_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

// A second enrollment attempt must stop at the existence check: the caller
// gets the conflict error and no insert is ever attempted.
func TestEnrollRejectsDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewCourseRepository(db),
		NewGamificationService(userRepo, nil),
		newAchievementService(db),
		db,
	)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `courses`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "instructor_id", "is_published"}).
			AddRow(5, 2, true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "Wanjiru"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `enrollments`")).
		WithArgs(7, 5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Enroll(7, 5)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
	assert.NoError(t, mock.ExpectationsWereMet())
}
