package service

import (
	"regexp"
	"testing"

	"masomo_backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampPercentage(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		reported float64
		want     float64
	}{
		{"forward movement", 20, 60, 60},
		{"caps at 100", 20, 150, 100},
		{"never moves backwards", 80, 40, 80},
		{"equal stays", 50, 50, 50},
		{"zero report keeps progress", 30, 0, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampPercentage(tt.current, tt.reported))
		})
	}
}

// A report with study time must flow through to the study-time achievements:
// after the stat increment the service re-reads the lifetime total and hands
// it to the evaluator as an absolute value.
func TestRecordFeedsStudyTimeAchievement(t *testing.T) {
	db, mock := newMockDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewLessonRepository(db),
		repository.NewCourseRepository(db),
		userRepo,
		NewGamificationService(userRepo, nil),
		newAchievementService(db),
		db,
	)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `enrollments`")).
		WithArgs(7, 4).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `progress_records`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "course_id", "type", "completion_percentage", "time_spent", "is_completed"}).
			AddRow(3, 7, 4, "course", 20, 100, false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `progress_records` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Stat increment, session append, then the lifetime total re-read.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `study_sessions`")).
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "total_study_time"}).AddRow(7, 130))

	// The evaluator receives the absolute total.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `achievement_definitions`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "target", "xp_reward", "is_active"}).
			AddRow(9, "Deep Focus", "study_time", 1000, 200, true))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `user_achievements`")).
		WithArgs(7, 9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "achievement_id", "progress", "is_completed", "notified"}).
			AddRow(12, 7, 9, 100, false, false))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `user_achievements` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	record, err := svc.Record(7, ProgressUpdateRequest{
		CourseID:             4,
		Type:                 "course",
		CompletionPercentage: 40,
		TimeSpent:            30,
	})
	require.NoError(t, err)
	assert.Equal(t, 130, record.TimeSpent)
	assert.InDelta(t, 40, record.CompletionPercentage, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}
