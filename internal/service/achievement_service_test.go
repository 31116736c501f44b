package service

import (
	"regexp"
	"testing"

	"masomo_backend/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampProgress(t *testing.T) {
	tests := []struct {
		name          string
		current       int
		value         int
		target        int
		wantNext      int
		wantCompleted bool
	}{
		{"normal advance", 3, 2, 10, 5, false},
		{"reaches target exactly", 8, 2, 10, 10, true},
		{"overshoot clamps to target", 8, 5, 10, 10, true},
		{"already at target stays completed-free", 10, 1, 10, 10, false},
		{"zero value no-op", 4, 0, 10, 4, false},
		{"negative never below zero", 2, -5, 10, 0, false},
		{"single step to target of one", 0, 1, 1, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, completed := clampProgress(tt.current, tt.value, tt.target)
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, tt.wantCompleted, completed)
		})
	}
}

// Completing an achievement notifies and rewards exactly once: the first
// advance to the target writes the notification and XP, every later event
// against the completed row writes nothing.
func TestAchievementCompletionNotifiesOnce(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newAchievementService(db)

	defRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name", "description", "type", "target", "xp_reward", "is_active"}).
			AddRow(9, "Circle of Five", "Make 3 friends", "friends_made", 3, 50, true)
	}

	// First call crosses the target: notification, XP and the progress row
	// commit together.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `achievement_definitions`")).
		WillReturnRows(defRows())
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `user_achievements`")).
		WithArgs(7, 9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "achievement_id", "progress", "is_completed", "notified"}).
			AddRow(12, 7, 9, 2, false, false))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `notifications`")).
		WillReturnResult(sqlmock.NewResult(33, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `user_achievements` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.AddProgress(7, model.AchievementFriendsMade, 1))

	// Second call finds the completed, already-notified row and leaves the
	// database untouched.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `achievement_definitions`")).
		WillReturnRows(defRows())
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `user_achievements`")).
		WithArgs(7, 9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "achievement_id", "progress", "is_completed", "notified"}).
			AddRow(12, 7, 9, 3, true, true))
	mock.ExpectCommit()

	require.NoError(t, svc.AddProgress(7, model.AchievementFriendsMade, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
