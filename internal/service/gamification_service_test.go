package service

import (
	"regexp"
	"testing"

	"masomo_backend/internal/repository"
	"masomo_backend/pkg/monitoring"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXPForEvent(t *testing.T) {
	assert.Equal(t, 100, XPForEvent(EventCourseEnrolled))
	assert.Equal(t, 25, XPForEvent(EventLessonCompleted))
	assert.Equal(t, 200, XPForEvent(EventCourseCompleted))
	assert.Equal(t, 20, XPForEvent(EventFriendAccepted))
	assert.Equal(t, 10, XPForEvent(EventDailyCheckin))

	// Score-based events have no flat award.
	assert.Zero(t, XPForEvent(EventAssignmentSubmitted))
	assert.Zero(t, XPForEvent(EventTestSubmitted))
}

func TestXPForAssignment(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want int
	}{
		{"zero score", 0, 50},
		{"below bonus threshold", 89.9, 50},
		{"at bonus threshold", 90, 75},
		{"perfect", 100, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, XPForAssignment(tt.pct))
		})
	}
}

func TestXPForTest(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want int
	}{
		{"zero score", 0, 0},
		{"half", 50, 25},
		{"near perfect", 99, 49},
		{"perfect gets bonus", 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, XPForTest(tt.pct))
		})
	}
}

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		xp        int
		level     int
		nextLevel int
	}{
		{0, 0, 200},
		{199, 0, 200},
		{200, 1, 400},
		{1999, 9, 2000},
		{2000, 10, 2200},
	}
	for _, tt := range tests {
		level, next := CalculateLevel(tt.xp)
		assert.Equal(t, tt.level, level, "xp=%d", tt.xp)
		assert.Equal(t, tt.nextLevel, next, "xp=%d", tt.xp)
	}
}

// AwardInTx only writes the XP column; the leaderboard and metrics mirror is
// a separate Publish step the caller runs after commit. A rolled-back award
// must therefore never show up in the counter.
func TestAwardInTxPublishesOnlyAfterCommit(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGamificationService(repository.NewUserRepository(db), nil)

	counter := monitoring.XPAwarded.WithLabelValues(string(EventCourseEnrolled))
	before := testutil.ToFloat64(counter)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx := db.Begin()
	require.NoError(t, svc.AwardInTx(tx, 7, EventCourseEnrolled, 100))
	tx.Rollback()

	assert.Equal(t, before, testutil.ToFloat64(counter))

	// Publish is the post-commit half of the pair.
	svc.Publish(7, EventCourseEnrolled, 100)
	assert.Equal(t, before+100, testutil.ToFloat64(counter))
	assert.NoError(t, mock.ExpectationsWereMet())
}
