package service

import (
	"testing"
	"time"

	"masomo_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNextStreak(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	t.Run("first ever check-in", func(t *testing.T) {
		assert.Equal(t, 1, nextStreak(nil, now))
	})

	t.Run("consecutive day extends", func(t *testing.T) {
		prev := &model.Checkin{
			CheckinAt:  now.AddDate(0, 0, -1),
			StreakDays: 4,
		}
		assert.Equal(t, 5, nextStreak(prev, now))
	})

	t.Run("same day keeps streak", func(t *testing.T) {
		prev := &model.Checkin{
			CheckinAt:  now.Add(-2 * time.Hour),
			StreakDays: 4,
		}
		assert.Equal(t, 4, nextStreak(prev, now))
	})

	t.Run("missed day resets", func(t *testing.T) {
		prev := &model.Checkin{
			CheckinAt:  now.AddDate(0, 0, -2),
			StreakDays: 12,
		}
		assert.Equal(t, 1, nextStreak(prev, now))
	})

	t.Run("late evening to early morning still consecutive", func(t *testing.T) {
		prev := &model.Checkin{
			CheckinAt:  time.Date(2026, 3, 14, 23, 50, 0, 0, time.UTC),
			StreakDays: 2,
		}
		early := time.Date(2026, 3, 15, 0, 10, 0, 0, time.UTC)
		assert.Equal(t, 3, nextStreak(prev, early))
	})
}
