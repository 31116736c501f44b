package repository

import (
	"regexp"
	"testing"
	"time"

	"masomo_backend/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTestRepositoryCreateAttemptWithoutAnswers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `test_attempts`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	attempt := &model.TestAttempt{
		TestID:    9,
		UserID:    7,
		Status:    "completed",
		StartedAt: time.Now(),
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.CreateAttempt(tx, attempt, nil)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
