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

// A submission with no answer rows must still store cleanly; gorm rejects a
// Create on an empty slice, so the answers insert is skipped entirely.
func TestAssignmentRepositoryCreateSubmissionWithoutAnswers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `submissions`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sub := &model.Submission{
		AssignmentID: 11,
		UserID:       7,
		Status:       model.SubmissionGraded,
		SubmittedAt:  time.Now(),
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.CreateSubmission(tx, sub, nil)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
