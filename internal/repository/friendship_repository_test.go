package repository

import (
	"regexp"
	"testing"

	"masomo_backend/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Accepting a request must update the request row and write both edge
// directions under a single BEGIN/COMMIT, so a failure between the writes
// can never leave an accepted request without its friendship.
func TestFriendshipRepositoryAcceptRequest(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendshipRepository(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `friend_requests` SET")).
		WithArgs("accepted", sqlmock.AnyArg(), "req-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `friendships`")).
		WithArgs(1, 2, "accepted", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `friendships`")).
		WithArgs(2, 1, "accepted", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	friendship := &model.Friendship{UserID: 1, FriendID: 2, Status: "accepted"}
	require.NoError(t, repo.AcceptRequest("req-1", friendship))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failed edge insert rolls the status flip back with it.
func TestFriendshipRepositoryAcceptRequestRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendshipRepository(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `friend_requests` SET")).
		WithArgs("accepted", sqlmock.AnyArg(), "req-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `friendships`")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	friendship := &model.Friendship{UserID: 1, FriendID: 2, Status: "accepted"}
	err := repo.AcceptRequest("req-1", friendship)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
