package repositories

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jitterapp/backend/internal/apperrors"
	"github.com/jitterapp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database for one test. The DSN is
// keyed by the test name so parallel packages never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Friend{},
		&models.FriendRequest{},
		&models.UserBlock{},
		&models.Jit{},
		&models.JitTarget{},
		&models.JitLike{},
		&models.JitFavorite{},
		&models.JitReply{},
		&models.Activity{},
		&models.DeviceToken{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Fullname: username,
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCreateRequest(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	req, err := repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, req.RequesterID)
	assert.Equal(t, bob.ID, req.RequesteeID)

	has, err := repo.HasRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestCreateRequestDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	// same direction
	_, err = repo.CreateRequest(alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRequest)

	// reverse direction collapses into the existing request too
	_, err = repo.CreateRequest(bob.ID, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRequest)
}

func TestCreateRequestAlreadyFriends(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AcceptRequest(alice.ID, bob.ID))

	_, err = repo.CreateRequest(alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyFriends)
}

func TestAcceptRequestCreatesBothEdges(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AcceptRequest(alice.ID, bob.ID))

	forward, err := repo.IsFriend(alice.ID, bob.ID)
	require.NoError(t, err)
	backward, err := repo.IsFriend(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, forward)
	assert.True(t, backward)

	// the pending request is consumed
	has, err := repo.HasRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestAcceptRequestConsumesMirrorRequest(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	// force a crossed pair directly; CreateRequest would refuse the second
	require.NoError(t, db.Create(&models.FriendRequest{RequesterID: alice.ID, RequesteeID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.FriendRequest{RequesterID: bob.ID, RequesteeID: alice.ID}).Error)

	require.NoError(t, repo.AcceptRequest(alice.ID, bob.ID))

	has, err := repo.HasRequest(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestAcceptRequestMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	err := repo.AcceptRequest(alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteRequestThenResend(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, repo.DeleteRequest(alice.ID, bob.ID))

	// a rejected or cancelled request must not block a later one
	_, err = repo.CreateRequest(alice.ID, bob.ID)
	assert.NoError(t, err)
}

func TestDeleteRequestMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	err := repo.DeleteRequest(alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteFriendRemovesBothEdges(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AcceptRequest(alice.ID, bob.ID))

	// either side may unfriend; here the requestee does
	require.NoError(t, repo.DeleteFriend(bob.ID, alice.ID))

	forward, err := repo.IsFriend(alice.ID, bob.ID)
	require.NoError(t, err)
	backward, err := repo.IsFriend(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, forward)
	assert.False(t, backward)

	// second unfriend finds nothing
	assert.ErrorIs(t, repo.DeleteFriend(alice.ID, bob.ID), apperrors.ErrNotFound)

	// and the pair may start over
	_, err = repo.CreateRequest(bob.ID, alice.ID)
	assert.NoError(t, err)
}

func TestGetFriendsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	for _, other := range []uint{bob.ID, carol.ID} {
		_, err := repo.CreateRequest(alice.ID, other)
		require.NoError(t, err)
		require.NoError(t, repo.AcceptRequest(alice.ID, other))
	}

	friends, total, err := repo.GetFriends(alice.ID, 0, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, friends, 2)
	require.NotNil(t, friends[0].FriendUser)

	// search narrows by the friend's username
	friends, total, err = repo.GetFriends(alice.ID, 0, 10, "car")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, friends, 1)
	assert.Equal(t, carol.ID, friends[0].FriendID)
}

func TestRelationshipStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	status, err := repo.RelationshipStatus(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, status.IsFriend)
	assert.False(t, status.RequestSent)
	assert.False(t, status.RequestReceived)

	_, err = repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	status, err = repo.RelationshipStatus(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, status.RequestSent)
	assert.False(t, status.RequestReceived)

	// the same pair from bob's side
	status, err = repo.RelationshipStatus(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, status.RequestSent)
	assert.True(t, status.RequestReceived)

	require.NoError(t, repo.AcceptRequest(alice.ID, bob.ID))

	status, err = repo.RelationshipStatus(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, status.IsFriend)
	assert.False(t, status.RequestSent)
	assert.False(t, status.RequestReceived)
}

func TestGetRequestsSentAndReceived(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	_, err := repo.CreateRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.CreateRequest(carol.ID, bob.ID)
	require.NoError(t, err)

	sent, total, err := repo.GetRequestsSent(alice.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, sent, 1)
	require.NotNil(t, sent[0].Requestee)
	assert.Equal(t, bob.ID, sent[0].Requestee.ID)

	received, total, err := repo.GetRequestsReceived(bob.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, received, 2)
	require.NotNil(t, received[0].Requester)
}
