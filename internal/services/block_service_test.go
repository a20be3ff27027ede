package services

import (
	"testing"

	"github.com/jitterapp/backend/internal/apperrors"
	"github.com/jitterapp/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlockService(t *testing.T) (*BlockService, func(username string) uint) {
	t.Helper()
	db := newTestDB(t)
	service := NewBlockService(
		repositories.NewPostgresBlockRepository(db),
		repositories.NewPostgresUserRepository(db),
	)
	return service, func(username string) uint {
		return seedUser(t, db, username).ID
	}
}

func TestBlockLifecycle(t *testing.T) {
	service, seed := newBlockService(t)
	alice := seed("alice")
	bob := seed("bob")

	require.NoError(t, service.Block(alice, bob))

	blocked, err := service.IsBlocked(alice, bob)
	require.NoError(t, err)
	assert.True(t, blocked)

	// a block is one-way
	blocked, err = service.IsBlocked(bob, alice)
	require.NoError(t, err)
	assert.False(t, blocked)

	// blocking twice is a conflict
	assert.ErrorIs(t, service.Block(alice, bob), apperrors.ErrAlreadyExists)

	require.NoError(t, service.Unblock(alice, bob))
	assert.ErrorIs(t, service.Unblock(alice, bob), apperrors.ErrNotFound)

	// re-blocking after an unblock works
	assert.NoError(t, service.Block(alice, bob))
}

func TestBlockValidation(t *testing.T) {
	service, seed := newBlockService(t)
	alice := seed("alice")

	assert.ErrorIs(t, service.Block(alice, alice), apperrors.ErrSelfReference)
	assert.ErrorIs(t, service.Block(alice, 9999), apperrors.ErrNotFound)
}

func TestGetBlockedUsers(t *testing.T) {
	service, seed := newBlockService(t)
	alice := seed("alice")
	bob := seed("bob")
	carol := seed("carol")

	require.NoError(t, service.Block(alice, bob))
	require.NoError(t, service.Block(alice, carol))

	blocks, total, err := service.GetBlockedUsers(alice, 0, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, blocks, 2)
	require.NotNil(t, blocks[0].BlockedUser)

	blocks, total, err = service.GetBlockedUsers(alice, 0, 10, "car")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, blocks, 1)
	assert.Equal(t, carol, blocks[0].BlockedUserID)
}
