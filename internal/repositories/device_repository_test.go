package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDeviceReassignsExistingToken(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresDeviceRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, repo.Register(alice.ID, "tok-1"))

	// the same device signing in as another user moves the token over
	require.NoError(t, repo.Register(bob.ID, "tok-1"))

	tokens, err := repo.TokensForUser(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, tokens)

	tokens, err = repo.TokensForUser(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"tok-1"}, tokens)
}

func TestUnregisterDevice(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresDeviceRepository(db)
	alice := seedUser(t, db, "alice")

	require.NoError(t, repo.Register(alice.ID, "tok-1"))
	require.NoError(t, repo.Register(alice.ID, "tok-2"))

	require.NoError(t, repo.Unregister(alice.ID, "tok-1"))

	tokens, err := repo.TokensForUser(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"tok-2"}, tokens)

	// the removed token may be registered again
	require.NoError(t, repo.Register(alice.ID, "tok-1"))

	tokens, err = repo.TokensForUser(alice.ID)
	require.NoError(t, err)
	assert.Len(t, tokens, 2)
}
