package services

import (
	"context"
	"testing"
	"time"

	"github.com/jitterapp/backend/internal/apperrors"
	"github.com/jitterapp/backend/internal/models"
	"github.com/jitterapp/backend/internal/notifier"
	"github.com/jitterapp/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// memStoryRepo is an in-memory stand-in for the MongoDB-backed repository.
type memStoryRepo struct {
	stories map[string]models.Story
	seen    map[string]map[uint]bool
}

func newMemStoryRepo() *memStoryRepo {
	return &memStoryRepo{
		stories: make(map[string]models.Story),
		seen:    make(map[string]map[uint]bool),
	}
}

func (m *memStoryRepo) CreateStory(_ context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	story.CreatedAt = time.Now()
	story.ExpiresAt = story.CreatedAt.Add(24 * time.Hour)
	m.stories[story.ID.Hex()] = *story
	return nil
}

func (m *memStoryRepo) GetStoryByID(_ context.Context, id string) (*models.Story, error) {
	story, ok := m.stories[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &story, nil
}

func (m *memStoryRepo) GetStoriesByUserIDs(_ context.Context, userIDs []uint) ([]models.Story, error) {
	wanted := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}
	var out []models.Story
	now := time.Now()
	for _, story := range m.stories {
		if wanted[story.UserID] && story.ExpiresAt.After(now) {
			out = append(out, story)
		}
	}
	return out, nil
}

func (m *memStoryRepo) DeleteExpiredStories(_ context.Context) error {
	now := time.Now()
	for id, story := range m.stories {
		if !story.ExpiresAt.After(now) {
			delete(m.stories, id)
		}
	}
	return nil
}

func (m *memStoryRepo) MarkSeen(storyID string, userID uint) error {
	if m.seen[storyID] == nil {
		m.seen[storyID] = make(map[uint]bool)
	}
	m.seen[storyID][userID] = true
	return nil
}

func (m *memStoryRepo) GetSeenStoryIDs(userID uint, storyIDs []string) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, id := range storyIDs {
		if m.seen[id][userID] {
			out[id] = true
		}
	}
	return out, nil
}

type storyFixture struct {
	db      *gorm.DB
	service *StoryService
	emitter *recordingEmitter
	friends repositories.FriendshipRepository
}

func newStoryFixture(t *testing.T) *storyFixture {
	t.Helper()
	db := newTestDB(t)
	emitter := &recordingEmitter{}
	friends := repositories.NewPostgresFriendshipRepository(db)
	service := NewStoryService(
		newMemStoryRepo(),
		friends,
		repositories.NewPostgresUserRepository(db),
		emitter,
	)
	return &storyFixture{db: db, service: service, emitter: emitter, friends: friends}
}

func (fx *storyFixture) befriend(t *testing.T, a, b uint) {
	t.Helper()
	_, err := fx.friends.CreateRequest(a, b)
	require.NoError(t, err)
	require.NoError(t, fx.friends.AcceptRequest(a, b))
}

func TestCreateStoryValidatesTargets(t *testing.T) {
	fx := newStoryFixture(t)
	alice := seedUser(t, fx.db, "alice")
	bob := seedUser(t, fx.db, "bob")

	_, err := fx.service.CreateStory(context.Background(), alice.ID, &models.CreateStoryRequest{
		Content:   "me again",
		FriendIDs: []uint{alice.ID},
	})
	assert.ErrorIs(t, err, apperrors.ErrSelfTarget)

	_, err = fx.service.CreateStory(context.Background(), alice.ID, &models.CreateStoryRequest{
		Content:   "ghost",
		FriendIDs: []uint{bob.ID, 9999},
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, fx.emitter.events)
}

func TestCreateStoryEmitsMentions(t *testing.T) {
	fx := newStoryFixture(t)
	alice := seedUser(t, fx.db, "alice")
	bob := seedUser(t, fx.db, "bob")

	story, err := fx.service.CreateStory(context.Background(), alice.ID, &models.CreateStoryRequest{
		Content:   "look at this",
		FriendIDs: []uint{bob.ID},
	})
	require.NoError(t, err)
	assert.False(t, story.ID.IsZero())
	assert.True(t, story.ExpiresAt.After(story.CreatedAt))

	events := fx.emitter.ofKind(notifier.KindStoryMention)
	require.Len(t, events, 1)
	assert.Equal(t, bob.ID, events[0].TargetUserID)
	assert.Equal(t, alice.ID, events[0].ActorUserID)
}

func TestFriendFeed(t *testing.T) {
	fx := newStoryFixture(t)
	alice := seedUser(t, fx.db, "alice")
	bob := seedUser(t, fx.db, "bob")
	carol := seedUser(t, fx.db, "carol")
	fx.befriend(t, alice.ID, bob.ID)

	_, err := fx.service.CreateStory(context.Background(), alice.ID, &models.CreateStoryRequest{Content: "from alice"})
	require.NoError(t, err)
	_, err = fx.service.CreateStory(context.Background(), carol.ID, &models.CreateStoryRequest{Content: "from carol"})
	require.NoError(t, err)

	// bob's feed holds alice's story, not the stranger's
	stories, seen, err := fx.service.FriendFeed(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, alice.ID, stories[0].UserID)
	assert.Empty(t, seen)

	require.NoError(t, fx.service.MarkSeen(context.Background(), bob.ID, stories[0].ID.Hex()))

	_, seen, err = fx.service.FriendFeed(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.True(t, seen[stories[0].ID.Hex()])
}

func TestMarkSeenUnknownStory(t *testing.T) {
	fx := newStoryFixture(t)
	bob := seedUser(t, fx.db, "bob")

	err := fx.service.MarkSeen(context.Background(), bob.ID, "000000000000000000000000")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
