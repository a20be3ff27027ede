package services

import (
	"context"
	"fmt"

	"github.com/jitterapp/backend/internal/apperrors"
	"github.com/jitterapp/backend/internal/models"
	"github.com/jitterapp/backend/internal/notifier"
	"github.com/jitterapp/backend/internal/repositories"
)

// StoryService owns 24h stories. Stories are visible to the author's friends;
// targeted stories additionally notify the listed friends.
type StoryService struct {
	stories     repositories.StoryRepository
	friendships repositories.FriendshipRepository
	users       repositories.UserRepository
	emitter     notifier.Emitter
}

func NewStoryService(
	stories repositories.StoryRepository,
	friendships repositories.FriendshipRepository,
	users repositories.UserRepository,
	emitter notifier.Emitter,
) *StoryService {
	return &StoryService{
		stories:     stories,
		friendships: friendships,
		users:       users,
		emitter:     emitter,
	}
}

// CreateStory posts a story. Targets are validated like anonymous jit targets:
// all of them, before any write.
func (s *StoryService) CreateStory(ctx context.Context, authorID uint, req *models.CreateStoryRequest) (*models.Story, error) {
	for _, friendID := range req.FriendIDs {
		if friendID == authorID {
			return nil, apperrors.ErrSelfTarget
		}
		exists, err := s.users.Exists(friendID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("target %d: %w", friendID, apperrors.ErrNotFound)
		}
	}

	story := &models.Story{
		UserID:    authorID,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		TargetIDs: req.FriendIDs,
	}
	if err := s.stories.CreateStory(ctx, story); err != nil {
		return nil, err
	}

	for _, friendID := range req.FriendIDs {
		s.emitter.Emit(ctx, notifier.Event{
			Kind:         notifier.KindStoryMention,
			TargetUserID: friendID,
			ActorUserID:  authorID,
			Payload:      req.Content,
		})
	}
	return story, nil
}

// FriendFeed returns the unexpired stories of the viewer's friends, flagged
// with whether the viewer has seen each one.
func (s *StoryService) FriendFeed(ctx context.Context, viewerID uint) ([]models.Story, map[string]bool, error) {
	friends, _, err := s.friendships.GetFriends(viewerID, 0, 1000, "")
	if err != nil {
		return nil, nil, err
	}
	friendIDs := make([]uint, 0, len(friends)+1)
	for _, f := range friends {
		friendIDs = append(friendIDs, f.FriendID)
	}
	friendIDs = append(friendIDs, viewerID)

	stories, err := s.stories.GetStoriesByUserIDs(ctx, friendIDs)
	if err != nil {
		return nil, nil, err
	}

	storyIDs := make([]string, 0, len(stories))
	for _, story := range stories {
		storyIDs = append(storyIDs, story.ID.Hex())
	}
	seen, err := s.stories.GetSeenStoryIDs(viewerID, storyIDs)
	if err != nil {
		return nil, nil, err
	}
	return stories, seen, nil
}

// MarkSeen records that the viewer watched the story.
func (s *StoryService) MarkSeen(ctx context.Context, viewerID uint, storyID string) error {
	if _, err := s.stories.GetStoryByID(ctx, storyID); err != nil {
		return err
	}
	return s.stories.MarkSeen(storyID, viewerID)
}

// PurgeExpired removes stories past their 24h window.
func (s *StoryService) PurgeExpired(ctx context.Context) error {
	return s.stories.DeleteExpiredStories(ctx)
}
