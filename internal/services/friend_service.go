package services

import (
	"context"
	"fmt"

	"github.com/jitterapp/backend/internal/apperrors"
	"github.com/jitterapp/backend/internal/models"
	"github.com/jitterapp/backend/internal/notifier"
	"github.com/jitterapp/backend/internal/repositories"
)

// FriendService enforces the friend-request state machine. Each mutating
// operation validates, performs one atomic ledger write, and emits at most one
// notification event after the write commits. Emission is best-effort: the
// committed state change is the authoritative outcome either way.
type FriendService struct {
	friendships repositories.FriendshipRepository
	users       repositories.UserRepository
	blocks      repositories.BlockRepository
	emitter     notifier.Emitter
}

func NewFriendService(
	friendships repositories.FriendshipRepository,
	users repositories.UserRepository,
	blocks repositories.BlockRepository,
	emitter notifier.Emitter,
) *FriendService {
	return &FriendService{
		friendships: friendships,
		users:       users,
		blocks:      blocks,
		emitter:     emitter,
	}
}

// SendRequest creates a pending friend request from requester to requestee.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, requesteeID uint) (*models.FriendRequest, error) {
	if requesterID == requesteeID {
		return nil, apperrors.ErrSelfReference
	}

	active, err := s.users.IsActive(requesteeID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, fmt.Errorf("requestee %d: %w", requesteeID, apperrors.ErrNotFound)
	}

	blocked, err := s.blocks.IsBlockedEither(requesterID, requesteeID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, apperrors.ErrBlocked
	}

	// CreateRequest re-checks the pair state inside its transaction, so the
	// guards above are advisory; the ledger has the final word under races.
	req, err := s.friendships.CreateRequest(requesterID, requesteeID)
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, notifier.Event{
		Kind:         notifier.KindRequestReceived,
		TargetUserID: requesteeID,
		ActorUserID:  requesterID,
	})
	return req, nil
}

// AcceptRequest confirms the pending request (requesterID -> accepterID) into
// a mutual friendship.
func (s *FriendService) AcceptRequest(ctx context.Context, accepterID, requesterID uint) error {
	if err := s.friendships.AcceptRequest(requesterID, accepterID); err != nil {
		return err
	}
	s.emitter.Emit(ctx, notifier.Event{
		Kind:         notifier.KindRequestAccepted,
		TargetUserID: requesterID,
		ActorUserID:  accepterID,
	})
	return nil
}

// RejectRequest removes the pending request (requesterID -> rejecterID).
func (s *FriendService) RejectRequest(ctx context.Context, rejecterID, requesterID uint) error {
	if err := s.friendships.DeleteRequest(requesterID, rejecterID); err != nil {
		return err
	}
	s.emitter.Emit(ctx, notifier.Event{
		Kind:         notifier.KindRequestRejected,
		TargetUserID: requesterID,
		ActorUserID:  rejecterID,
	})
	return nil
}

// CancelRequest withdraws the requester's own pending request. A request
// withdrawn before anyone acted on it needs no notification.
func (s *FriendService) CancelRequest(_ context.Context, requesterID, requesteeID uint) error {
	return s.friendships.DeleteRequest(requesterID, requesteeID)
}

// Unfriend dissolves the friendship from either side.
func (s *FriendService) Unfriend(ctx context.Context, userID, friendID uint) error {
	if err := s.friendships.DeleteFriend(userID, friendID); err != nil {
		return err
	}
	s.emitter.Emit(ctx, notifier.Event{
		Kind:         notifier.KindUnfriended,
		TargetUserID: friendID,
		ActorUserID:  userID,
	})
	return nil
}

func (s *FriendService) IsFriend(userID, friendID uint) (bool, error) {
	return s.friendships.IsFriend(userID, friendID)
}

func (s *FriendService) GetFriends(userID uint, page, size int, search string) ([]models.Friend, int64, error) {
	return s.friendships.GetFriends(userID, page, size, search)
}

func (s *FriendService) GetRequestsSent(userID uint, page, size int) ([]models.FriendRequest, int64, error) {
	return s.friendships.GetRequestsSent(userID, page, size)
}

func (s *FriendService) GetRequestsReceived(userID uint, page, size int) ([]models.FriendRequest, int64, error) {
	return s.friendships.GetRequestsReceived(userID, page, size)
}

// RelationshipStatus reports the pair state as seen by viewerID.
func (s *FriendService) RelationshipStatus(viewerID, subjectID uint) (*models.RelationshipStatus, error) {
	return s.friendships.RelationshipStatus(viewerID, subjectID)
}

// SearchUsers lists users matching query, each row decorated with the
// relationship flags as seen by viewerID. The flags are computed fresh from
// the tables on every call, never cached on the user row.
func (s *FriendService) SearchUsers(viewerID uint, query string, page, size int) ([]models.UserView, int64, error) {
	users, total, err := s.users.SearchUsers(query, page, size)
	if err != nil {
		return nil, 0, err
	}

	views := make([]models.UserView, 0, len(users))
	for i := range users {
		view := models.UserView{User: users[i]}
		if users[i].ID != viewerID {
			status, err := s.friendships.RelationshipStatus(viewerID, users[i].ID)
			if err != nil {
				return nil, 0, err
			}
			blocked, err := s.blocks.IsBlocked(viewerID, users[i].ID)
			if err != nil {
				return nil, 0, err
			}
			view.IsFriend = status.IsFriend
			view.IsFriendRequestSent = status.RequestSent
			view.IsFriendRequestReceived = status.RequestReceived
			view.IsBlocked = blocked
		}
		views = append(views, view)
	}
	return views, total, nil
}
