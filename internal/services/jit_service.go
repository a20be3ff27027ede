package services

import (
	"context"
	"fmt"

	"github.com/jitterapp/backend/internal/apperrors"
	"github.com/jitterapp/backend/internal/models"
	"github.com/jitterapp/backend/internal/notifier"
	"github.com/jitterapp/backend/internal/repositories"
)

// JitService owns jit creation and all viewer-scoped reads. Reads go through
// the visibility resolver; a jit the viewer may not see behaves exactly like
// a jit that does not exist.
type JitService struct {
	jits     repositories.JitRepository
	users    repositories.UserRepository
	resolver *VisibilityResolver
	emitter  notifier.Emitter
}

func NewJitService(
	jits repositories.JitRepository,
	users repositories.UserRepository,
	resolver *VisibilityResolver,
	emitter notifier.Emitter,
) *JitService {
	return &JitService{
		jits:     jits,
		users:    users,
		resolver: resolver,
		emitter:  emitter,
	}
}

// CreateJit posts a jit. A non-empty friendIDs list makes it anonymous to
// everyone but those targets. All targets are validated before anything is
// written, so one bad target rejects the whole jit.
func (s *JitService) CreateJit(ctx context.Context, authorID uint, content string, friendIDs []uint) (*models.Jit, error) {
	visibility := models.VisibilityPublic
	if len(friendIDs) > 0 {
		visibility = models.VisibilityAnonymous
		// duplicates collapse to one target; they would otherwise trip the
		// unique target index mid-transaction
		seen := make(map[uint]bool, len(friendIDs))
		unique := make([]uint, 0, len(friendIDs))
		for _, friendID := range friendIDs {
			if seen[friendID] {
				continue
			}
			seen[friendID] = true

			if friendID == authorID {
				return nil, apperrors.ErrSelfTarget
			}
			target, err := s.users.GetUserByID(friendID)
			if err != nil {
				return nil, fmt.Errorf("target %d: %w", friendID, err)
			}
			if target.BlockAnonymous {
				return nil, fmt.Errorf("target %d: %w", friendID, apperrors.ErrRecipientBlocksAnonymous)
			}
			unique = append(unique, friendID)
		}
		friendIDs = unique
	}

	jit := &models.Jit{
		UserID:     authorID,
		Content:    content,
		Visibility: visibility,
	}
	if err := s.jits.CreateJit(jit, friendIDs); err != nil {
		return nil, err
	}

	for _, friendID := range friendIDs {
		s.emitter.Emit(ctx, notifier.Event{
			Kind:         notifier.KindJitMention,
			TargetUserID: friendID,
			ActorUserID:  authorID,
			Payload:      content,
		})
	}
	return jit, nil
}

// GetJit returns the jit with per-viewer derived fields, or ErrNotFound when
// the jit does not exist or the viewer may not see it.
func (s *JitService) GetJit(viewerID, jitID uint) (*models.JitView, error) {
	jit, err := s.jits.GetJitByID(jitID)
	if err != nil {
		return nil, err
	}

	visible, err := s.resolver.CanView(viewerID, jit)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperrors.ErrNotFound
	}

	return s.buildView(viewerID, jit)
}

// ListJits returns the page of jits matching filter that the viewer may see.
func (s *JitService) ListJits(viewerID uint, filter models.JitFilter, page, size int) ([]models.JitView, int64, error) {
	jits, total, err := s.jits.ListVisible(viewerID, filter, page, size)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.buildViews(viewerID, jits)
	return views, total, err
}

func (s *JitService) ListLiked(viewerID uint, page, size int) ([]models.JitView, int64, error) {
	jits, total, err := s.jits.ListLiked(viewerID, page, size)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.buildViews(viewerID, jits)
	return views, total, err
}

func (s *JitService) ListFavorited(viewerID uint, page, size int) ([]models.JitView, int64, error) {
	jits, total, err := s.jits.ListFavorited(viewerID, page, size)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.buildViews(viewerID, jits)
	return views, total, err
}

// Like records a like by the viewer. The jit must be visible to them.
func (s *JitService) Like(viewerID, jitID uint) (*models.JitView, error) {
	if err := s.requireVisible(viewerID, jitID); err != nil {
		return nil, err
	}
	if err := s.jits.CreateLike(viewerID, jitID); err != nil {
		return nil, err
	}
	return s.GetJit(viewerID, jitID)
}

func (s *JitService) Unlike(viewerID, jitID uint) (*models.JitView, error) {
	if err := s.requireVisible(viewerID, jitID); err != nil {
		return nil, err
	}
	if err := s.jits.DeleteLike(viewerID, jitID); err != nil {
		return nil, err
	}
	return s.GetJit(viewerID, jitID)
}

func (s *JitService) Favorite(viewerID, jitID uint) (*models.JitView, error) {
	if err := s.requireVisible(viewerID, jitID); err != nil {
		return nil, err
	}
	if err := s.jits.CreateFavorite(viewerID, jitID); err != nil {
		return nil, err
	}
	return s.GetJit(viewerID, jitID)
}

func (s *JitService) Unfavorite(viewerID, jitID uint) (*models.JitView, error) {
	if err := s.requireVisible(viewerID, jitID); err != nil {
		return nil, err
	}
	if err := s.jits.DeleteFavorite(viewerID, jitID); err != nil {
		return nil, err
	}
	return s.GetJit(viewerID, jitID)
}

// Reply posts a reply to a jit visible to the viewer.
func (s *JitService) Reply(viewerID, jitID uint, content string) (*models.JitReply, error) {
	if err := s.requireVisible(viewerID, jitID); err != nil {
		return nil, err
	}
	reply := &models.JitReply{JitID: jitID, UserID: viewerID, Content: content}
	if err := s.jits.CreateReply(reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *JitService) ListReplies(viewerID, jitID uint, page, size int) ([]models.JitReply, int64, error) {
	if err := s.requireVisible(viewerID, jitID); err != nil {
		return nil, 0, err
	}
	return s.jits.ListReplies(jitID, page, size)
}

func (s *JitService) requireVisible(viewerID, jitID uint) error {
	jit, err := s.jits.GetJitByID(jitID)
	if err != nil {
		return err
	}
	visible, err := s.resolver.CanView(viewerID, jit)
	if err != nil {
		return err
	}
	if !visible {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *JitService) buildView(viewerID uint, jit *models.Jit) (*models.JitView, error) {
	stats, err := s.jits.Stats(jit.ID, viewerID)
	if err != nil {
		return nil, err
	}
	return &models.JitView{
		Jit:           *jit,
		LikeCount:     stats.LikeCount,
		FavoriteCount: stats.FavoriteCount,
		ReplyCount:    stats.ReplyCount,
		Liked:         stats.Liked,
		Favorited:     stats.Favorited,
		Replied:       stats.Replied,
	}, nil
}

func (s *JitService) buildViews(viewerID uint, jits []models.Jit) ([]models.JitView, error) {
	views := make([]models.JitView, 0, len(jits))
	for i := range jits {
		view, err := s.buildView(viewerID, &jits[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}
