package services

import (
	"github.com/jitterapp/backend/internal/models"
	"github.com/jitterapp/backend/internal/repositories"
)

// VisibilityResolver decides whether a viewer may read a jit. It is stateless;
// every answer is computed from the tables at call time.
type VisibilityResolver struct {
	blocks repositories.BlockRepository
}

func NewVisibilityResolver(blocks repositories.BlockRepository) *VisibilityResolver {
	return &VisibilityResolver{blocks: blocks}
}

// CanView applies the visibility rules in order: author always sees own jits;
// a block by the author is a hard veto regardless of mode; public jits are
// visible to everyone else; anonymous jits only to their listed targets.
func (v *VisibilityResolver) CanView(viewerID uint, jit *models.Jit) (bool, error) {
	if jit.UserID == viewerID {
		return true, nil
	}

	blocked, err := v.blocks.IsBlocked(jit.UserID, viewerID)
	if err != nil {
		return false, err
	}
	if blocked {
		return false, nil
	}

	switch jit.Visibility {
	case models.VisibilityPublic:
		return true, nil
	case models.VisibilityAnonymous:
		for _, target := range jit.Targets {
			if target.UserID == viewerID {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, nil
	}
}
