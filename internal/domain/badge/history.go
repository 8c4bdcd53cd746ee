package badge

import (
	"context"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
)

// historyBadgeScanner grants its badge once the user's most recent history
// rows of an action reach a count. It looks at the history on every scan, not
// only when the triggering action matches, so an earlier missed grant is
// repaired by the next action of any kind.
type historyBadgeScanner struct {
	name             string
	action           entity.PointAction
	count            int
	pointHistoryRepo repository.PointHistoryRepository
}

func NewExpertBadgeScanner(pointHistoryRepo repository.PointHistoryRepository) *historyBadgeScanner {
	return &historyBadgeScanner{
		name:             ExpertBadgeName,
		action:           entity.PointActionBestAnswer,
		count:            ExpertBestAnswerCount,
		pointHistoryRepo: pointHistoryRepo,
	}
}

func NewHelperBadgeScanner(pointHistoryRepo repository.PointHistoryRepository) *historyBadgeScanner {
	return &historyBadgeScanner{
		name:             HelperBadgeName,
		action:           entity.PointActionThanksReceived,
		count:            HelperThanksCount,
		pointHistoryRepo: pointHistoryRepo,
	}
}

func (s *historyBadgeScanner) Name() string {
	return s.name
}

func (s *historyBadgeScanner) Scan(ctx context.Context, input ScanInput) (bool, error) {
	histories, err := s.pointHistoryRepo.GetRecentByAction(ctx, input.UserID, s.action, s.count)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get recent %s histories: %v", s.action, err)
		return false, errorx.Unknown
	}

	return len(histories) >= s.count, nil
}
