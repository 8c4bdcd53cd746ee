package point

import (
	"context"
	"errors"

	"github.com/campusboard/backend/internal/common"
	"github.com/campusboard/backend/internal/domain/badge"
	"github.com/campusboard/backend/internal/domain/notification"
	"github.com/campusboard/backend/internal/domain/notification/event"
	"github.com/campusboard/backend/internal/domain/statistic"
	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Points granted per action.
var Values = map[entity.PointAction]int64{
	entity.PointActionPostCreated:    5,
	entity.PointActionThanksReceived: 2,
	entity.PointActionBestAnswer:     10,
	entity.PointActionCircleCreated:  20,
}

type Engine interface {
	// AddPoints credits points to the user and appends one history row in a
	// single transaction. Badges and the leaderboard are updated afterwards on
	// a best-effort basis.
	AddPoints(ctx context.Context, userID string, action entity.PointAction, points int64, refID string) error
}

type engine struct {
	userRepo         repository.UserRepository
	pointHistoryRepo repository.PointHistoryRepository
	badgeManager     *badge.Manager
	leaderboard      statistic.Leaderboard
	emitter          notification.Emitter
}

func NewEngine(
	userRepo repository.UserRepository,
	pointHistoryRepo repository.PointHistoryRepository,
	badgeManager *badge.Manager,
	leaderboard statistic.Leaderboard,
	emitter notification.Emitter,
) *engine {
	return &engine{
		userRepo:         userRepo,
		pointHistoryRepo: pointHistoryRepo,
		badgeManager:     badgeManager,
		leaderboard:      leaderboard,
		emitter:          emitter,
	}
}

func (e *engine) AddPoints(
	ctx context.Context, userID string, action entity.PointAction, points int64, refID string,
) error {
	var user *entity.User
	history := &entity.PointHistory{
		Base:   entity.Base{ID: uuid.NewString()},
		UserID: userID,
		Action: action,
		Points: points,
		RefID:  refID,
	}

	err := xcontext.RunTransaction(ctx, func(ctx context.Context) error {
		if err := e.userRepo.IncreasePoints(ctx, userID, points); err != nil {
			return err
		}

		var err error
		user, err = e.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		history.UniversityID = user.UniversityID
		return e.pointHistoryRepo.Create(ctx, history)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot add %d points of %s to user %s: %v", points, action, userID, err)
		return errorx.Unknown
	}

	if points > 0 {
		common.PromCounters[common.PointsAwardedTotal].WithLabelValues(string(action)).Add(float64(points))
	}

	e.giveBadges(ctx, user, action)

	if e.leaderboard != nil {
		err := e.leaderboard.ChangePointLeaderboard(ctx, points, history.CreatedAt, userID, user.UniversityID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot change leaderboard of user %s: %v", userID, err)
		}
	}

	return nil
}

func (e *engine) giveBadges(ctx context.Context, user *entity.User, action entity.PointAction) {
	if e.badgeManager == nil {
		return
	}

	newBadges, err := e.badgeManager.WithBadges(e.badgeManager.GetAllBadgeNames()...).
		ScanAndGive(ctx, badge.ScanInput{
			UserID:     user.ID,
			Action:     action,
			NextPoints: user.Points,
		})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot scan badges of user %s: %v", user.ID, err)
		return
	}

	for _, b := range newBadges {
		common.PromCounters[common.BadgesAwardedTotal].WithLabelValues(b).Inc()
		if e.emitter != nil {
			e.emitter.Emit(ctx, user.ID, event.BadgeEarnedEvent{Badge: b})
		}
	}
}
