package badge

import (
	"context"
	"errors"

	"github.com/campusboard/backend/internal/common"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Manager owns the badge scanners keyed by badge name. The map is filled by
// NewManager and only read afterwards.
type Manager struct {
	badgeScanners map[string]BadgeScanner
	userRepo      repository.UserRepository
}

func NewManager(userRepo repository.UserRepository, badgeScanners ...BadgeScanner) *Manager {
	manager := &Manager{
		userRepo:      userRepo,
		badgeScanners: make(map[string]BadgeScanner),
	}

	for _, b := range badgeScanners {
		manager.badgeScanners[b.Name()] = b
	}

	return manager
}

func (m *Manager) GetAllBadgeNames() []string {
	return common.MapKeys(m.badgeScanners)
}

func (m *Manager) WithBadges(badgeNames ...string) *contextManager {
	return &contextManager{
		manager:    m,
		badgeNames: badgeNames,
	}
}

type contextManager struct {
	manager    *Manager
	badgeNames []string
}

// ScanAndGive runs the scanners and unions every qualifying badge into the
// user's badge set. It returns the badges the user did not have before.
func (c *contextManager) ScanAndGive(ctx context.Context, input ScanInput) ([]string, error) {
	suitableBadges := []string{}
	for _, badgeName := range c.badgeNames {
		badgeScanner, ok := c.manager.badgeScanners[badgeName]
		if !ok {
			xcontext.Logger(ctx).Errorf("Not found badge name %s", badgeName)
			return nil, errorx.Unknown
		}

		ok, err := badgeScanner.Scan(ctx, input)
		if err != nil {
			return nil, err
		}

		if ok {
			suitableBadges = append(suitableBadges, badgeName)
		}
	}

	// No need to update if cannot scan any suitable badge.
	if len(suitableBadges) == 0 {
		return nil, nil
	}

	var newBadges []string
	err := xcontext.RunTransaction(ctx, func(ctx context.Context) error {
		user, err := c.manager.userRepo.GetByID(ctx, input.UserID)
		if err != nil {
			return err
		}

		before := len(user.Badges)
		badges, changed := common.Union(user.Badges, suitableBadges...)
		if !changed {
			newBadges = nil
			return nil
		}

		newBadges = badges[before:]
		user.Badges = badges
		return c.manager.userRepo.UpdateBadges(ctx, user)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot give badges to user %s: %v", input.UserID, err)
		return nil, errorx.Unknown
	}

	return newBadges, nil
}
