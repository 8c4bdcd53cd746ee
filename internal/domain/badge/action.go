package badge

import (
	"context"

	"github.com/campusboard/backend/internal/entity"
)

// actionBadgeScanner grants its badge whenever the triggering action matches.
type actionBadgeScanner struct {
	name   string
	action entity.PointAction
}

func NewFirstPostBadgeScanner() *actionBadgeScanner {
	return &actionBadgeScanner{name: FirstPostBadgeName, action: entity.PointActionPostCreated}
}

func NewCircleLeaderBadgeScanner() *actionBadgeScanner {
	return &actionBadgeScanner{name: CircleLeaderBadgeName, action: entity.PointActionCircleCreated}
}

func (s *actionBadgeScanner) Name() string {
	return s.name
}

func (s *actionBadgeScanner) Scan(_ context.Context, input ScanInput) (bool, error) {
	return input.Action == s.action, nil
}
