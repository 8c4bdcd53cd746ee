package badge

import (
	"context"

	"github.com/campusboard/backend/internal/entity"
)

// ScanInput describes the point-earning action that triggered a scan.
type ScanInput struct {
	UserID string
	Action entity.PointAction

	// NextPoints is the user's point total after the action.
	NextPoints int64
}

type BadgeScanner interface {
	// Name returns the name of badge.
	Name() string

	// Scan reports whether the user qualifies for the badge.
	Scan(ctx context.Context, input ScanInput) (bool, error)
}
