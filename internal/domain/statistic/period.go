package statistic

import (
	"fmt"
	"time"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/enum"
)

// ParsePeriod accepts "week" or "month" and returns the window of that kind
// containing at.
func ParsePeriod(s string, at time.Time) (entity.LeaderboardPeriod, error) {
	kind, err := enum.ToEnum[entity.LeaderboardPeriodKind](s)
	if err != nil {
		return entity.LeaderboardPeriod{}, fmt.Errorf("expected week or month, but got %q", s)
	}

	return entity.LeaderboardPeriod{Kind: kind, At: at}, nil
}

func leaderboardKey(universityID string, period entity.LeaderboardPeriod) string {
	return fmt.Sprintf("leaderboard:%s:%s:%s", universityID, period.Kind, period.Key())
}
