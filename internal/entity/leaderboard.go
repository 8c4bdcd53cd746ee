package entity

import (
	"fmt"
	"time"

	"github.com/campusboard/backend/pkg/dateutil"
	"github.com/campusboard/backend/pkg/enum"
)

type LeaderboardPeriodKind string

var (
	LeaderboardWeek  = enum.New(LeaderboardPeriodKind("week"), "week")
	LeaderboardMonth = enum.New(LeaderboardPeriodKind("month"), "month")
)

// LeaderboardPeriodKinds lists the rankings every point is counted in.
var LeaderboardPeriodKinds = []LeaderboardPeriodKind{LeaderboardWeek, LeaderboardMonth}

// LeaderboardPeriod is the calendar week (monday first) or month containing
// At.
type LeaderboardPeriod struct {
	Kind LeaderboardPeriodKind
	At   time.Time
}

// Key names the window, "2023-W20" for ISO weeks and "2023-05" for months.
func (p LeaderboardPeriod) Key() string {
	if p.Kind == LeaderboardWeek {
		year, week := p.At.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}

	return p.At.Format("2006-01")
}

func (p LeaderboardPeriod) Start() time.Time {
	if p.Kind == LeaderboardWeek {
		return dateutil.CurrentWeek(p.At)
	}

	return dateutil.CurrentMonth(p.At)
}

func (p LeaderboardPeriod) End() time.Time {
	if p.Kind == LeaderboardWeek {
		return p.Start().AddDate(0, 0, 7)
	}

	return p.Start().AddDate(0, 1, 0)
}

// UserPoints is the aggregated points of a user within a period.
type UserPoints struct {
	UserID string
	Points int64
}
