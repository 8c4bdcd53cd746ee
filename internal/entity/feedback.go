package entity

import "github.com/campusboard/backend/pkg/enum"

type FeedbackCategory string

var (
	FeedbackBug     = enum.New(FeedbackCategory("bug"), "bug")
	FeedbackFeature = enum.New(FeedbackCategory("feature"), "feature")
	FeedbackOther   = enum.New(FeedbackCategory("other"), "other")
)

type Feedback struct {
	Base
	UserID   string           `gorm:"index;size:64"`
	Category FeedbackCategory `gorm:"size:32"`
	Message  string
}
