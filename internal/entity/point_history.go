package entity

import "github.com/campusboard/backend/pkg/enum"

type PointAction string

var (
	PointActionPostCreated    = enum.New(PointAction("post_created"), "post_created")
	PointActionThanksReceived = enum.New(PointAction("thanks_received"), "thanks_received")
	PointActionBestAnswer     = enum.New(PointAction("best_answer"), "best_answer")
	PointActionCircleCreated  = enum.New(PointAction("circle_created"), "circle_created")
)

// PointHistory is an append-only audit row of one point-earning action.
type PointHistory struct {
	Base
	UserID       string      `gorm:"index:idx_point_histories_user_action;size:64"`
	Action       PointAction `gorm:"index:idx_point_histories_user_action;size:32"`
	UniversityID string      `gorm:"index;size:64"`
	Points       int64
	RefID        string `gorm:"size:64"`
}
