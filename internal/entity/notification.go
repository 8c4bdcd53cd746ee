package entity

import "github.com/campusboard/backend/pkg/enum"

type NotificationType string

var (
	NotificationFollowed    = enum.New(NotificationType("followed"), "followed")
	NotificationThanked     = enum.New(NotificationType("thanked"), "thanked")
	NotificationBestAnswer  = enum.New(NotificationType("best_answer"), "best_answer")
	NotificationBadgeEarned = enum.New(NotificationType("badge_earned"), "badge_earned")
	NotificationMessage     = enum.New(NotificationType("message"), "message")
)

type Notification struct {
	Base
	UserID  string           `gorm:"index;size:64"`
	Type    NotificationType `gorm:"size:32"`
	ActorID string           `gorm:"size:64"`
	RefID   string           `gorm:"size:64"`
	Message string
	IsRead  bool `gorm:"default:false"`
}
