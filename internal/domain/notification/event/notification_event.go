package event

import (
	"fmt"

	"github.com/campusboard/backend/internal/entity"
)

// Notifiable events are persisted as a notification row of their receiver.
type Notifiable interface {
	Event
	Notification(to string) *entity.Notification
}

type FollowedEvent struct {
	ActorID   string `structs:"actor_id" mapstructure:"actor_id"`
	ActorName string `structs:"actor_name" mapstructure:"actor_name"`
}

func (FollowedEvent) Op() string {
	return "followed"
}

func (e FollowedEvent) Notification(to string) *entity.Notification {
	return &entity.Notification{
		UserID:  to,
		Type:    entity.NotificationFollowed,
		ActorID: e.ActorID,
		RefID:   e.ActorID,
		Message: fmt.Sprintf("%s started following you", e.ActorName),
	}
}

type ThankedEvent struct {
	ActorID   string `structs:"actor_id" mapstructure:"actor_id"`
	ActorName string `structs:"actor_name" mapstructure:"actor_name"`
	PostID    string `structs:"post_id" mapstructure:"post_id"`
}

func (ThankedEvent) Op() string {
	return "thanked"
}

func (e ThankedEvent) Notification(to string) *entity.Notification {
	return &entity.Notification{
		UserID:  to,
		Type:    entity.NotificationThanked,
		ActorID: e.ActorID,
		RefID:   e.PostID,
		Message: fmt.Sprintf("%s thanked your post", e.ActorName),
	}
}

type BestAnswerEvent struct {
	ActorID string `structs:"actor_id" mapstructure:"actor_id"`
	BoardID string `structs:"board_id" mapstructure:"board_id"`
	PostID  string `structs:"post_id" mapstructure:"post_id"`
}

func (BestAnswerEvent) Op() string {
	return "best_answer"
}

func (e BestAnswerEvent) Notification(to string) *entity.Notification {
	return &entity.Notification{
		UserID:  to,
		Type:    entity.NotificationBestAnswer,
		ActorID: e.ActorID,
		RefID:   e.PostID,
		Message: "Your post was selected as the best answer",
	}
}

type BadgeEarnedEvent struct {
	Badge string `structs:"badge" mapstructure:"badge"`
}

func (BadgeEarnedEvent) Op() string {
	return "badge_earned"
}

func (e BadgeEarnedEvent) Notification(to string) *entity.Notification {
	return &entity.Notification{
		UserID:  to,
		Type:    entity.NotificationBadgeEarned,
		RefID:   e.Badge,
		Message: fmt.Sprintf("You earned the %s badge", e.Badge),
	}
}

// MessageEvent carries the message id as a string, snowflake ids do not
// survive a round trip through a json number.
type MessageEvent struct {
	ActorID   string `structs:"actor_id" mapstructure:"actor_id"`
	ActorName string `structs:"actor_name" mapstructure:"actor_name"`
	ChatID    string `structs:"chat_id" mapstructure:"chat_id"`
	MessageID string `structs:"message_id" mapstructure:"message_id"`
	Text      string `structs:"text" mapstructure:"text"`
}

func (MessageEvent) Op() string {
	return "message"
}

func (e MessageEvent) Notification(to string) *entity.Notification {
	return &entity.Notification{
		UserID:  to,
		Type:    entity.NotificationMessage,
		ActorID: e.ActorID,
		RefID:   e.ChatID,
		Message: fmt.Sprintf("%s: %s", e.ActorName, e.Text),
	}
}
