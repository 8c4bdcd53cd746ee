package model

import (
	"database/sql"
	"time"

	"github.com/campusboard/backend/internal/entity"
	"golang.org/x/exp/slices"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(time.RFC3339Nano)
}

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}

	return formatTime(t.Time)
}

// ConvertUser hides the email unless includeSensitive is set. viewerID is
// used to fill IsFollowing and may be empty.
func ConvertUser(user *entity.User, viewerID string, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	u := User{
		ID:             user.ID,
		Name:           user.Name,
		AvatarURL:      user.AvatarURL,
		UniversityID:   user.UniversityID,
		Department:     user.Department,
		Year:           user.Year,
		Bio:            user.Bio,
		Points:         user.Points,
		Badges:         []string(user.Badges),
		FollowerCount:  len(user.Followers),
		FollowingCount: len(user.Following),
		IsFollowing:    viewerID != "" && slices.Contains(user.Followers, viewerID),
		CreatedAt:      formatTime(user.CreatedAt),
	}

	if u.Badges == nil {
		u.Badges = []string{}
	}

	if includeSensitive {
		u.Email = user.Email
	}

	return u
}

func ConvertShortUser(user *entity.User) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{ID: user.ID, Name: user.Name, AvatarURL: user.AvatarURL}
}

func ConvertBoard(board *entity.Board, creator ShortUser) Board {
	if board == nil {
		return Board{}
	}

	return Board{
		ID:               board.ID,
		UniversityID:     board.UniversityID,
		Title:            board.Title,
		Description:      board.Description,
		Department:       board.Department,
		Year:             board.Year,
		CircleID:         board.CircleID.String,
		CreatedBy:        creator,
		ImageURL:         board.ImageURL,
		PostCount:        board.PostCount,
		LatestPostAt:     formatNullTime(board.LatestPostAt),
		BestAnswerPostID: board.BestAnswerPostID.String,
		CreatedAt:        formatTime(board.CreatedAt),
	}
}

func ConvertPost(post *entity.Post, author ShortUser) Post {
	if post == nil {
		return Post{}
	}

	return Post{
		ID:          post.ID,
		BoardID:     post.BoardID,
		Author:      author,
		Text:        post.Text,
		ImageURL:    post.ImageURL,
		ThanksCount: post.ThanksCount,
		CreatedAt:   formatTime(post.CreatedAt),
	}
}

func ConvertCircle(circle *entity.Circle, creator ShortUser, isMember bool) Circle {
	if circle == nil {
		return Circle{}
	}

	return Circle{
		ID:              circle.ID,
		UniversityID:    circle.UniversityID,
		Name:            circle.Name,
		Description:     circle.Description,
		Category:        circle.Category,
		Schedule:        circle.Schedule,
		CreatedBy:       creator,
		ImageURL:        circle.ImageURL,
		MemberCount:     circle.MemberCount,
		QuestionBoardID: circle.QuestionBoardID.String,
		IsMember:        isMember,
		CreatedAt:       formatTime(circle.CreatedAt),
	}
}

func ConvertChat(chat *entity.Chat, peer ShortUser, lastReadMessageID int64) Chat {
	if chat == nil {
		return Chat{}
	}

	return Chat{
		ID:              chat.ID,
		Peer:            peer,
		LastMessageID:   chat.LastMessageID,
		LastMessageText: chat.LastMessageText,
		LastSenderID:    chat.LastSenderID,
		LastMessageAt:   formatNullTime(chat.LastMessageAt),
		HasUnread:       chat.LastMessageID > lastReadMessageID,
	}
}

func ConvertChatMessage(msg *entity.ChatMessage) ChatMessage {
	if msg == nil {
		return ChatMessage{}
	}

	return ChatMessage{
		ID:        msg.ID,
		ChatID:    msg.ChatID,
		UserID:    msg.UserID,
		Text:      msg.Text,
		CreatedAt: formatTime(msg.CreatedAt),
	}
}

func ConvertNotification(n *entity.Notification) Notification {
	if n == nil {
		return Notification{}
	}

	return Notification{
		ID:        n.ID,
		Type:      string(n.Type),
		ActorID:   n.ActorID,
		RefID:     n.RefID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: formatTime(n.CreatedAt),
	}
}

func ConvertPointHistory(h *entity.PointHistory) PointHistory {
	if h == nil {
		return PointHistory{}
	}

	return PointHistory{
		ID:        h.ID,
		Action:    string(h.Action),
		Points:    h.Points,
		RefID:     h.RefID,
		CreatedAt: formatTime(h.CreatedAt),
	}
}
