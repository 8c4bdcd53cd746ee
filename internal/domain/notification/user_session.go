package notification

import (
	"github.com/campusboard/backend/internal/domain/notification/event"
	"github.com/google/uuid"
)

type UserSession struct {
	C chan *event.EventRequest

	id            string
	userID        string
	joinedUserHub *UserHub
}

func NewUserSession(userID string) *UserSession {
	return &UserSession{
		C:      make(chan *event.EventRequest, 16),
		id:     uuid.NewString(),
		userID: userID,
	}
}

func (s *UserSession) JoinUser(hub *UserHub) {
	hub.register(s)
	s.joinedUserHub = hub
}

func (s *UserSession) Leave() {
	if s.joinedUserHub != nil {
		s.joinedUserHub.unregister(s)
		s.joinedUserHub = nil
	}
}
