package notification

import (
	"sync"

	"github.com/campusboard/backend/internal/domain/notification/event"
)

// UserHub fans the events of one user out to every session the user has
// opened.
type UserHub struct {
	userID       string
	userSessions map[string]*UserSession

	mutex sync.RWMutex
}

func NewUserHub(userID string) *UserHub {
	return &UserHub{
		userID:       userID,
		userSessions: make(map[string]*UserSession),
	}
}

// Send never blocks on a slow session, the event is dropped for that session
// when its buffer is full.
func (h *UserHub) Send(ev *event.EventRequest) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	delivered := 0
	for _, s := range h.userSessions {
		select {
		case s.C <- ev:
			delivered++
		default:
		}
	}

	return delivered
}

func (h *UserHub) register(session *UserSession) {
	h.mutex.RLock()
	_, ok := h.userSessions[session.id]
	h.mutex.RUnlock()
	if ok {
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	// Double check.
	if _, ok := h.userSessions[session.id]; !ok {
		h.userSessions[session.id] = session
	}
}

func (h *UserHub) unregister(session *UserSession) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.userSessions, session.id)
}

func (h *UserHub) IsEmpty() bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.userSessions) == 0
}
