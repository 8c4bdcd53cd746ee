package notification

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/campusboard/backend/internal/domain/notification/event"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/ws"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
)

// Hub keeps the live websocket sessions of every connected user.
type Hub struct {
	userHubs *xsync.MapOf[string, *UserHub]

	// mutex makes joining and dropping an empty user hub one step, Push only
	// loads and does not take it.
	mutex sync.Mutex
}

func NewHub() *Hub {
	return &Hub{userHubs: xsync.NewMapOf[*UserHub]()}
}

func (h *Hub) Join(userID string) *UserSession {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	hub, _ := h.userHubs.LoadOrCompute(userID, func() *UserHub { return NewUserHub(userID) })
	session := NewUserSession(userID)
	session.JoinUser(hub)
	return session
}

func (h *Hub) Leave(session *UserSession) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	hub := session.joinedUserHub
	session.Leave()

	if hub != nil && hub.IsEmpty() {
		h.userHubs.Delete(hub.userID)
	}
}

// Push returns the number of sessions that received ev.
func (h *Hub) Push(userID string, ev *event.EventRequest) int {
	hub, ok := h.userHubs.Load(userID)
	if !ok {
		return 0
	}

	return hub.Send(ev)
}

// ServeWebsocket streams the events of the request user to c until either
// side closes.
func (h *Hub) ServeWebsocket(ctx context.Context, c *ws.Client) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return errorx.New(errorx.Unauthenticated, "Need authenticated")
	}

	session := h.Join(userID)
	defer h.Leave(session)

	xcontext.Logger(ctx).Infof("User %s connected to notification", userID)
	var seq int64
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-c.Done():
			return nil

		case _, ok := <-c.R:
			// Clients have nothing to say, reading only detects the close.
			if !ok {
				return nil
			}

		case ev := <-session.C:
			seq++
			b, err := json.Marshal(event.Format(ev, seq))
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot marshal event: %v", err)
				continue
			}

			if err := c.Write(b, true); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot write event to user %s: %v", userID, err)
				return nil
			}
		}
	}
}
