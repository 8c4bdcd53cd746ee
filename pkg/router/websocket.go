package router

import (
	"context"
	"net/http"

	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/ws"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/gorilla/websocket"
)

type WebsocketHandler func(ctx context.Context, c *ws.Client) error

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Websocket upgrades the connection after every Before middleware passed and
// hands it to handler, which owns it until it returns.
func Websocket(r *Router, pattern string, handler WebsocketHandler) {
	befores, closers := r.befores, r.closers
	r.handle(http.MethodGet, pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := r.newRequestContext(w, req)
		defer func() {
			for _, c := range closers {
				c(ctx)
			}
		}()

		ctx = runMiddlewares(ctx, befores)
		if xcontext.Error(ctx) != nil {
			writeResponse(ctx)
			return
		}

		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot upgrade websocket: %v", err)
			ctx = xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Cannot upgrade websocket"))
			return
		}

		client := ws.NewClient(conn)
		defer client.Close()

		if err := handler(ctx, client); err != nil {
			ctx = xcontext.WithError(ctx, err)
		}
	})
}
