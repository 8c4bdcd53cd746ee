package middleware

import (
	"context"
	"net/http"

	"github.com/campusboard/backend/pkg/router"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/gorilla/sessions"
)

type SessionResponse interface {
	SessionInfo() map[string]any
}

// HandleSaveSession copies the session values of a response into the signed
// session cookie. The cookie lives as long as an access token.
func HandleSaveSession() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		sessionResp, ok := xcontext.Response(ctx).(SessionResponse)
		if !ok {
			return nil, nil
		}

		cfg := xcontext.Configs(ctx)
		req := xcontext.HTTPRequest(ctx)
		session, err := xcontext.SessionStore(ctx).Get(req, cfg.Session.Name)
		if err != nil {
			// A cookie signed with a rotated secret fails to decode, the new
			// session replaces it.
			xcontext.Logger(ctx).Debugf("Cannot decode session cookie: %v", err)
		}

		session.Options = &sessions.Options{
			Path:     "/",
			MaxAge:   int(cfg.Auth.AccessToken.Expiration.Seconds()),
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}

		for k, v := range sessionResp.SessionInfo() {
			session.Values[k] = v
		}

		if err := session.Save(req, xcontext.HTTPWriter(ctx)); err != nil {
			return nil, err
		}

		return nil, nil
	}
}
