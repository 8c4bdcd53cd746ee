package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/campusboard/backend/pkg/router"
	"github.com/campusboard/backend/pkg/xcontext"
)

type AccessTokenResponse interface {
	AccessTokenInfo() string
}

// AccessTokenRevoker is implemented by responses after which the client must
// drop its access token, e.g. a deleted account.
type AccessTokenRevoker interface {
	RevokesAccessToken() bool
}

// HandleSetAccessToken keeps the access token cookie in sync with the
// response: it is set when the response carries a token and expired when the
// response revokes it.
func HandleSetAccessToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		switch resp := xcontext.Response(ctx).(type) {
		case AccessTokenResponse:
			setAccessTokenCookie(ctx, resp.AccessTokenInfo(), xcontext.Configs(ctx).Auth.AccessToken.Expiration)
		case AccessTokenRevoker:
			if resp.RevokesAccessToken() {
				setAccessTokenCookie(ctx, "", -1)
			}
		}

		return nil, nil
	}
}

// setAccessTokenCookie expires the cookie when ttl is negative.
func setAccessTokenCookie(ctx context.Context, value string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     xcontext.Configs(ctx).Auth.AccessToken.Name,
		Value:    value,
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if ttl < 0 {
		cookie.MaxAge = -1
	} else {
		cookie.Expires = time.Now().Add(ttl)
		cookie.MaxAge = int(ttl.Seconds())
	}

	http.SetCookie(xcontext.HTTPWriter(ctx), cookie)
}
