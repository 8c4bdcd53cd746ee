package middleware

import (
	"context"
	"strings"

	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/router"
	"github.com/campusboard/backend/pkg/xcontext"
)

// Identify sets the request user from the bearer token, the access token
// cookie or the session, in that order. Anonymous requests pass through.
func Identify() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if token := accessToken(ctx); token != "" {
			var info model.AccessToken
			if err := xcontext.TokenEngine(ctx).Verify(token, &info); err == nil && info.ID != "" {
				return xcontext.WithRequestUserID(ctx, info.ID), nil
			}

			xcontext.Logger(ctx).Debugf("Invalid access token")
		}

		if userID := sessionUserID(ctx); userID != "" {
			return xcontext.WithRequestUserID(ctx, userID), nil
		}

		return nil, nil
	}
}

// Authenticate rejects requests without a request user.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return nil, nil
	}
}

func accessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	authorization := req.Header.Get("Authorization")
	if auth, token, found := strings.Cut(authorization, " "); found {
		if auth == "Bearer" {
			return token
		}

		return ""
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func sessionUserID(ctx context.Context) string {
	store := xcontext.SessionStore(ctx)
	if store == nil {
		return ""
	}

	session, err := store.Get(xcontext.HTTPRequest(ctx), xcontext.Configs(ctx).Session.Name)
	if err != nil {
		return ""
	}

	userID, _ := session.Values["user_id"].(string)
	return userID
}
