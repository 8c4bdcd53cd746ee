package middleware

import (
	"context"
	"time"

	"github.com/campusboard/backend/pkg/router"
	"github.com/campusboard/backend/pkg/xcontext"
)

// Logger writes one line per request. Expected failures are warnings, the
// rest are errors with their cause.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		elapsed := time.Since(xcontext.StartTime(ctx)).Round(time.Microsecond)
		status, unexpected := requestStatus(ctx)
		userID := xcontext.RequestUserID(ctx)

		switch {
		case unexpected:
			xcontext.Logger(ctx).Errorf("%s %s | %s | user=%s | %s | %v",
				req.Method, req.URL.Path, status, userID, elapsed, xcontext.Error(ctx))
		case status != "OK":
			xcontext.Logger(ctx).Warnf("%s %s | %s | user=%s | %s",
				req.Method, req.URL.Path, status, userID, elapsed)
		default:
			xcontext.Logger(ctx).Infof("%s %s | %s | user=%s | %s",
				req.Method, req.URL.Path, status, userID, elapsed)
		}
	}
}
