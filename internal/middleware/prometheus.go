package middleware

import (
	"context"
	"time"

	"github.com/campusboard/backend/internal/common"
	"github.com/campusboard/backend/pkg/router"
	"github.com/campusboard/backend/pkg/xcontext"
)

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		status, _ := requestStatus(ctx)

		common.PromCounters[common.HTTPRequestTotal].
			WithLabelValues(req.Method, req.URL.Path, status).
			Inc()
		common.PromHistograms[common.HTTPRequestDurationSeconds].
			WithLabelValues(req.Method, req.URL.Path).
			Observe(time.Since(xcontext.StartTime(ctx)).Seconds())
	}
}
