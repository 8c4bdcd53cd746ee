package middleware

import (
	"context"
	"errors"

	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
)

// requestStatus names the outcome of a request: "OK", the signal of an
// errorx code, or "INTERNAL" for any other error.
func requestStatus(ctx context.Context) (string, bool) {
	err := xcontext.Error(ctx)
	if err == nil {
		return "OK", false
	}

	var errx errorx.Error
	if errors.As(err, &errx) {
		return errx.Code.Signal(), false
	}

	return "INTERNAL", true
}
