package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/testutil"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestIdentify(t *testing.T) {
	ctx := testutil.MockContext()
	token, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration, model.AccessToken{ID: testutil.User1.ID})
	require.NoError(t, err)

	bearer := httptest.NewRequest(http.MethodGet, "/", nil)
	bearer.Header.Set("Authorization", "Bearer "+token)

	cookie := httptest.NewRequest(http.MethodGet, "/", nil)
	cookie.AddCookie(&http.Cookie{Name: xcontext.Configs(ctx).Auth.AccessToken.Name, Value: token})

	invalid := httptest.NewRequest(http.MethodGet, "/", nil)
	invalid.Header.Set("Authorization", "Bearer garbage")

	testCases := []struct {
		name   string
		req    *http.Request
		userID string
	}{
		{name: "bearer", req: bearer, userID: testutil.User1.ID},
		{name: "cookie", req: cookie, userID: testutil.User1.ID},
		{name: "invalid", req: invalid},
		{name: "anonymous", req: httptest.NewRequest(http.MethodGet, "/", nil)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reqCtx := xcontext.WithHTTPRequest(ctx, tc.req)
			newCtx, err := Identify()(reqCtx)
			require.NoError(t, err)
			if newCtx == nil {
				newCtx = reqCtx
			}

			require.Equal(t, tc.userID, xcontext.RequestUserID(newCtx))

			_, err = Authenticate()(newCtx)
			if tc.userID == "" {
				require.True(t, errorx.Is(err, errorx.Unauthenticated))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestHandleSetAccessToken(t *testing.T) {
	ctx := testutil.MockContext()
	w := httptest.NewRecorder()
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithHTTPRequest(ctx, httptest.NewRequest(http.MethodPost, "/login", nil))
	ctx = xcontext.WithResponse(ctx, &model.LoginResponse{AccessToken: "token"})

	_, err := HandleSetAccessToken()(ctx)
	require.NoError(t, err)

	_, err = HandleSaveSession()(ctx)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	names := []string{}
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	require.Contains(t, names, "access_token")
	require.Contains(t, names, "campusboard_session")
}

func TestHandleSetAccessToken_Revoke(t *testing.T) {
	ctx := testutil.MockContext()
	w := httptest.NewRecorder()
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithResponse(ctx, &model.DeleteAccountResponse{})

	_, err := HandleSetAccessToken()(ctx)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "access_token", cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}
