package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/campusboard/backend/config"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/router"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name" validate:"required"`
	Limit int    `json:"limit"`
}

type echoResponse struct {
	Name   string `json:"name"`
	Limit  int    `json:"limit"`
	UserID string `json:"user_id"`
}

type body struct {
	Code  int64           `json:"code"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "forbidden" {
		return nil, errorx.New(errorx.PermissionDenied, "No")
	}

	return &echoResponse{Name: req.Name, Limit: req.Limit, UserID: xcontext.RequestUserID(ctx)}, nil
}

func newServer() http.Handler {
	r := router.New(context.Background())
	r.Before(func(ctx context.Context) (context.Context, error) {
		return xcontext.WithRequestUserID(ctx, "user1"), nil
	})

	router.GET(r, "/echo", echo)
	router.POST(r, "/echo", echo)

	return r.Handler(config.ServerConfigs{AllowOrigins: []string{"*"}})
}

func do(t *testing.T, req *http.Request) body {
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var b body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	return b
}

func TestRouter_GET(t *testing.T) {
	b := do(t, httptest.NewRequest(http.MethodGet, "/echo?name=alice&limit=5", nil))
	require.Equal(t, int64(0), b.Code)

	var resp echoResponse
	require.NoError(t, json.Unmarshal(b.Data, &resp))
	require.Equal(t, echoResponse{Name: "alice", Limit: 5, UserID: "user1"}, resp)
}

func TestRouter_POST(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"bob"}`))
	req.Header.Set("Content-Type", "application/json")
	b := do(t, req)
	require.Equal(t, int64(0), b.Code)

	var resp echoResponse
	require.NoError(t, json.Unmarshal(b.Data, &resp))
	require.Equal(t, "bob", resp.Name)
}

func TestRouter_Validation(t *testing.T) {
	b := do(t, httptest.NewRequest(http.MethodGet, "/echo?limit=5", nil))
	require.Equal(t, int64(errorx.BadRequest), b.Code)
	require.Equal(t, "BAD_REQUEST", b.Error)
}

func TestRouter_HandlerError(t *testing.T) {
	b := do(t, httptest.NewRequest(http.MethodGet, "/echo?name=forbidden", nil))
	require.Equal(t, int64(errorx.PermissionDenied), b.Code)
	require.Equal(t, "PERMISSION_DENIED", b.Error)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/echo", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
