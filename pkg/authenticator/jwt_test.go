package authenticator_test

import (
	"testing"
	"time"

	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/pkg/authenticator"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func TestTokenEngine_RoundTrip(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, model.AccessToken{ID: "user1"})
	require.NoError(t, err)

	var got model.AccessToken
	require.NoError(t, engine.Verify(token, &got))
	require.Equal(t, "user1", got.ID)
}

func TestTokenEngine_Rejects(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")

	expired, err := engine.Generate(-time.Minute, model.AccessToken{ID: "user1"})
	require.NoError(t, err)

	otherSecret, err := authenticator.NewTokenEngine("other").Generate(time.Minute, model.AccessToken{ID: "user1"})
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	var got model.AccessToken
	require.ErrorIs(t, engine.Verify(expired, &got), authenticator.ErrTokenExpired)
	require.Error(t, engine.Verify(otherSecret, &got))
	require.Error(t, engine.Verify(foreign, &got))
	require.Error(t, engine.Verify("not-a-token", &got))
	require.Empty(t, got.ID)
}
