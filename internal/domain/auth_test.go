package domain

import (
	"database/sql"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/testutil"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

var tokenRegexp = regexp.MustCompile(`token=([^\s]+)`)

func newTestAuthDomain() (*authDomain, *testutil.MockEmailSender) {
	sender := &testutil.MockEmailSender{}
	return NewAuthDomain(repository.NewAccountRepository(), repository.NewUserRepository(), sender), sender
}

func tokenFromMail(t *testing.T, sender *testutil.MockEmailSender) string {
	require.NotEmpty(t, sender.Messages)
	match := tokenRegexp.FindStringSubmatch(sender.Messages[len(sender.Messages)-1].TextContent)
	require.Len(t, match, 2)

	token, err := url.QueryUnescape(match[1])
	require.NoError(t, err)
	return token
}

func Test_authDomain_RegisterVerifyLogin(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain, sender := newTestAuthDomain()

	resp, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "Dave@CS.kaist.ac.kr",
		Password: "correct horse",
		Name:     "Dave",
	})
	require.NoError(t, err)

	user, err := repository.NewUserRepository().GetByID(ctx, resp.UserID)
	require.NoError(t, err)
	require.Equal(t, testutil.KAIST.ID, user.UniversityID)
	require.Equal(t, "dave@cs.kaist.ac.kr", user.Email)

	_, err = domain.Login(ctx, &model.LoginRequest{Email: "dave@cs.kaist.ac.kr", Password: "correct horse"})
	require.True(t, errorx.Is(err, errorx.EmailNotVerified))

	_, err = domain.VerifyEmail(ctx, &model.VerifyEmailRequest{Token: tokenFromMail(t, sender)})
	require.NoError(t, err)

	login, err := domain.Login(ctx, &model.LoginRequest{Email: "dave@cs.kaist.ac.kr", Password: "correct horse"})
	require.NoError(t, err)
	require.Equal(t, resp.UserID, login.User.ID)

	var token model.AccessToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(login.AccessToken, &token))
	require.Equal(t, resp.UserID, token.ID)
}

func Test_authDomain_Register(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain, sender := newTestAuthDomain()

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Email: "eve@gmail.com", Password: "password1", Name: "Eve",
	})
	require.True(t, errorx.Is(err, errorx.EmailDomainNotAllowed))

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Email: testutil.User1.Email, Password: "password1", Name: "Alice",
	})
	require.True(t, errorx.Is(err, errorx.AlreadyExists))
	require.Empty(t, sender.Messages)
}

func Test_authDomain_VerifyEmail_Expired(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain, sender := newTestAuthDomain()

	resp, err := domain.Register(ctx, &model.RegisterRequest{
		Email: "frank@snu.ac.kr", Password: "password1", Name: "Frank",
	})
	require.NoError(t, err)

	require.NoError(t, xcontext.DB(ctx).Model(&entity.Account{}).Where("id=?", resp.UserID).
		Update("verification_expires_at", sql.NullTime{Valid: true, Time: time.Now().Add(-time.Minute)}).Error)

	_, err = domain.VerifyEmail(ctx, &model.VerifyEmailRequest{Token: tokenFromMail(t, sender)})
	require.True(t, errorx.Is(err, errorx.TokenExpired))

	// A new token replaces the expired one.
	_, err = domain.ResendVerification(ctx, &model.ResendVerificationRequest{Email: "frank@snu.ac.kr"})
	require.NoError(t, err)
	_, err = domain.VerifyEmail(ctx, &model.VerifyEmailRequest{Token: tokenFromMail(t, sender)})
	require.NoError(t, err)

	_, err = domain.VerifyEmail(ctx, &model.VerifyEmailRequest{Token: "garbage"})
	require.True(t, errorx.Is(err, errorx.BadRequest))
}

func Test_authDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain, _ := newTestAuthDomain()

	_, err := domain.Login(ctx, &model.LoginRequest{Email: testutil.User1.Email, Password: "wrong"})
	require.True(t, errorx.Is(err, errorx.Unauthenticated))

	_, err = domain.Login(ctx, &model.LoginRequest{Email: "nobody@kaist.ac.kr", Password: testutil.Password})
	require.True(t, errorx.Is(err, errorx.Unauthenticated))

	resp, err := domain.Login(ctx, &model.LoginRequest{Email: testutil.User1.Email, Password: testutil.Password})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.User.ID)
	require.Equal(t, map[string]any{"user_id": testutil.User1.ID}, resp.SessionInfo())

	require.NoError(t, xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", testutil.User2.ID).
		Update("suspended_until", sql.NullTime{Valid: true, Time: time.Now().Add(time.Hour)}).Error)
	_, err = domain.Login(ctx, &model.LoginRequest{Email: testutil.User2.Email, Password: testutil.Password})
	require.True(t, errorx.Is(err, errorx.UserSuspended))

	require.NoError(t, repository.NewUserRepository().DeleteByID(ctx, testutil.User3.ID))
	_, err = domain.Login(ctx, &model.LoginRequest{Email: testutil.User3.Email, Password: testutil.Password})
	require.True(t, errorx.Is(err, errorx.UserDocumentNotFound))
}
