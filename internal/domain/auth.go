package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/crypto"
	"github.com/campusboard/backend/pkg/email"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	VerifyEmail(context.Context, *model.VerifyEmailRequest) (*model.VerifyEmailResponse, error)
	ResendVerification(context.Context, *model.ResendVerificationRequest) (*model.ResendVerificationResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
}

type authDomain struct {
	accountRepo repository.AccountRepository
	userRepo    repository.UserRepository
	emailSender email.Sender
}

func NewAuthDomain(
	accountRepo repository.AccountRepository,
	userRepo repository.UserRepository,
	emailSender email.Sender,
) *authDomain {
	return &authDomain{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		emailSender: emailSender,
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	emailAddress := strings.ToLower(strings.TrimSpace(req.Email))
	university, ok := xcontext.Configs(ctx).University.Directory.ByEmail(emailAddress)
	if !ok {
		return nil, errorx.New(errorx.EmailDomainNotAllowed, "Only institutional email addresses can register")
	}

	_, err := d.accountRepo.GetByEmail(ctx, emailAddress)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This email is already registered")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get account by email: %v", err)
		return nil, errorx.Unknown
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return nil, errorx.New(errorx.BadRequest, "Password is too long")
		}

		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	token, tokenHash, err := crypto.NewVerificationToken()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate verification token: %v", err)
		return nil, errorx.Unknown
	}

	id := uuid.NewString()
	account := &entity.Account{
		Base:                  entity.Base{ID: id},
		Email:                 emailAddress,
		PasswordHash:          passwordHash,
		VerificationTokenHash: tokenHash,
		VerificationExpiresAt: sql.NullTime{
			Valid: true,
			Time:  time.Now().Add(xcontext.Configs(ctx).Auth.VerificationTokenTTL),
		},
	}

	user := &entity.User{
		Base:         entity.Base{ID: id},
		Name:         req.Name,
		Email:        emailAddress,
		UniversityID: university.ID,
		Year:         1,
	}

	err = xcontext.RunTransaction(ctx, func(ctx context.Context) error {
		if err := d.accountRepo.Create(ctx, account); err != nil {
			return err
		}

		return d.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, transactionError(ctx, err, "Cannot register account")
	}

	// The account exists from here on, a lost mail can be sent again.
	if err := d.sendVerification(ctx, req.Name, emailAddress, token); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot send verification mail to %s: %v", emailAddress, err)
	}

	return &model.RegisterResponse{UserID: id}, nil
}

func (d *authDomain) VerifyEmail(
	ctx context.Context, req *model.VerifyEmailRequest,
) (*model.VerifyEmailResponse, error) {
	account, err := d.accountRepo.GetByVerificationToken(ctx, crypto.HashToken(req.Token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Invalid verification token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get account by token: %v", err)
		return nil, errorx.Unknown
	}

	if account.EmailVerified {
		return &model.VerifyEmailResponse{}, nil
	}

	if !account.VerificationExpiresAt.Valid || account.VerificationExpiresAt.Time.Before(time.Now()) {
		return nil, errorx.New(errorx.TokenExpired, "Verification token expired")
	}

	if err := d.accountRepo.MarkVerified(ctx, account.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark account verified: %v", err)
		return nil, errorx.Unknown
	}

	return &model.VerifyEmailResponse{}, nil
}

func (d *authDomain) ResendVerification(
	ctx context.Context, req *model.ResendVerificationRequest,
) (*model.ResendVerificationResponse, error) {
	emailAddress := strings.ToLower(strings.TrimSpace(req.Email))
	account, err := d.accountRepo.GetByEmail(ctx, emailAddress)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found account")
		}

		xcontext.Logger(ctx).Errorf("Cannot get account by email: %v", err)
		return nil, errorx.Unknown
	}

	if account.EmailVerified {
		return nil, errorx.New(errorx.BadRequest, "Email is already verified")
	}

	token, tokenHash, err := crypto.NewVerificationToken()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate verification token: %v", err)
		return nil, errorx.Unknown
	}

	expiresAt := time.Now().Add(xcontext.Configs(ctx).Auth.VerificationTokenTTL)
	err = d.accountRepo.UpdateVerificationToken(ctx, account.ID, tokenHash, expiresAt)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update verification token: %v", err)
		return nil, errorx.Unknown
	}

	name := emailAddress
	if user, err := d.userRepo.GetByID(ctx, account.ID); err == nil {
		name = user.Name
	}

	if err := d.sendVerification(ctx, name, emailAddress, token); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot send verification mail: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot send verification mail")
	}

	return &model.ResendVerificationResponse{}, nil
}

func (d *authDomain) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	account, err := d.accountRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Wrong email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get account by email: %v", err)
		return nil, errorx.Unknown
	}

	if !crypto.ComparePassword(account.PasswordHash, req.Password) {
		return nil, errorx.New(errorx.Unauthenticated, "Wrong email or password")
	}

	if !account.EmailVerified {
		return nil, errorx.New(errorx.EmailNotVerified, "Please verify your email first")
	}

	user, err := d.userRepo.GetByID(ctx, account.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.UserDocumentNotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.SuspendedUntil.Valid && user.SuspendedUntil.Time.After(time.Now()) {
		return nil, errorx.New(errorx.UserSuspended, "Account is suspended until %s",
			user.SuspendedUntil.Time.UTC().Format(time.RFC3339))
	}

	cfg := xcontext.Configs(ctx).Auth
	accessToken, err := xcontext.TokenEngine(ctx).Generate(cfg.AccessToken.Expiration, model.AccessToken{ID: user.ID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		AccessToken: accessToken,
		User:        model.ConvertUser(user, "", true),
	}, nil
}

func (d *authDomain) sendVerification(ctx context.Context, name, address, token string) error {
	cfg := xcontext.Configs(ctx).Email
	link := fmt.Sprintf("%s?token=%s", cfg.VerifyURL, url.QueryEscape(token))
	return d.emailSender.Send(ctx, &email.Message{
		To:          mail.Address{Name: name, Address: address},
		Subject:     "Verify your email",
		TextContent: fmt.Sprintf("Hi %s,\n\nOpen this link to verify your email: %s\n", name, link),
		HTMLContent: fmt.Sprintf(`<p>Hi %s,</p><p><a href="%s">Verify your email</a></p>`,
			html.EscapeString(name), html.EscapeString(link)),
	})
}
