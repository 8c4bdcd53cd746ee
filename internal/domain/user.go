package domain

import (
	"context"
	"errors"
	"time"

	"github.com/campusboard/backend/internal/common"
	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/storage"
	"github.com/campusboard/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	GetUser(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	UpdateProfile(context.Context, *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error)
	UploadAvatar(context.Context, *model.UploadAvatarRequest) (*model.UploadAvatarResponse, error)
	DeleteAccount(context.Context, *model.DeleteAccountRequest) (*model.DeleteAccountResponse, error)
}

type userDomain struct {
	userRepo         repository.UserRepository
	accountRepo      repository.AccountRepository
	circleRepo       repository.CircleRepository
	circleMemberRepo repository.CircleMemberRepository
	chatMemberRepo   repository.ChatMemberRepository
	notificationRepo repository.NotificationRepository
	storage          storage.Storage
}

func NewUserDomain(
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	circleRepo repository.CircleRepository,
	circleMemberRepo repository.CircleMemberRepository,
	chatMemberRepo repository.ChatMemberRepository,
	notificationRepo repository.NotificationRepository,
	storage storage.Storage,
) *userDomain {
	return &userDomain{
		userRepo:         userRepo,
		accountRepo:      accountRepo,
		circleRepo:       circleRepo,
		circleMemberRepo: circleMemberRepo,
		chatMemberRepo:   chatMemberRepo,
		notificationRepo: notificationRepo,
		storage:          storage,
	}
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	user, err := getRequestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	resp := model.GetMeResponse(model.ConvertUser(user, "", true))
	return &resp, nil
}

func (d *userDomain) GetUser(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetUserResponse(model.ConvertUser(user, xcontext.RequestUserID(ctx), false))
	return &resp, nil
}

func (d *userDomain) UpdateProfile(
	ctx context.Context, req *model.UpdateProfileRequest,
) (*model.UpdateProfileResponse, error) {
	user, err := getRequestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	if err := checkDepartment(ctx, user.UniversityID, req.Department); err != nil {
		return nil, err
	}

	err = d.userRepo.UpdateProfile(ctx, user.ID, repository.UpdateProfileData{
		Name:       req.Name,
		Department: req.Department,
		Year:       req.Year,
		Bio:        req.Bio,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update profile: %v", err)
		return nil, errorx.Unknown
	}

	user, err = getRequestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	resp := model.UpdateProfileResponse(model.ConvertUser(user, "", true))
	return &resp, nil
}

func (d *userDomain) UploadAvatar(
	ctx context.Context, req *model.UploadAvatarRequest,
) (*model.UploadAvatarResponse, error) {
	image, err := common.ReadImage(ctx, "image")
	if err != nil {
		return nil, err
	}

	image, err = common.ResizeImage(image, xcontext.Configs(ctx).File.AvatarSize)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	resp, err := d.storage.Upload(ctx, &storage.UploadObject{
		Bucket: xcontext.Configs(ctx).Storage.Bucket,
		Key:    common.ImageKey("users", userID, time.Now(), image.Filename),
		Mime:   image.Mime,
		Data:   image.Data,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload avatar: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot upload image")
	}

	err = d.userRepo.UpdateProfile(ctx, userID, repository.UpdateProfileData{AvatarURL: resp.Url})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.UserDocumentNotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot update avatar: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UploadAvatarResponse{URL: resp.Url}, nil
}

// DeleteAccount removes the request user from every relation set, circle and
// chat it belongs to, then deletes the user and its credentials. Point
// history is kept as an audit trail.
func (d *userDomain) DeleteAccount(
	ctx context.Context, req *model.DeleteAccountRequest,
) (*model.DeleteAccountResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	err := xcontext.RunTransaction(ctx, func(ctx context.Context) error {
		related, err := d.userRepo.GetRelatedUsers(ctx, userID)
		if err != nil {
			return err
		}

		for i := range related {
			u := &related[i]
			followers, removedFollower := common.Difference(u.Followers, userID)
			following, removedFollowing := common.Difference(u.Following, userID)
			if !removedFollower && !removedFollowing {
				continue
			}

			u.Followers, u.Following = followers, following
			if err := d.userRepo.UpdateRelations(ctx, u); err != nil {
				return err
			}
		}

		memberships, err := d.circleMemberRepo.GetListByUserID(ctx, userID)
		if err != nil {
			return err
		}

		for _, m := range memberships {
			deleted, err := d.circleMemberRepo.Delete(ctx, m.CircleID, userID)
			if err != nil {
				return err
			}

			if deleted {
				if err := d.circleRepo.IncreaseMemberCount(ctx, m.CircleID, -1); err != nil {
					return err
				}
			}
		}

		if err := d.chatMemberRepo.DeleteByUserID(ctx, userID); err != nil {
			return err
		}

		if err := d.notificationRepo.DeleteByUserID(ctx, userID); err != nil {
			return err
		}

		if err := d.userRepo.DeleteByID(ctx, userID); err != nil {
			return err
		}

		return d.accountRepo.DeleteByID(ctx, userID)
	})
	if err != nil {
		return nil, transactionError(ctx, err, "Cannot delete account %s", userID)
	}

	return &model.DeleteAccountResponse{}, nil
}
