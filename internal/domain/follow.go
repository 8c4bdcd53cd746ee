package domain

import (
	"context"
	"errors"

	"github.com/campusboard/backend/internal/common"
	"github.com/campusboard/backend/internal/domain/notification"
	"github.com/campusboard/backend/internal/domain/notification/event"
	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FollowDomain interface {
	Follow(context.Context, *model.FollowRequest) (*model.FollowResponse, error)
	Unfollow(context.Context, *model.UnfollowRequest) (*model.UnfollowResponse, error)
	GetFollowers(context.Context, *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetFollowing(context.Context, *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
}

type followDomain struct {
	userRepo repository.UserRepository
	emitter  notification.Emitter
}

func NewFollowDomain(userRepo repository.UserRepository, emitter notification.Emitter) *followDomain {
	return &followDomain{userRepo: userRepo, emitter: emitter}
}

func (d *followDomain) Follow(ctx context.Context, req *model.FollowRequest) (*model.FollowResponse, error) {
	var actor *entity.User
	changed, err := d.updateRelation(ctx, req.UserID, func(actor, target *entity.User) (bool, bool) {
		following, actorChanged := common.Union(actor.Following, target.ID)
		followers, targetChanged := common.Union(target.Followers, actor.ID)
		actor.Following, target.Followers = following, followers
		return actorChanged, targetChanged
	}, &actor)
	if err != nil {
		return nil, err
	}

	if changed {
		d.emitter.Emit(ctx, req.UserID, event.FollowedEvent{ActorID: actor.ID, ActorName: actor.Name})
	}

	return &model.FollowResponse{}, nil
}

func (d *followDomain) Unfollow(ctx context.Context, req *model.UnfollowRequest) (*model.UnfollowResponse, error) {
	_, err := d.updateRelation(ctx, req.UserID, func(actor, target *entity.User) (bool, bool) {
		following, actorChanged := common.Difference(actor.Following, target.ID)
		followers, targetChanged := common.Difference(target.Followers, actor.ID)
		actor.Following, target.Followers = following, followers
		return actorChanged, targetChanged
	}, nil)
	if err != nil {
		return nil, err
	}

	return &model.UnfollowResponse{}, nil
}

// updateRelation reads the request user and target in one transaction, lets
// mutate change their sets and writes back only the rows that changed. It
// reports whether anything was written.
func (d *followDomain) updateRelation(
	ctx context.Context,
	targetID string,
	mutate func(actor, target *entity.User) (actorChanged, targetChanged bool),
	actorOut **entity.User,
) (bool, error) {
	actorID := xcontext.RequestUserID(ctx)
	if actorID == targetID {
		return false, errorx.New(errorx.BadRequest, "Cannot follow yourself")
	}

	changed := false
	err := xcontext.RunTransaction(ctx, func(ctx context.Context) error {
		changed = false
		actor, err := d.userRepo.GetByID(ctx, actorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorx.New(errorx.UserDocumentNotFound, "Not found user")
			}

			return err
		}

		target, err := d.userRepo.GetByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorx.New(errorx.NotFound, "Not found target user")
			}

			return err
		}

		actorChanged, targetChanged := mutate(actor, target)
		if actorChanged {
			if err := d.userRepo.UpdateRelations(ctx, actor); err != nil {
				return err
			}
		}

		if targetChanged {
			if err := d.userRepo.UpdateRelations(ctx, target); err != nil {
				return err
			}
		}

		changed = actorChanged || targetChanged
		if actorOut != nil {
			*actorOut = actor
		}

		return nil
	})
	if err != nil {
		return false, transactionError(ctx, err, "Cannot update relation of %s and %s", actorID, targetID)
	}

	return changed, nil
}

func (d *followDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	users, err := d.getRelation(ctx, req.UserID, func(u *entity.User) []string { return u.Followers })
	if err != nil {
		return nil, err
	}

	return &model.GetFollowersResponse{Users: users}, nil
}

func (d *followDomain) GetFollowing(
	ctx context.Context, req *model.GetFollowingRequest,
) (*model.GetFollowingResponse, error) {
	users, err := d.getRelation(ctx, req.UserID, func(u *entity.User) []string { return u.Following })
	if err != nil {
		return nil, err
	}

	return &model.GetFollowingResponse{Users: users}, nil
}

func (d *followDomain) getRelation(
	ctx context.Context, userID string, ids func(*entity.User) []string,
) ([]model.ShortUser, error) {
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	relatedIDs := ids(user)
	shortUsers, err := getShortUsers(ctx, d.userRepo, relatedIDs)
	if err != nil {
		return nil, err
	}

	result := []model.ShortUser{}
	for _, id := range relatedIDs {
		if u, ok := shortUsers[id]; ok {
			result = append(result, u)
		}
	}

	return result, nil
}
