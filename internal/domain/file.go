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

type FileDomain interface {
	UploadImage(context.Context, *model.UploadImageRequest) (*model.UploadImageResponse, error)
}

// imageTarget is an entity kind which can carry one image.
type imageTarget struct {
	owner  func(ctx context.Context, id string) (string, error)
	update func(ctx context.Context, id, url string) error
}

type fileDomain struct {
	storage storage.Storage
	targets map[string]imageTarget
}

func NewFileDomain(
	boardRepo repository.BoardRepository,
	postRepo repository.PostRepository,
	circleRepo repository.CircleRepository,
	storage storage.Storage,
) *fileDomain {
	return &fileDomain{
		storage: storage,
		targets: map[string]imageTarget{
			"boards": {
				owner: func(ctx context.Context, id string) (string, error) {
					board, err := boardRepo.GetByID(ctx, id)
					if err != nil {
						return "", err
					}
					return board.CreatedBy, nil
				},
				update: boardRepo.UpdateImage,
			},
			"posts": {
				owner: func(ctx context.Context, id string) (string, error) {
					post, err := postRepo.GetByID(ctx, id)
					if err != nil {
						return "", err
					}
					return post.AuthorID, nil
				},
				update: postRepo.UpdateImage,
			},
			"circles": {
				owner: func(ctx context.Context, id string) (string, error) {
					circle, err := circleRepo.GetByID(ctx, id)
					if err != nil {
						return "", err
					}
					return circle.CreatedBy, nil
				},
				update: circleRepo.UpdateImage,
			},
		},
	}
}

// UploadImage stores the multipart image at
// {kind}/{id}/{timestamp}_{filename} and links it to the entity. The file is
// validated before the entity is looked up.
func (d *fileDomain) UploadImage(
	ctx context.Context, req *model.UploadImageRequest,
) (*model.UploadImageResponse, error) {
	target, ok := d.targets[req.Kind]
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Invalid kind %s", req.Kind)
	}

	image, err := common.ReadImage(ctx, "image")
	if err != nil {
		return nil, err
	}

	owner, err := target.owner(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found %s %s", req.Kind, req.ID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get owner of %s: %v", req.Kind, err)
		return nil, errorx.Unknown
	}

	if owner != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the owner can change the image")
	}

	resp, err := d.storage.Upload(ctx, &storage.UploadObject{
		Bucket: xcontext.Configs(ctx).Storage.Bucket,
		Key:    common.ImageKey(req.Kind, req.ID, time.Now(), image.Filename),
		Mime:   image.Mime,
		Data:   image.Data,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot upload image")
	}

	if err := target.update(ctx, req.ID, resp.Url); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update image of %s: %v", req.Kind, err)
		return nil, errorx.Unknown
	}

	return &model.UploadImageResponse{URL: resp.Url}, nil
}
