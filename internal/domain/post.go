package domain

import (
	"context"
	"errors"
	"time"

	"github.com/campusboard/backend/internal/domain/notification"
	"github.com/campusboard/backend/internal/domain/notification/event"
	"github.com/campusboard/backend/internal/domain/point"
	"github.com/campusboard/backend/internal/domain/search"
	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostDomain interface {
	Create(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	Thank(context.Context, *model.ThankPostRequest) (*model.ThankPostResponse, error)
	GetList(context.Context, *model.GetPostsRequest) (*model.GetPostsResponse, error)
}

type postDomain struct {
	postRepo    repository.PostRepository
	boardRepo   repository.BoardRepository
	userRepo    repository.UserRepository
	pointEngine point.Engine
	searchIndex search.Index
	emitter     notification.Emitter
}

func NewPostDomain(
	postRepo repository.PostRepository,
	boardRepo repository.BoardRepository,
	userRepo repository.UserRepository,
	pointEngine point.Engine,
	searchIndex search.Index,
	emitter notification.Emitter,
) *postDomain {
	return &postDomain{
		postRepo:    postRepo,
		boardRepo:   boardRepo,
		userRepo:    userRepo,
		pointEngine: pointEngine,
		searchIndex: searchIndex,
		emitter:     emitter,
	}
}

// Create inserts the post and moves the board counters in one transaction,
// so post_count always equals the number of posts and latest_post_at the
// creation time of the newest one.
func (d *postDomain) Create(ctx context.Context, req *model.CreatePostRequest) (*model.CreatePostResponse, error) {
	user, err := getRequestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		Base:     entity.Base{ID: uuid.NewString()},
		BoardID:  req.BoardID,
		AuthorID: user.ID,
		Text:     req.Text,
	}

	err = xcontext.RunTransaction(ctx, func(ctx context.Context) error {
		board, err := d.boardRepo.GetByID(ctx, req.BoardID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorx.New(errorx.NotFound, "Not found board")
			}

			return err
		}

		if board.UniversityID != user.UniversityID {
			return errorx.New(errorx.PermissionDenied, "Board belongs to another university")
		}

		now := time.Now()
		post.UniversityID = board.UniversityID
		post.CreatedAt = now
		post.UpdatedAt = now
		if err := d.postRepo.Create(ctx, post); err != nil {
			return err
		}

		return d.boardRepo.IncreasePostCount(ctx, board.ID, now)
	})
	if err != nil {
		return nil, transactionError(ctx, err, "Cannot create post in board %s", req.BoardID)
	}

	err = d.searchIndex.Index(search.PostDoc, post.UniversityID, post.ID, search.PostData{Text: post.Text})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index post %s: %v", post.ID, err)
	}

	action := entity.PointActionPostCreated
	if err := d.pointEngine.AddPoints(ctx, user.ID, action, point.Values[action], post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add post points to %s: %v", user.ID, err)
	}

	resp := model.CreatePostResponse(model.ConvertPost(post, model.ConvertShortUser(user)))
	return &resp, nil
}

func (d *postDomain) Thank(ctx context.Context, req *model.ThankPostRequest) (*model.ThankPostResponse, error) {
	user, err := getRequestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID == user.ID {
		return nil, errorx.New(errorx.BadRequest, "Cannot thank your own post")
	}

	if err := d.postRepo.IncreaseThanks(ctx, post.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot increase thanks: %v", err)
		return nil, errorx.Unknown
	}

	action := entity.PointActionThanksReceived
	if err := d.pointEngine.AddPoints(ctx, post.AuthorID, action, point.Values[action], post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add thanks points to %s: %v", post.AuthorID, err)
	}

	d.emitter.Emit(ctx, post.AuthorID, event.ThankedEvent{
		ActorID:   user.ID,
		ActorName: user.Name,
		PostID:    post.ID,
	})

	post, err = d.getPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return &model.ThankPostResponse{ThanksCount: post.ThanksCount}, nil
}

func (d *postDomain) GetList(ctx context.Context, req *model.GetPostsRequest) (*model.GetPostsResponse, error) {
	if _, err := d.boardRepo.GetByID(ctx, req.BoardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found board")
		}

		xcontext.Logger(ctx).Errorf("Cannot get board: %v", err)
		return nil, errorx.Unknown
	}

	posts, err := d.postRepo.GetListByBoardID(ctx, req.BoardID, req.Offset, paginationLimit(ctx, req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get post list: %v", err)
		return nil, errorx.Unknown
	}

	result, err := convertPosts(ctx, d.userRepo, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetPostsResponse{Posts: result}, nil
}

func (d *postDomain) getPost(ctx context.Context, id string) (*entity.Post, error) {
	post, err := d.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	return post, nil
}

func convertPosts(
	ctx context.Context, userRepo repository.UserRepository, posts []entity.Post,
) ([]model.Post, error) {
	authorIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		authorIDs = append(authorIDs, p.AuthorID)
	}

	authors, err := getShortUsers(ctx, userRepo, authorIDs)
	if err != nil {
		return nil, err
	}

	result := []model.Post{}
	for i := range posts {
		result = append(result, model.ConvertPost(&posts[i], authors[posts[i].AuthorID]))
	}

	return result, nil
}
