package domain

import (
	"context"
	"errors"

	"github.com/campusboard/backend/internal/common"
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

type BoardDomain interface {
	Create(context.Context, *model.CreateBoardRequest) (*model.CreateBoardResponse, error)
	Get(context.Context, *model.GetBoardRequest) (*model.GetBoardResponse, error)
	GetList(context.Context, *model.GetBoardsRequest) (*model.GetBoardsResponse, error)
	SelectBestAnswer(context.Context, *model.SelectBestAnswerRequest) (*model.SelectBestAnswerResponse, error)
}

type boardDomain struct {
	boardRepo   repository.BoardRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	pointEngine point.Engine
	searchIndex search.Index
	emitter     notification.Emitter
}

func NewBoardDomain(
	boardRepo repository.BoardRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	pointEngine point.Engine,
	searchIndex search.Index,
	emitter notification.Emitter,
) *boardDomain {
	return &boardDomain{
		boardRepo:   boardRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		pointEngine: pointEngine,
		searchIndex: searchIndex,
		emitter:     emitter,
	}
}

func (d *boardDomain) Create(ctx context.Context, req *model.CreateBoardRequest) (*model.CreateBoardResponse, error) {
	user, err := getRequestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	if err := checkDepartment(ctx, user.UniversityID, req.Department); err != nil {
		return nil, err
	}

	year := req.Year
	if year == 0 {
		year = user.Year
	}

	board := &entity.Board{
		Base:         entity.Base{ID: uuid.NewString()},
		UniversityID: user.UniversityID,
		Title:        req.Title,
		Description:  req.Description,
		Department:   req.Department,
		Year:         year,
		CreatedBy:    user.ID,
	}
	if err := d.boardRepo.Create(ctx, board); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create board: %v", err)
		return nil, errorx.Unknown
	}

	err = d.searchIndex.Index(search.BoardDoc, board.UniversityID, board.ID, search.BoardData{
		Title:       board.Title,
		Description: board.Description,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index board %s: %v", board.ID, err)
	}

	resp := model.CreateBoardResponse(model.ConvertBoard(board, model.ConvertShortUser(user)))
	return &resp, nil
}

func (d *boardDomain) Get(ctx context.Context, req *model.GetBoardRequest) (*model.GetBoardResponse, error) {
	board, err := d.getBoard(ctx, req.BoardID)
	if err != nil {
		return nil, err
	}

	creators, err := getShortUsers(ctx, d.userRepo, []string{board.CreatedBy})
	if err != nil {
		return nil, err
	}

	resp := model.GetBoardResponse(model.ConvertBoard(board, creators[board.CreatedBy]))
	return &resp, nil
}

func (d *boardDomain) GetList(ctx context.Context, req *model.GetBoardsRequest) (*model.GetBoardsResponse, error) {
	user, err := getRequestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	filter := repository.GetListBoardFilter{
		UniversityID: user.UniversityID,
		Department:   req.Department,
		Offset:       req.Offset,
		Limit:        paginationLimit(ctx, req.Limit),
	}
	if req.Year != "" {
		filter.Year = common.NormalizeYearParam(req.Year)
	}

	boards, err := d.boardRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get board list: %v", err)
		return nil, errorx.Unknown
	}

	result, err := convertBoards(ctx, d.userRepo, boards)
	if err != nil {
		return nil, err
	}

	return &model.GetBoardsResponse{Boards: result}, nil
}

// SelectBestAnswer marks a post of the board as its best answer. Only the
// board creator may select, and only once.
func (d *boardDomain) SelectBestAnswer(
	ctx context.Context, req *model.SelectBestAnswerRequest,
) (*model.SelectBestAnswerResponse, error) {
	board, err := d.getBoard(ctx, req.BoardID)
	if err != nil {
		return nil, err
	}

	requestUserID := xcontext.RequestUserID(ctx)
	if board.CreatedBy != requestUserID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the board creator can select the best answer")
	}

	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if post.BoardID != board.ID {
		return nil, errorx.New(errorx.BadRequest, "Post does not belong to the board")
	}

	changed, err := d.boardRepo.SetBestAnswer(ctx, board.ID, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set best answer: %v", err)
		return nil, errorx.Unknown
	}

	if !changed {
		return nil, errorx.New(errorx.AlreadyExists, "The best answer was already selected")
	}

	action := entity.PointActionBestAnswer
	if err := d.pointEngine.AddPoints(ctx, post.AuthorID, action, point.Values[action], post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add best answer points to %s: %v", post.AuthorID, err)
	}

	if post.AuthorID != requestUserID {
		d.emitter.Emit(ctx, post.AuthorID, event.BestAnswerEvent{
			ActorID: requestUserID,
			BoardID: board.ID,
			PostID:  post.ID,
		})
	}

	return &model.SelectBestAnswerResponse{}, nil
}

func (d *boardDomain) getBoard(ctx context.Context, id string) (*entity.Board, error) {
	board, err := d.boardRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found board")
		}

		xcontext.Logger(ctx).Errorf("Cannot get board: %v", err)
		return nil, errorx.Unknown
	}

	return board, nil
}

func convertBoards(
	ctx context.Context, userRepo repository.UserRepository, boards []entity.Board,
) ([]model.Board, error) {
	creatorIDs := make([]string, 0, len(boards))
	for _, b := range boards {
		creatorIDs = append(creatorIDs, b.CreatedBy)
	}

	creators, err := getShortUsers(ctx, userRepo, creatorIDs)
	if err != nil {
		return nil, err
	}

	result := []model.Board{}
	for i := range boards {
		result = append(result, model.ConvertBoard(&boards[i], creators[boards[i].CreatedBy]))
	}

	return result, nil
}
