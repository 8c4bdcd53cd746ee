package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

type CircleDomain interface {
	Create(context.Context, *model.CreateCircleRequest) (*model.CreateCircleResponse, error)
	Get(context.Context, *model.GetCircleRequest) (*model.GetCircleResponse, error)
	GetList(context.Context, *model.GetCirclesRequest) (*model.GetCirclesResponse, error)
	Join(context.Context, *model.JoinCircleRequest) (*model.JoinCircleResponse, error)
	Leave(context.Context, *model.LeaveCircleRequest) (*model.LeaveCircleResponse, error)
	AskQuestion(context.Context, *model.AskQuestionRequest) (*model.AskQuestionResponse, error)
}

type circleDomain struct {
	circleRepo       repository.CircleRepository
	circleMemberRepo repository.CircleMemberRepository
	boardRepo        repository.BoardRepository
	userRepo         repository.UserRepository
	postDomain       PostDomain
	pointEngine      point.Engine
	searchIndex      search.Index
}

func NewCircleDomain(
	circleRepo repository.CircleRepository,
	circleMemberRepo repository.CircleMemberRepository,
	boardRepo repository.BoardRepository,
	userRepo repository.UserRepository,
	postDomain PostDomain,
	pointEngine point.Engine,
	searchIndex search.Index,
) *circleDomain {
	return &circleDomain{
		circleRepo:       circleRepo,
		circleMemberRepo: circleMemberRepo,
		boardRepo:        boardRepo,
		userRepo:         userRepo,
		postDomain:       postDomain,
		pointEngine:      pointEngine,
		searchIndex:      searchIndex,
	}
}

func (d *circleDomain) Create(ctx context.Context, req *model.CreateCircleRequest) (*model.CreateCircleResponse, error) {
	user, err := getRequestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	circle := &entity.Circle{
		Base:         entity.Base{ID: uuid.NewString()},
		UniversityID: user.UniversityID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Schedule:     req.Schedule,
		CreatedBy:    user.ID,
		MemberCount:  1,
	}

	err = xcontext.RunTransaction(ctx, func(ctx context.Context) error {
		if err := d.circleRepo.Create(ctx, circle); err != nil {
			return err
		}

		_, err := d.circleMemberRepo.Create(ctx, &entity.CircleMember{CircleID: circle.ID, UserID: user.ID})
		return err
	})
	if err != nil {
		return nil, transactionError(ctx, err, "Cannot create circle")
	}

	err = d.searchIndex.Index(search.CircleDoc, circle.UniversityID, circle.ID, search.CircleData{
		Name:        circle.Name,
		Description: circle.Description,
		Category:    circle.Category,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index circle %s: %v", circle.ID, err)
	}

	action := entity.PointActionCircleCreated
	if err := d.pointEngine.AddPoints(ctx, user.ID, action, point.Values[action], circle.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add circle points to %s: %v", user.ID, err)
	}

	resp := model.CreateCircleResponse(model.ConvertCircle(circle, model.ConvertShortUser(user), true))
	return &resp, nil
}

func (d *circleDomain) Get(ctx context.Context, req *model.GetCircleRequest) (*model.GetCircleResponse, error) {
	circle, err := d.getCircle(ctx, req.CircleID)
	if err != nil {
		return nil, err
	}

	creators, err := getShortUsers(ctx, d.userRepo, []string{circle.CreatedBy})
	if err != nil {
		return nil, err
	}

	isMember := true
	_, err = d.circleMemberRepo.Get(ctx, circle.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get circle member: %v", err)
			return nil, errorx.Unknown
		}

		isMember = false
	}

	resp := model.GetCircleResponse(model.ConvertCircle(circle, creators[circle.CreatedBy], isMember))
	return &resp, nil
}

func (d *circleDomain) GetList(ctx context.Context, req *model.GetCirclesRequest) (*model.GetCirclesResponse, error) {
	user, err := getRequestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	circles, err := d.circleRepo.GetList(ctx, repository.GetListCircleFilter{
		UniversityID: user.UniversityID,
		Category:     req.Category,
		Offset:       req.Offset,
		Limit:        paginationLimit(ctx, req.Limit),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get circle list: %v", err)
		return nil, errorx.Unknown
	}

	result, err := convertCircles(ctx, d.userRepo, d.circleMemberRepo, user.ID, circles)
	if err != nil {
		return nil, err
	}

	return &model.GetCirclesResponse{Circles: result}, nil
}

// Join adds the request user to the circle. Joining twice changes nothing.
func (d *circleDomain) Join(ctx context.Context, req *model.JoinCircleRequest) (*model.JoinCircleResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	err := xcontext.RunTransaction(ctx, func(ctx context.Context) error {
		if _, err := d.circleRepo.GetByID(ctx, req.CircleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorx.New(errorx.NotFound, "Not found circle")
			}

			return err
		}

		created, err := d.circleMemberRepo.Create(ctx, &entity.CircleMember{CircleID: req.CircleID, UserID: userID})
		if err != nil || !created {
			return err
		}

		return d.circleRepo.IncreaseMemberCount(ctx, req.CircleID, 1)
	})
	if err != nil {
		return nil, transactionError(ctx, err, "Cannot join circle %s", req.CircleID)
	}

	return &model.JoinCircleResponse{}, nil
}

// Leave removes the request user from the circle. Leaving a circle the user
// is not in changes nothing.
func (d *circleDomain) Leave(ctx context.Context, req *model.LeaveCircleRequest) (*model.LeaveCircleResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	err := xcontext.RunTransaction(ctx, func(ctx context.Context) error {
		deleted, err := d.circleMemberRepo.Delete(ctx, req.CircleID, userID)
		if err != nil || !deleted {
			return err
		}

		return d.circleRepo.IncreaseMemberCount(ctx, req.CircleID, -1)
	})
	if err != nil {
		return nil, transactionError(ctx, err, "Cannot leave circle %s", req.CircleID)
	}

	return &model.LeaveCircleResponse{}, nil
}

// AskQuestion posts into the Q&A board of the circle, creating the board on
// the first question.
func (d *circleDomain) AskQuestion(
	ctx context.Context, req *model.AskQuestionRequest,
) (*model.AskQuestionResponse, error) {
	user, err := getRequestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	circle, err := d.getCircle(ctx, req.CircleID)
	if err != nil {
		return nil, err
	}

	if circle.UniversityID != user.UniversityID {
		return nil, errorx.New(errorx.PermissionDenied, "Circle belongs to another university")
	}

	boardID := circle.QuestionBoardID.String
	if !circle.QuestionBoardID.Valid {
		boardID, err = d.ensureQuestionBoard(ctx, circle.ID)
		if err != nil {
			return nil, err
		}
	}

	post, err := d.postDomain.Create(ctx, &model.CreatePostRequest{BoardID: boardID, Text: req.Text})
	if err != nil {
		return nil, err
	}

	resp := model.AskQuestionResponse(*post)
	return &resp, nil
}

func (d *circleDomain) ensureQuestionBoard(ctx context.Context, circleID string) (string, error) {
	var board *entity.Board
	boardID := ""
	err := xcontext.RunTransaction(ctx, func(ctx context.Context) error {
		board = nil
		circle, err := d.circleRepo.GetByID(ctx, circleID)
		if err != nil {
			return err
		}

		if circle.QuestionBoardID.Valid {
			boardID = circle.QuestionBoardID.String
			return nil
		}

		board = &entity.Board{
			Base:         entity.Base{ID: uuid.NewString()},
			UniversityID: circle.UniversityID,
			Title:        fmt.Sprintf("%s Q&A", circle.Name),
			Description:  fmt.Sprintf("Questions for %s", circle.Name),
			CircleID:     sql.NullString{Valid: true, String: circle.ID},
			CreatedBy:    circle.CreatedBy,
		}
		if err := d.boardRepo.Create(ctx, board); err != nil {
			return err
		}

		linked, err := d.circleRepo.SetQuestionBoard(ctx, circle.ID, board.ID)
		if err != nil {
			return err
		}

		if !linked {
			// Another request linked a board in between, read it again.
			return xcontext.ErrTxConflict
		}

		boardID = board.ID
		return nil
	})
	if err != nil {
		return "", transactionError(ctx, err, "Cannot create question board of circle %s", circleID)
	}

	if board != nil {
		err := d.searchIndex.Index(search.BoardDoc, board.UniversityID, board.ID, search.BoardData{
			Title:       board.Title,
			Description: board.Description,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot index board %s: %v", board.ID, err)
		}
	}

	return boardID, nil
}

func (d *circleDomain) getCircle(ctx context.Context, id string) (*entity.Circle, error) {
	circle, err := d.circleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found circle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get circle: %v", err)
		return nil, errorx.Unknown
	}

	return circle, nil
}

func convertCircles(
	ctx context.Context,
	userRepo repository.UserRepository,
	circleMemberRepo repository.CircleMemberRepository,
	userID string,
	circles []entity.Circle,
) ([]model.Circle, error) {
	creatorIDs := make([]string, 0, len(circles))
	for _, c := range circles {
		creatorIDs = append(creatorIDs, c.CreatedBy)
	}

	creators, err := getShortUsers(ctx, userRepo, creatorIDs)
	if err != nil {
		return nil, err
	}

	memberships, err := circleMemberRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get memberships: %v", err)
		return nil, errorx.Unknown
	}

	joined := map[string]bool{}
	for _, m := range memberships {
		joined[m.CircleID] = true
	}

	result := []model.Circle{}
	for i := range circles {
		c := &circles[i]
		result = append(result, model.ConvertCircle(c, creators[c.CreatedBy], joined[c.ID]))
	}

	return result, nil
}
