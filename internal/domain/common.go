package domain

import (
	"context"
	"errors"

	"github.com/campusboard/backend/internal/common"
	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// transactionError converts the failure of a transaction into a response
// error. Errors already meant for the client pass through.
func transactionError(ctx context.Context, err error, format string, args ...any) error {
	var errx errorx.Error
	if errors.As(err, &errx) {
		return errx
	}

	if errors.Is(err, xcontext.ErrTxConflict) {
		return errorx.New(errorx.Conflict, "Too many concurrent updates, please retry")
	}

	xcontext.Logger(ctx).Errorf(format+": %v", append(args, err)...)
	return errorx.Unknown
}

// checkDepartment rejects departments the university does not list. An empty
// department means none is set.
func checkDepartment(ctx context.Context, universityID, department string) error {
	if department == "" {
		return nil
	}

	university, ok := xcontext.Configs(ctx).University.Directory.ByID(universityID)
	if ok && !university.HasDepartment(department) {
		return errorx.New(errorx.BadRequest, "Unknown department %s", department)
	}

	return nil
}

func getRequestUser(ctx context.Context, userRepo repository.UserRepository) (*entity.User, error) {
	user, err := userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.UserDocumentNotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get request user: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}

// getShortUsers returns the summaries of ids. Missing users are skipped.
func getShortUsers(
	ctx context.Context, userRepo repository.UserRepository, ids []string,
) (map[string]model.ShortUser, error) {
	users, err := userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	result := make(map[string]model.ShortUser, len(users))
	for i := range users {
		result[users[i].ID] = model.ConvertShortUser(&users[i])
	}

	return result, nil
}

func paginationLimit(ctx context.Context, limit int) int {
	cfg := xcontext.Configs(ctx).ApiServer
	return common.PaginationLimit(limit, cfg.DefaultLimit, cfg.MaxLimit)
}
