package domain

import (
	"context"

	"github.com/campusboard/backend/internal/domain/badge"
	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
)

type PointDomain interface {
	GetHistory(context.Context, *model.GetPointHistoryRequest) (*model.GetPointHistoryResponse, error)
	GetBadges(context.Context, *model.GetBadgesRequest) (*model.GetBadgesResponse, error)
}

type pointDomain struct {
	pointHistoryRepo repository.PointHistoryRepository
}

func NewPointDomain(pointHistoryRepo repository.PointHistoryRepository) *pointDomain {
	return &pointDomain{pointHistoryRepo: pointHistoryRepo}
}

func (d *pointDomain) GetHistory(
	ctx context.Context, req *model.GetPointHistoryRequest,
) (*model.GetPointHistoryResponse, error) {
	histories, err := d.pointHistoryRepo.GetListByUserID(
		ctx, xcontext.RequestUserID(ctx), req.Offset, paginationLimit(ctx, req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get point history: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.PointHistory{}
	for i := range histories {
		result = append(result, model.ConvertPointHistory(&histories[i]))
	}

	return &model.GetPointHistoryResponse{History: result}, nil
}

func (d *pointDomain) GetBadges(ctx context.Context, req *model.GetBadgesRequest) (*model.GetBadgesResponse, error) {
	result := []model.Badge{}
	for _, def := range badge.Definitions {
		result = append(result, model.Badge{ID: def.ID, Name: def.Name, Description: def.Description})
	}

	return &model.GetBadgesResponse{Badges: result}, nil
}
