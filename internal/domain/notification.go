package domain

import (
	"context"
	"errors"

	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NotificationDomain interface {
	GetList(context.Context, *model.GetNotificationsRequest) (*model.GetNotificationsResponse, error)
	MarkRead(context.Context, *model.MarkNotificationReadRequest) (*model.MarkNotificationReadResponse, error)
	MarkAllRead(context.Context, *model.MarkAllNotificationsReadRequest) (*model.MarkAllNotificationsReadResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationDomain(notificationRepo repository.NotificationRepository) *notificationDomain {
	return &notificationDomain{notificationRepo: notificationRepo}
}

func (d *notificationDomain) GetList(
	ctx context.Context, req *model.GetNotificationsRequest,
) (*model.GetNotificationsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	notifications, err := d.notificationRepo.GetListByUserID(ctx, userID, req.Offset, paginationLimit(ctx, req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	unread, err := d.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread notifications: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Notification{}
	for i := range notifications {
		result = append(result, model.ConvertNotification(&notifications[i]))
	}

	return &model.GetNotificationsResponse{Notifications: result, UnreadCount: unread}, nil
}

func (d *notificationDomain) MarkRead(
	ctx context.Context, req *model.MarkNotificationReadRequest,
) (*model.MarkNotificationReadResponse, error) {
	err := d.notificationRepo.MarkRead(ctx, req.NotificationID, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found notification")
		}

		xcontext.Logger(ctx).Errorf("Cannot mark notification as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkNotificationReadResponse{}, nil
}

func (d *notificationDomain) MarkAllRead(
	ctx context.Context, req *model.MarkAllNotificationsReadRequest,
) (*model.MarkAllNotificationsReadResponse, error) {
	count, err := d.notificationRepo.MarkAllRead(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark all notifications as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkAllNotificationsReadResponse{Count: count}, nil
}
