package model

type GetNotificationsRequest struct {
	Offset int `json:"offset" validate:"min=0"`
	Limit  int `json:"limit" validate:"min=0"`
}

type GetNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unread_count"`
}

type MarkNotificationReadRequest struct {
	NotificationID string `json:"notification_id" validate:"required"`
}

type MarkNotificationReadResponse struct{}

type MarkAllNotificationsReadRequest struct{}

type MarkAllNotificationsReadResponse struct {
	Count int64 `json:"count"`
}
