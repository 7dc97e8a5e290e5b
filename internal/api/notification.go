package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	"github.com/ailyedu2030/cet4-gateway/internal/upstream"
)

const (
	notificationBasePath = "/api/v1/notifications"
	notificationSendPath = notificationBasePath + "/send"
)

// NotificationAPI wraps the notification endpoints.
type NotificationAPI struct {
	client *upstream.Client
}

// NewNotificationAPI binds the module to the shared upstream client.
func NewNotificationAPI(client *upstream.Client) *NotificationAPI {
	return &NotificationAPI{client: client}
}

type notificationListResponse struct {
	Items []models.Notification `json:"items"`
	Total int                   `json:"total"`
}

// List fetches notifications for the current user.
func (a *NotificationAPI) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error) {
	query := url.Values{}
	if filter.UnreadOnly {
		query.Set("unread_only", "true")
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Size > 0 {
		query.Set("size", strconv.Itoa(filter.Size))
	}

	var payload notificationListResponse
	if err := a.client.GetWithRetry(ctx, notificationBasePath, query, &payload); err != nil {
		return nil, 0, err
	}
	return payload.Items, payload.Total, nil
}

// Send delivers a message to the listed recipients.
func (a *NotificationAPI) Send(ctx context.Context, req models.SendNotificationRequest) error {
	return a.client.Post(ctx, notificationSendPath, req, nil)
}

// MarkRead flags a notification as read.
func (a *NotificationAPI) MarkRead(ctx context.Context, notificationID int64) error {
	path := fmt.Sprintf("%s/%d/read", notificationBasePath, notificationID)
	return a.client.Patch(ctx, path, nil, nil)
}
