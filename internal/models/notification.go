package models

import "time"

// Notification channels supported by the platform core API.
const (
	NotificationChannelInApp = "in_app"
	NotificationChannelEmail = "email"
	NotificationChannelSMS   = "sms"
)

// Notification is a message delivered to platform users.
type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Channel   string    `json:"channel"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationFilter describes query params for listing notifications.
type NotificationFilter struct {
	UnreadOnly bool
	Page       int
	Size       int
}

// SendNotificationRequest fans a message out to a set of recipients,
// addressed either by user id or by registration application id (the core
// resolves applicants to their accounts).
type SendNotificationRequest struct {
	Title          string  `json:"title" validate:"required"`
	Content        string  `json:"content" validate:"required"`
	Channel        string  `json:"channel" validate:"required,oneof=in_app email sms"`
	RecipientIDs   []int64 `json:"recipient_ids,omitempty" validate:"required_without=ApplicationIDs"`
	ApplicationIDs []int64 `json:"application_ids,omitempty"`
}
