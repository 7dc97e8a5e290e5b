package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
	"github.com/ailyedu2030/cet4-gateway/pkg/jobs"
)

const jobTypeSendNotification = "notification.send"

type notificationGateway interface {
	List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error)
	Send(ctx context.Context, req models.SendNotificationRequest) error
	MarkRead(ctx context.Context, notificationID int64) error
}

// NotificationService fronts the notification feed and runs the background
// dispatcher. Dispatch decouples callers (review decisions, announcements)
// from the upstream round-trip; the queue retries transient failures.
type NotificationService struct {
	api       notificationGateway
	queue     *jobs.Queue
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNotificationService instantiates NotificationService and its queue.
// Call Start before enqueuing and Stop on shutdown.
func NewNotificationService(api notificationGateway, queueCfg jobs.QueueConfig, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *NotificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{
		api:       api,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
	queueCfg.Logger = logger
	queueCfg.Observer = func(jobType string, attempt int, wait time.Duration, err error) {
		metrics.ObserveJob("notifications", jobType, wait, err)
	}
	s.queue = jobs.NewQueue("notifications", s.deliver, queueCfg)
	return s
}

// Start launches the dispatcher workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the dispatcher.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// List returns a notification feed page for the current admin.
func (s *NotificationService) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size <= 0 {
		filter.Size = 20
	}

	start := time.Now()
	items, total, err := s.api.List(ctx, filter)
	s.metrics.ObserveUpstreamCall("notifications", "list", time.Since(start))
	if err != nil {
		return nil, nil, err
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.Size, TotalCount: total}
	return items, pagination, nil
}

// MarkRead flags a notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID int64) error {
	start := time.Now()
	err := s.api.MarkRead(ctx, notificationID)
	s.metrics.ObserveUpstreamCall("notifications", "mark_read", time.Since(start))
	return err
}

// Dispatch validates a send request and hands it to the queue. The job id
// is returned so callers can correlate delivery logs.
func (s *NotificationService) Dispatch(ctx context.Context, req models.SendNotificationRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notification payload")
	}

	jobID := uuid.New().String()
	if err := s.queue.Enqueue(jobs.Job{ID: jobID, Type: jobTypeSendNotification, Payload: req}); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "notification dispatcher unavailable")
	}
	s.logger.Info("notification enqueued",
		zap.String("job_id", jobID),
		zap.String("title", req.Title),
		zap.String("channel", req.Channel))
	return jobID, nil
}

// Enqueue is the fire-and-forget variant used by other services. Invalid or
// undeliverable requests are logged, not surfaced.
func (s *NotificationService) Enqueue(ctx context.Context, req models.SendNotificationRequest) {
	if _, err := s.Dispatch(ctx, req); err != nil {
		s.logger.Warn("dropping notification", zap.String("title", req.Title), zap.Error(err))
	}
}

func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	req, ok := job.Payload.(models.SendNotificationRequest)
	if !ok {
		return fmt.Errorf("unexpected payload type %T for job %s", job.Payload, job.ID)
	}

	start := time.Now()
	err := s.api.Send(ctx, req)
	s.metrics.ObserveUpstreamCall("notifications", "send", time.Since(start))
	if err != nil {
		return fmt.Errorf("send notification %s: %w", job.ID, err)
	}
	s.logger.Info("notification delivered", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt))
	return nil
}
