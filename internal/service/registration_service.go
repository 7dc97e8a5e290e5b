package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
)

type registrationGateway interface {
	ListApplications(ctx context.Context, filter models.ApplicationFilter) ([]models.RegistrationApplication, int, error)
	Review(ctx context.Context, applicationID int64, req models.ReviewRequest) error
	BatchReview(ctx context.Context, req models.BatchReviewRequest) (*models.BatchReviewResult, error)
}

// ReviewNotifier receives fire-and-forget notification requests. Nil
// disables fan-out.
type ReviewNotifier interface {
	Enqueue(ctx context.Context, req models.SendNotificationRequest)
}

// RegistrationService fronts the student registration review queue. Review
// decisions fan out as notifications to the affected students through the
// background dispatcher.
type RegistrationService struct {
	api       registrationGateway
	notifier  ReviewNotifier
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegistrationService instantiates RegistrationService. notifier may be
// nil when notification dispatch is disabled.
func NewRegistrationService(api registrationGateway, notifier ReviewNotifier, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		api:       api,
		notifier:  notifier,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// ListApplications returns a review-queue page.
func (s *RegistrationService) ListApplications(ctx context.Context, filter models.ApplicationFilter) ([]models.RegistrationApplication, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size <= 0 {
		filter.Size = 20
	}

	start := time.Now()
	items, total, err := s.api.ListApplications(ctx, filter)
	s.metrics.ObserveUpstreamCall("registration", "list", time.Since(start))
	if err != nil {
		return nil, nil, err
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.Size, TotalCount: total}
	return items, pagination, nil
}

// Review decides a single application and notifies the student.
func (s *RegistrationService) Review(ctx context.Context, applicationID int64, req models.ReviewRequest) error {
	start := time.Now()
	err := s.api.Review(ctx, applicationID, req)
	s.metrics.ObserveUpstreamCall("registration", "review", time.Since(start))
	if err != nil {
		return err
	}

	s.notifyDecision(ctx, []int64{applicationID}, req.Approved)
	return nil
}

// BatchReview decides a batch of applications in one upstream call. The
// batch size limit is enforced by the API module before any network traffic.
func (s *RegistrationService) BatchReview(ctx context.Context, req models.BatchReviewRequest) (*models.BatchReviewResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid batch review payload")
	}

	start := time.Now()
	result, err := s.api.BatchReview(ctx, req)
	s.metrics.ObserveUpstreamCall("registration", "batch_review", time.Since(start))
	if err != nil {
		return nil, err
	}

	failed := make(map[int64]struct{}, len(result.FailedIDs))
	for _, id := range result.FailedIDs {
		failed[id] = struct{}{}
	}
	reviewed := make([]int64, 0, len(req.ApplicationIDs))
	for _, id := range req.ApplicationIDs {
		if _, skip := failed[id]; !skip {
			reviewed = append(reviewed, id)
		}
	}
	s.notifyDecision(ctx, reviewed, req.Approved)
	return result, nil
}

func (s *RegistrationService) notifyDecision(ctx context.Context, applicationIDs []int64, approved bool) {
	if s.notifier == nil || len(applicationIDs) == 0 {
		return
	}

	title := "报名审核通过"
	content := "您的报名申请已通过审核，请登录平台完善学习资料。"
	if !approved {
		title = "报名审核未通过"
		content = "您的报名申请未通过审核，如有疑问请联系教务管理员。"
	}
	s.notifier.Enqueue(ctx, models.SendNotificationRequest{
		Title:          title,
		Content:        content,
		Channel:        models.NotificationChannelInApp,
		ApplicationIDs: applicationIDs,
	})
}
