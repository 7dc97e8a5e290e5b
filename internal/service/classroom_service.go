package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	"github.com/ailyedu2030/cet4-gateway/internal/rules"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
)

const classroomCachePattern = "classrooms:*"

type classroomGateway interface {
	List(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, int, error)
	CheckConflict(ctx context.Context, req models.ConflictCheckRequest) (*models.ConflictCheckResult, error)
	CreateSchedule(ctx context.Context, req models.CreateScheduleRequest) (*models.Schedule, error)
}

// ClassroomService fronts the classroom resource group: cached listing,
// one-shot conflict checks, and booking confirmation with cache
// invalidation.
type ClassroomService struct {
	api       classroomGateway
	cache     *CacheService
	cacheTTL  time.Duration
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewClassroomService instantiates ClassroomService.
func NewClassroomService(api classroomGateway, cache *CacheService, cacheTTL time.Duration, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ClassroomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{
		api:       api,
		cache:     cache,
		cacheTTL:  cacheTTL,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (s *ClassroomService) WithClock(now func() time.Time) *ClassroomService {
	s.now = now
	return s
}

type classroomListPayload struct {
	Items []models.Classroom `json:"items"`
	Total int                `json:"total"`
}

// List returns a classroom page, read through the cache when enabled. The
// boolean reports a cache hit for the response meta.
func (s *ClassroomService) List(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, *models.Pagination, bool, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.Size
	if size <= 0 {
		size = 20
	}
	filter.Page = page
	filter.Size = size

	key := classroomCacheKey(filter)

	var cached classroomListPayload
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: cached.Total}
		return cached.Items, pagination, true, nil
	}

	start := s.now()
	items, total, err := s.api.List(ctx, filter)
	s.metrics.ObserveUpstreamCall("classrooms", "list", time.Since(start))
	if err != nil {
		return nil, nil, false, err
	}

	if err := s.cache.Set(ctx, key, classroomListPayload{Items: items, Total: total}, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache classroom page", zap.String("key", key), zap.Error(err))
	}

	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return items, pagination, false, nil
}

// CheckConflict runs the synchronous form rules and forwards the request.
// The session-scoped workflow lives in ConflictService; this is the one-shot
// path mirroring the upstream contract.
func (s *ClassroomService) CheckConflict(ctx context.Context, req models.ConflictCheckRequest) (*models.ConflictCheckResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conflict check payload")
	}
	if v := rules.ValidateConflictForm(req, s.now()); !v.Valid {
		return nil, appErrors.Clone(appErrors.ErrValidation, strings.Join(v.Errors, "; "))
	}

	start := s.now()
	result, err := s.api.CheckConflict(ctx, req)
	s.metrics.ObserveUpstreamCall("classrooms", "check_conflict", time.Since(start))
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ConfirmSchedule books a slot and invalidates the classroom cache so the
// next listing reflects the new booking.
func (s *ClassroomService) ConfirmSchedule(ctx context.Context, req models.CreateScheduleRequest) (*models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	start := s.now()
	schedule, err := s.api.CreateSchedule(ctx, req)
	s.metrics.ObserveUpstreamCall("classrooms", "create_schedule", time.Since(start))
	if err != nil {
		return nil, err
	}

	s.InvalidateCache(ctx)
	return schedule, nil
}

// InvalidateCache drops every cached classroom listing. Bookings made through
// the session workflow call this instead of ConfirmSchedule.
func (s *ClassroomService) InvalidateCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, classroomCachePattern); err != nil {
		s.logger.Warn("failed to invalidate classroom cache", zap.Error(err))
	}
}

// Presets exposes the static time-preset table for form prefill.
func (s *ClassroomService) Presets() []rules.TimePreset {
	return rules.TimePresets()
}

func classroomCacheKey(filter models.ClassroomFilter) string {
	building := int64(0)
	if filter.BuildingID != nil {
		building = *filter.BuildingID
	}
	available := "any"
	if filter.IsAvailable != nil {
		available = fmt.Sprintf("%t", *filter.IsAvailable)
	}
	return fmt.Sprintf("classrooms:b=%d:a=%s:p=%d:s=%d", building, available, filter.Page, filter.Size)
}
