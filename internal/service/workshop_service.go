package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
)

type workshopGateway interface {
	GetConfig(ctx context.Context) (*models.WorkshopConfig, error)
	UpdateConfig(ctx context.Context, cfg models.WorkshopConfig) error
}

// WorkshopService fronts the training-workshop configuration. Stage
// percentage validation happens in the API module before the round-trip.
type WorkshopService struct {
	api     workshopGateway
	metrics *MetricsService
	logger  *zap.Logger
}

// NewWorkshopService instantiates WorkshopService.
func NewWorkshopService(api workshopGateway, metrics *MetricsService, logger *zap.Logger) *WorkshopService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkshopService{api: api, metrics: metrics, logger: logger}
}

// GetConfig returns the current workshop stage configuration.
func (s *WorkshopService) GetConfig(ctx context.Context) (*models.WorkshopConfig, error) {
	start := time.Now()
	cfg, err := s.api.GetConfig(ctx)
	s.metrics.ObserveUpstreamCall("workshop", "get_config", time.Since(start))
	return cfg, err
}

// UpdateConfig replaces the workshop stage configuration.
func (s *WorkshopService) UpdateConfig(ctx context.Context, cfg models.WorkshopConfig) error {
	start := time.Now()
	err := s.api.UpdateConfig(ctx, cfg)
	s.metrics.ObserveUpstreamCall("workshop", "update_config", time.Since(start))
	if err == nil {
		s.logger.Info("workshop config updated", zap.Int("stages", len(cfg.Stages)))
	}
	return err
}
