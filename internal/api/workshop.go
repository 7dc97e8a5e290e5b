package api

import (
	"context"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	"github.com/ailyedu2030/cet4-gateway/internal/rules"
	"github.com/ailyedu2030/cet4-gateway/internal/upstream"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
)

const workshopConfigPath = "/api/v1/training-workshop/config"

// WorkshopAPI wraps the training-workshop configuration endpoints.
type WorkshopAPI struct {
	client *upstream.Client
}

// NewWorkshopAPI binds the module to the shared upstream client.
func NewWorkshopAPI(client *upstream.Client) *WorkshopAPI {
	return &WorkshopAPI{client: client}
}

// GetConfig fetches the current grading configuration.
func (a *WorkshopAPI) GetConfig(ctx context.Context) (*models.WorkshopConfig, error) {
	var cfg models.WorkshopConfig
	if err := a.client.GetWithRetry(ctx, workshopConfigPath, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdateConfig replaces the grading configuration. The percentage-sum rule
// runs locally before the request is sent.
func (a *WorkshopAPI) UpdateConfig(ctx context.Context, cfg models.WorkshopConfig) error {
	if guard := rules.ValidateWorkshopConfig(cfg); !guard.Valid {
		return appErrors.Clone(appErrors.ErrValidation, guard.Errors[0])
	}
	return a.client.Put(ctx, workshopConfigPath, cfg, nil)
}
