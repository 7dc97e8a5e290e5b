package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	"github.com/ailyedu2030/cet4-gateway/internal/rules"
	"github.com/ailyedu2030/cet4-gateway/internal/upstream"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
)

const (
	applicationBasePath    = "/api/v1/users/registration/applications"
	applicationBatchReview = applicationBasePath + "/batch-review"
)

// RegistrationAPI wraps the student registration review endpoints.
type RegistrationAPI struct {
	client *upstream.Client
}

// NewRegistrationAPI binds the module to the shared upstream client.
func NewRegistrationAPI(client *upstream.Client) *RegistrationAPI {
	return &RegistrationAPI{client: client}
}

type applicationListResponse struct {
	Items []models.RegistrationApplication `json:"items"`
	Total int                              `json:"total"`
}

// ListApplications fetches a page of pending registrations.
func (a *RegistrationAPI) ListApplications(ctx context.Context, filter models.ApplicationFilter) ([]models.RegistrationApplication, int, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Size > 0 {
		query.Set("size", strconv.Itoa(filter.Size))
	}

	var payload applicationListResponse
	if err := a.client.GetWithRetry(ctx, applicationBasePath, query, &payload); err != nil {
		return nil, 0, err
	}
	return payload.Items, payload.Total, nil
}

// Review decides a single application.
func (a *RegistrationAPI) Review(ctx context.Context, applicationID int64, req models.ReviewRequest) error {
	path := fmt.Sprintf("%s/%d/review", applicationBasePath, applicationID)
	return a.client.Post(ctx, path, req, nil)
}

// BatchReview decides up to rules.BatchReviewLimit applications in one call.
// Oversized batches fail locally, before any request is sent.
func (a *RegistrationAPI) BatchReview(ctx context.Context, req models.BatchReviewRequest) (*models.BatchReviewResult, error) {
	if guard := rules.CheckBatchReviewSize(len(req.ApplicationIDs)); !guard.Valid {
		return nil, appErrors.Clone(appErrors.ErrValidation, guard.Errors[0])
	}

	var result models.BatchReviewResult
	if err := a.client.Post(ctx, applicationBatchReview, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
