package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	"github.com/ailyedu2030/cet4-gateway/internal/service"
)

type fakeRegistrationUpstream struct {
	applications []models.RegistrationApplication
	total        int
	reviewErr    error
	batchResult  *models.BatchReviewResult
	batchErr     error
	batchCalls   int
}

func (f *fakeRegistrationUpstream) ListApplications(ctx context.Context, filter models.ApplicationFilter) ([]models.RegistrationApplication, int, error) {
	return f.applications, f.total, nil
}

func (f *fakeRegistrationUpstream) Review(ctx context.Context, applicationID int64, req models.ReviewRequest) error {
	return f.reviewErr
}

func (f *fakeRegistrationUpstream) BatchReview(ctx context.Context, req models.BatchReviewRequest) (*models.BatchReviewResult, error) {
	f.batchCalls++
	return f.batchResult, f.batchErr
}

func newRegistrationHandler(api *fakeRegistrationUpstream) *RegistrationHandler {
	gin.SetMode(gin.TestMode)
	svc := service.NewRegistrationService(api, nil, service.NewMetricsService(), nil, nil)
	return NewRegistrationHandler(svc)
}

func TestRegistrationHandlerList(t *testing.T) {
	h := newRegistrationHandler(&fakeRegistrationUpstream{
		applications: []models.RegistrationApplication{{ID: 1, StudentName: "张三", Status: "pending"}},
		total:        1,
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/registrations?status=pending", nil)

	h.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "张三", env.Data[0]["student_name"])
}

func TestRegistrationHandlerReview(t *testing.T) {
	h := newRegistrationHandler(&fakeRegistrationUpstream{})

	payload, _ := json.Marshal(models.ReviewRequest{Approved: true, Comment: "资料齐全"})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/registrations/7/review", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	h.Review(c)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegistrationHandlerReviewBadID(t *testing.T) {
	h := newRegistrationHandler(&fakeRegistrationUpstream{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/registrations/abc/review", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Review(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegistrationHandlerBatchReview(t *testing.T) {
	api := &fakeRegistrationUpstream{batchResult: &models.BatchReviewResult{Reviewed: 3}}
	h := newRegistrationHandler(api)

	payload, _ := json.Marshal(models.BatchReviewRequest{
		ApplicationIDs: []int64{1, 2, 3},
		Approved:       true,
	})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/registrations/batch-review", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	h.BatchReview(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, float64(3), env.Data["reviewed"])
	assert.Equal(t, 1, api.batchCalls)
}
