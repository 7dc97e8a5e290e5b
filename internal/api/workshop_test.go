package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	"github.com/ailyedu2030/cet4-gateway/internal/rules"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
)

func TestWorkshopAPIGetConfig(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/training-workshop/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.WorkshopConfig{Stages: []models.WorkshopStage{ //nolint:errcheck
			{Name: "听力训练", Percent: 50},
			{Name: "阅读训练", Percent: 50},
		}})
	})

	api := NewWorkshopAPI(newTestClient(t, mux))
	cfg, err := api.GetConfig(context.Background())

	require.NoError(t, err)
	require.Len(t, cfg.Stages, 2)
	assert.Equal(t, "听力训练", cfg.Stages[0].Name)
}

func TestWorkshopAPIUpdateConfigRejectsBadPercentsLocally(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	api := NewWorkshopAPI(newTestClient(t, mux))
	err := api.UpdateConfig(context.Background(), models.WorkshopConfig{Stages: []models.WorkshopStage{
		{Name: "听力训练", Percent: 60},
		{Name: "阅读训练", Percent: 60},
	}})

	require.Error(t, err)
	assert.Equal(t, rules.MsgWorkshopPercentSum, appErrors.FromError(err).Message)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestWorkshopAPIUpdateConfig(t *testing.T) {
	var gotMethod string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/training-workshop/config", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	})

	api := NewWorkshopAPI(newTestClient(t, mux))
	err := api.UpdateConfig(context.Background(), models.WorkshopConfig{Stages: []models.WorkshopStage{
		{Name: "听力训练", Percent: 40},
		{Name: "阅读训练", Percent: 60},
	}})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
}
