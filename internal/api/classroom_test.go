package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	"github.com/ailyedu2030/cet4-gateway/internal/upstream"
	"github.com/ailyedu2030/cet4-gateway/pkg/config"
)

func newTestClient(t *testing.T, handler http.Handler) *upstream.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return upstream.NewClient(config.UpstreamConfig{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	}, upstream.NewMemorySession("svc-token"), nil)
}

func TestClassroomAPIList(t *testing.T) {
	var gotPath, gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/basic-info/classrooms", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"items": []models.Classroom{{ID: 1, Name: "多媒体教室101"}},
			"total": 1,
		})
	})

	api := NewClassroomAPI(newTestClient(t, mux))
	buildingID := int64(3)
	available := true
	items, total, err := api.List(context.Background(), models.ClassroomFilter{
		BuildingID:  &buildingID,
		IsAvailable: &available,
		Page:        2,
		Size:        10,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "多媒体教室101", items[0].Name)
	assert.Equal(t, "/api/v1/users/basic-info/classrooms", gotPath)
	assert.Contains(t, gotQuery, "building_id=3")
	assert.Contains(t, gotQuery, "is_available=true")
	assert.Contains(t, gotQuery, "page=2")
}

func TestClassroomAPICheckConflictGreen(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/basic-info/classrooms/check-conflict", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.ConflictCheckResult{ //nolint:errcheck
			HasConflict: false,
			Message:     "时间可用",
		})
	})

	api := NewClassroomAPI(newTestClient(t, mux))
	result, err := api.CheckConflict(context.Background(), models.ConflictCheckRequest{
		ClassroomID: 1,
		StartTime:   time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local),
		EndTime:     time.Date(2026, 3, 2, 9, 40, 0, 0, time.Local),
	})

	require.NoError(t, err)
	assert.False(t, result.HasConflict)
	assert.Equal(t, "时间可用", result.Message)
}

func TestClassroomAPICheckConflictRed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/basic-info/classrooms/check-conflict", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.ConflictCheckResult{ //nolint:errcheck
			HasConflict: true,
			Conflicts: []models.ConflictingBooking{
				{ID: 9, Title: "高级听力课", StartTime: "08:00", EndTime: "09:40", TeacherName: "李老师"},
			},
		})
	})

	api := NewClassroomAPI(newTestClient(t, mux))
	result, err := api.CheckConflict(context.Background(), models.ConflictCheckRequest{ClassroomID: 1})

	require.NoError(t, err)
	assert.True(t, result.HasConflict)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "高级听力课", result.Conflicts[0].Title)
}

func TestClassroomAPICreateAndDeleteSchedule(t *testing.T) {
	var deletedPath string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/basic-info/classrooms/schedules", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.Schedule{ID: 55, Title: "CET4晚自习"}) //nolint:errcheck
	})
	mux.HandleFunc("/api/v1/users/basic-info/classrooms/schedules/55", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		deletedPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	api := NewClassroomAPI(newTestClient(t, mux))
	schedule, err := api.CreateSchedule(context.Background(), models.CreateScheduleRequest{
		ClassroomID: 1,
		Title:       "CET4晚自习",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(55), schedule.ID)

	require.NoError(t, api.DeleteSchedule(context.Background(), 55))
	assert.Equal(t, "/api/v1/users/basic-info/classrooms/schedules/55", deletedPath)
}
