// Package api contains the typed wrappers around the platform core REST
// endpoints. Modules here bind a fixed path and method to request/response
// shapes and nothing else; errors propagate untouched to the caller.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	"github.com/ailyedu2030/cet4-gateway/internal/upstream"
)

const (
	classroomBasePath     = "/api/v1/users/basic-info/classrooms"
	classroomConflictPath = classroomBasePath + "/check-conflict"
	classroomSchedulePath = classroomBasePath + "/schedules"
)

// ClassroomAPI wraps the classroom resource group.
type ClassroomAPI struct {
	client *upstream.Client
}

// NewClassroomAPI binds the module to the shared upstream client.
func NewClassroomAPI(client *upstream.Client) *ClassroomAPI {
	return &ClassroomAPI{client: client}
}

type classroomListResponse struct {
	Items []models.Classroom `json:"items"`
	Total int                `json:"total"`
}

// List fetches a classroom page. Reads go through the bounded retry path.
func (a *ClassroomAPI) List(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, int, error) {
	query := url.Values{}
	if filter.BuildingID != nil {
		query.Set("building_id", strconv.FormatInt(*filter.BuildingID, 10))
	}
	if filter.IsAvailable != nil {
		query.Set("is_available", strconv.FormatBool(*filter.IsAvailable))
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Size > 0 {
		query.Set("size", strconv.Itoa(filter.Size))
	}

	var payload classroomListResponse
	if err := a.client.GetWithRetry(ctx, classroomBasePath, query, &payload); err != nil {
		return nil, 0, err
	}
	return payload.Items, payload.Total, nil
}

// CheckConflict asks the backend whether the proposed range overlaps existing
// bookings. All authoritative conflict computation happens server-side.
func (a *ClassroomAPI) CheckConflict(ctx context.Context, req models.ConflictCheckRequest) (*models.ConflictCheckResult, error) {
	var result models.ConflictCheckResult
	if err := a.client.Post(ctx, classroomConflictPath, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateSchedule confirms a booking. It never re-checks conflicts; callers
// gate on the last conflict verdict.
func (a *ClassroomAPI) CreateSchedule(ctx context.Context, req models.CreateScheduleRequest) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := a.client.Post(ctx, classroomSchedulePath, req, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// DeleteSchedule cancels a confirmed booking.
func (a *ClassroomAPI) DeleteSchedule(ctx context.Context, scheduleID int64) error {
	return a.client.Delete(ctx, fmt.Sprintf("%s/%d", classroomSchedulePath, scheduleID))
}
