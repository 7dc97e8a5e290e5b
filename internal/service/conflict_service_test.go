package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
)

func newConflictService(gateway *fakeClassroomGateway) *ConflictService {
	return NewConflictService(gateway, nil).
		WithClock(func() time.Time { return serviceNow })
}

func TestConflictServiceOpenAndState(t *testing.T) {
	svc := newConflictService(&fakeClassroomGateway{})

	id, form := svc.Open(42)
	require.NotEmpty(t, id)
	assert.Equal(t, int64(42), form.ClassroomID)
	assert.Equal(t, serviceNow, form.StartTime)

	state, err := svc.State(id)
	require.NoError(t, err)
	assert.False(t, state.Checking)
	assert.False(t, state.CanConfirm)
}

func TestConflictServiceUnknownSession(t *testing.T) {
	svc := newConflictService(&fakeClassroomGateway{})

	_, err := svc.State("no-such-session")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestConflictServiceUpdateFormAppliesPreset(t *testing.T) {
	svc := newConflictService(&fakeClassroomGateway{})
	id, _ := svc.Open(42)

	label := "第一节课"
	form, err := svc.UpdateForm(id, models.ConflictFormUpdate{PresetLabel: &label})
	require.NoError(t, err)
	assert.Equal(t, 8, form.StartTime.Hour())
	assert.Equal(t, 9, form.EndTime.Hour())
	assert.Equal(t, 40, form.EndTime.Minute())
}

func TestConflictServiceFullWorkflow(t *testing.T) {
	gateway := &fakeClassroomGateway{
		checkResult: &models.ConflictCheckResult{HasConflict: false},
		schedule:    &models.Schedule{ID: 11, Title: "CET4听力集训"},
	}
	bookings := 0
	svc := newConflictService(gateway).
		WithBookingListener(func(context.Context) { bookings++ })
	id, _ := svc.Open(42)

	label := "第一节课"
	_, err := svc.UpdateForm(id, models.ConflictFormUpdate{PresetLabel: &label})
	require.NoError(t, err)

	alert, err := svc.Check(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "success", alert.Level)
	assert.Equal(t, "时间可用", alert.Title)

	state, err := svc.State(id)
	require.NoError(t, err)
	assert.True(t, state.CanConfirm)

	booked, err := svc.Confirm(context.Background(), id, "CET4听力集训", "王老师")
	require.NoError(t, err)
	assert.Equal(t, int64(11), booked.ID)
	assert.Equal(t, 1, bookings)

	// Confirm tears the session down.
	_, err = svc.State(id)
	require.Error(t, err)
}

func TestConflictServiceCheckRendersConflicts(t *testing.T) {
	gateway := &fakeClassroomGateway{
		checkResult: &models.ConflictCheckResult{
			HasConflict: true,
			Conflicts: []models.ConflictingBooking{
				{Title: "高级听力课", StartTime: "08:00", EndTime: "09:40"},
			},
		},
	}
	svc := newConflictService(gateway)
	id, _ := svc.Open(42)

	label := "第一节课"
	_, err := svc.UpdateForm(id, models.ConflictFormUpdate{PresetLabel: &label})
	require.NoError(t, err)

	alert, err := svc.Check(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "error", alert.Level)
	assert.Equal(t, "时间冲突", alert.Title)
	require.Len(t, alert.Conflicts, 1)

	_, err = svc.Confirm(context.Background(), id, "x", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	// Blocked confirm keeps the session alive for another attempt.
	_, err = svc.State(id)
	assert.NoError(t, err)
}

func TestConflictServiceConfirmWithoutCheck(t *testing.T) {
	svc := newConflictService(&fakeClassroomGateway{})
	id, _ := svc.Open(42)

	_, err := svc.Confirm(context.Background(), id, "x", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "请先完成冲突检测")
}

func TestConflictServiceCloseIsIdempotent(t *testing.T) {
	svc := newConflictService(&fakeClassroomGateway{})
	id, _ := svc.Open(42)

	svc.Close(id)
	svc.Close(id)

	_, err := svc.State(id)
	assert.Error(t, err)
}

func TestConflictServicePrunesExpiredSessions(t *testing.T) {
	current := serviceNow
	svc := NewConflictService(&fakeClassroomGateway{}, nil).
		WithClock(func() time.Time { return current })

	id, _ := svc.Open(42)
	current = current.Add(conflictSessionTTL + time.Minute)

	_, err := svc.State(id)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
