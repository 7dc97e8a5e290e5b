package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	"github.com/ailyedu2030/cet4-gateway/internal/rules"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
)

type fakeConflictAPI struct {
	mu              sync.Mutex
	checkCalls      int
	scheduleCalls   int
	checkResult     *models.ConflictCheckResult
	checkErr        error
	schedule        *models.Schedule
	scheduleErr     error
	lastCheckReq    models.ConflictCheckRequest
	lastCreateReq   models.CreateScheduleRequest
	releaseCheck    chan struct{}
	checkInProgress chan struct{}
}

func (f *fakeConflictAPI) CheckConflict(ctx context.Context, req models.ConflictCheckRequest) (*models.ConflictCheckResult, error) {
	f.mu.Lock()
	f.checkCalls++
	f.lastCheckReq = req
	inProgress := f.checkInProgress
	release := f.releaseCheck
	f.mu.Unlock()

	if inProgress != nil {
		close(inProgress)
		f.mu.Lock()
		f.checkInProgress = nil
		f.mu.Unlock()
	}
	if release != nil {
		<-release
	}
	return f.checkResult, f.checkErr
}

func (f *fakeConflictAPI) CreateSchedule(ctx context.Context, req models.CreateScheduleRequest) (*models.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduleCalls++
	f.lastCreateReq = req
	return f.schedule, f.scheduleErr
}

func (f *fakeConflictAPI) checks() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checkCalls
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2026, 3, 2, 7, 30, 0, 0, time.Local)

func newTestChecker(api *fakeConflictAPI) *Checker {
	c := NewChecker(api, 42).WithClock(fixedClock(testNow))
	c.Reset()
	return c
}

func TestCheckerDefaults(t *testing.T) {
	c := newTestChecker(&fakeConflictAPI{})

	form := c.Form()
	assert.Equal(t, int64(42), form.ClassroomID)
	assert.Equal(t, testNow, form.StartTime)
	assert.Equal(t, testNow.Add(2*time.Hour), form.EndTime)
	assert.Equal(t, models.RepeatNone, form.RepeatType)
	assert.Nil(t, c.Result())
	assert.False(t, c.CanConfirm())
}

func TestCheckerApplyPreset(t *testing.T) {
	c := newTestChecker(&fakeConflictAPI{})

	require.NoError(t, c.ApplyPreset("第一节课"))

	form := c.Form()
	assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local), form.StartTime)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 40, 0, 0, time.Local), form.EndTime)

	err := c.ApplyPreset("第五节课")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestCheckerCheckHappyPath(t *testing.T) {
	api := &fakeConflictAPI{checkResult: &models.ConflictCheckResult{HasConflict: false}}
	c := newTestChecker(api)
	require.NoError(t, c.ApplyPreset("第一节课"))

	result, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, result.HasConflict)
	assert.True(t, c.CanConfirm())
	assert.Equal(t, int64(42), api.lastCheckReq.ClassroomID)
}

func TestCheckerCheckRejectsInvalidForm(t *testing.T) {
	api := &fakeConflictAPI{}
	c := newTestChecker(api)
	c.SetTimes(testNow.Add(time.Hour), testNow.Add(time.Hour))

	_, err := c.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), rules.MsgEndBeforeStart)
	assert.Equal(t, 0, api.checks(), "invalid form must not reach the backend")
}

func TestCheckerSingleInFlight(t *testing.T) {
	api := &fakeConflictAPI{
		checkResult:    &models.ConflictCheckResult{},
		releaseCheck:   make(chan struct{}),
		checkInProgress: make(chan struct{}),
	}
	c := newTestChecker(api)
	require.NoError(t, c.ApplyPreset("第一节课"))

	started := api.checkInProgress
	done := make(chan error, 1)
	go func() {
		_, err := c.Check(context.Background())
		done <- err
	}()

	<-started
	assert.True(t, c.Checking())

	_, err := c.Check(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrCheckInFlight)

	close(api.releaseCheck)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.checks())
}

func TestCheckerStaleResponseDiscarded(t *testing.T) {
	api := &fakeConflictAPI{
		checkResult:    &models.ConflictCheckResult{HasConflict: false},
		releaseCheck:   make(chan struct{}),
		checkInProgress: make(chan struct{}),
	}
	c := newTestChecker(api)
	require.NoError(t, c.ApplyPreset("第一节课"))

	started := api.checkInProgress
	done := make(chan error, 1)
	go func() {
		_, err := c.Check(context.Background())
		done <- err
	}()

	<-started
	// Reset supersedes the in-flight check; its response must be dropped.
	c.Reset()
	close(api.releaseCheck)

	err := <-done
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrStaleResponse)
	assert.Nil(t, c.Result())
	assert.False(t, c.CanConfirm())
}

func TestCheckerEditDropsVerdict(t *testing.T) {
	api := &fakeConflictAPI{checkResult: &models.ConflictCheckResult{HasConflict: false}}
	c := newTestChecker(api)
	require.NoError(t, c.ApplyPreset("第一节课"))

	_, err := c.Check(context.Background())
	require.NoError(t, err)
	require.True(t, c.CanConfirm())

	c.SetTimes(testNow.Add(time.Hour), testNow.Add(3*time.Hour))
	assert.Nil(t, c.Result())
	assert.False(t, c.CanConfirm(), "edited form invalidates the verdict")
}

func TestCheckerCheckErrorKeepsForm(t *testing.T) {
	api := &fakeConflictAPI{checkErr: errors.New("upstream down")}
	c := newTestChecker(api)
	require.NoError(t, c.ApplyPreset("第一节课"))
	before := c.Form()

	_, err := c.Check(context.Background())
	require.Error(t, err)
	assert.False(t, c.Checking())
	assert.Equal(t, before, c.Form())
	assert.False(t, c.CanConfirm())
}

func TestCheckerConfirmRequiresCheck(t *testing.T) {
	api := &fakeConflictAPI{}
	c := newTestChecker(api)

	_, err := c.Confirm(context.Background(), "CET4听力集训", "王老师")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "请先完成冲突检测")
	assert.Equal(t, 0, api.scheduleCalls)
}

func TestCheckerConfirmBlockedByConflict(t *testing.T) {
	api := &fakeConflictAPI{checkResult: &models.ConflictCheckResult{
		HasConflict: true,
		Conflicts: []models.ConflictingBooking{
			{Title: "高级听力课", StartTime: "08:00", EndTime: "09:40"},
		},
	}}
	c := newTestChecker(api)
	require.NoError(t, c.ApplyPreset("第一节课"))

	_, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, c.CanConfirm())

	_, err = c.Confirm(context.Background(), "CET4听力集训", "王老师")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "存在时间冲突，无法提交预约")
	assert.Equal(t, 0, api.scheduleCalls)
}

func TestCheckerConfirmIssuesNoFurtherCheck(t *testing.T) {
	api := &fakeConflictAPI{
		checkResult: &models.ConflictCheckResult{HasConflict: false},
		schedule:    &models.Schedule{ID: 7, Title: "CET4听力集训"},
	}
	c := newTestChecker(api)
	require.NoError(t, c.ApplyPreset("第一节课"))

	_, err := c.Check(context.Background())
	require.NoError(t, err)

	booked, err := c.Confirm(context.Background(), "CET4听力集训", "王老师")
	require.NoError(t, err)
	assert.Equal(t, int64(7), booked.ID)

	assert.Equal(t, 1, api.checks(), "confirm must not re-run the conflict check")
	assert.Equal(t, 1, api.scheduleCalls)
	assert.Equal(t, "CET4听力集训", api.lastCreateReq.Title)
	assert.Equal(t, "王老师", api.lastCreateReq.TeacherName)
	assert.Equal(t, c.Form().StartTime, api.lastCreateReq.StartTime)
}

func TestBuildAlert(t *testing.T) {
	green := BuildAlert(&models.ConflictCheckResult{HasConflict: false})
	assert.Equal(t, "success", green.Level)
	assert.Equal(t, AlertTimeAvailable, green.Title)
	assert.Empty(t, green.Conflicts)

	red := BuildAlert(&models.ConflictCheckResult{
		HasConflict: true,
		Conflicts: []models.ConflictingBooking{
			{Title: "高级听力课", StartTime: "08:00", EndTime: "09:40", TeacherName: "李老师"},
		},
	})
	assert.Equal(t, "error", red.Level)
	assert.Equal(t, AlertTimeConflict, red.Title)
	require.Len(t, red.Conflicts, 1)
	assert.Equal(t, "高级听力课", red.Conflicts[0].Title)

	custom := BuildAlert(&models.ConflictCheckResult{HasConflict: false, Message: "该时段可以预约"})
	assert.Equal(t, "该时段可以预约", custom.Title)
}
