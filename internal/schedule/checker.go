// Package schedule drives the classroom conflict-check workflow: form state,
// synchronous guard rules, the round-trip to the backend conflict endpoint,
// and the submit gate on its verdict.
package schedule

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	"github.com/ailyedu2030/cet4-gateway/internal/rules"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
)

// Alert titles used when the backend omits a message.
const (
	AlertTimeAvailable = "时间可用"
	AlertTimeConflict  = "时间冲突"
)

const defaultBookingSpan = 2 * time.Hour

// ConflictChecker is the slice of the classroom API the workflow needs.
type ConflictChecker interface {
	CheckConflict(ctx context.Context, req models.ConflictCheckRequest) (*models.ConflictCheckResult, error)
	CreateSchedule(ctx context.Context, req models.CreateScheduleRequest) (*models.Schedule, error)
}

// Checker is one conflict-check session for a single classroom, the
// equivalent of one open booking dialog. At most one check is in flight at a
// time; each check carries a monotonic id and a response that is no longer
// the latest issued is discarded rather than displayed.
type Checker struct {
	api ConflictChecker
	now func() time.Time

	mu       sync.Mutex
	form     models.ConflictCheckRequest
	seq      uint64
	checking bool
	result   *models.ConflictCheckResult
}

// NewChecker opens a session with form defaults: start now, end two
// hours later, no recurrence.
func NewChecker(api ConflictChecker, classroomID int64) *Checker {
	c := &Checker{api: api, now: time.Now}
	c.reset(classroomID)
	return c
}

// WithClock overrides the time source. Test hook.
func (c *Checker) WithClock(now func() time.Time) *Checker {
	c.now = now
	return c
}

func (c *Checker) reset(classroomID int64) {
	start := c.now()
	c.form = models.ConflictCheckRequest{
		ClassroomID: classroomID,
		StartTime:   start,
		EndTime:     start.Add(defaultBookingSpan),
		RepeatType:  models.RepeatNone,
	}
	c.result = nil
	c.checking = false
	c.seq++
}

// Reset returns the session to its opening state and invalidates any check
// still in flight.
func (c *Checker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset(c.form.ClassroomID)
}

// Form returns a copy of the current form values.
func (c *Checker) Form() models.ConflictCheckRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// ApplyPreset overwrites start/end with the labelled preset re-applied onto
// the current start date. The previous verdict no longer describes the form,
// so it is dropped.
func (c *Checker) ApplyPreset(label string) error {
	preset, ok := rules.FindPreset(label)
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, "未知的时间预设: "+label)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	start, end, err := rules.ApplyPreset(preset, c.form.StartTime)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time preset")
	}
	c.form.StartTime = start
	c.form.EndTime = end
	c.result = nil
	return nil
}

// SetTimes replaces the start/end pair and drops the stale verdict.
func (c *Checker) SetTimes(start, end time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.StartTime = start
	c.form.EndTime = end
	c.result = nil
}

// SetRepeat replaces the recurrence settings and drops the stale verdict.
func (c *Checker) SetRepeat(repeat models.RepeatType, endDate *time.Time, days []int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.RepeatType = repeat
	c.form.RepeatEndDate = endDate
	c.form.RepeatDays = days
	c.result = nil
}

// SetExcludeSchedule marks an existing booking to ignore, used when editing.
func (c *Checker) SetExcludeSchedule(scheduleID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.ExcludeScheduleID = &scheduleID
	c.result = nil
}

// Validate runs the synchronous form rules against the current clock.
func (c *Checker) Validate() rules.Result {
	c.mu.Lock()
	form := c.form
	c.mu.Unlock()
	return rules.ValidateConflictForm(form, c.now())
}

// Checking reports whether a check is currently in flight.
func (c *Checker) Checking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checking
}

// Result returns the latest verdict, nil before the first completed check.
func (c *Checker) Result() *models.ConflictCheckResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Check validates the form and sends it to the backend. Exactly one check per
// session may be in flight; a response superseded by Reset or a newer check
// is discarded instead of overwriting the displayed verdict.
func (c *Checker) Check(ctx context.Context) (*models.ConflictCheckResult, error) {
	c.mu.Lock()
	if c.checking {
		c.mu.Unlock()
		return nil, appErrors.ErrCheckInFlight
	}
	if v := rules.ValidateConflictForm(c.form, c.now()); !v.Valid {
		c.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, strings.Join(v.Errors, "; "))
	}
	c.seq++
	id := c.seq
	c.checking = true
	form := c.form
	c.mu.Unlock()

	result, err := c.api.CheckConflict(ctx, form)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.checking = false
	if id != c.seq {
		return nil, appErrors.ErrStaleResponse
	}
	if err != nil {
		// Loading state clears, the form stays intact for a resubmit.
		return nil, err
	}
	c.result = result
	return result, nil
}

// CanConfirm gates submission: a completed check with no conflict, and no
// check pending.
func (c *Checker) CanConfirm() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result != nil && !c.result.HasConflict && !c.checking
}

// Confirm books the slot. It issues no further conflict check; the gate is
// the verdict already on hand.
func (c *Checker) Confirm(ctx context.Context, title, teacherName string) (*models.Schedule, error) {
	c.mu.Lock()
	if c.result == nil || c.checking {
		c.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, "请先完成冲突检测")
	}
	if c.result.HasConflict {
		c.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrConflict, "存在时间冲突，无法提交预约")
	}
	form := c.form
	c.mu.Unlock()

	return c.api.CreateSchedule(ctx, models.CreateScheduleRequest{
		ClassroomID:   form.ClassroomID,
		Title:         title,
		TeacherName:   teacherName,
		StartTime:     form.StartTime,
		EndTime:       form.EndTime,
		RepeatType:    form.RepeatType,
		RepeatEndDate: form.RepeatEndDate,
		RepeatDays:    form.RepeatDays,
	})
}

// BuildAlert converts a verdict into the render-ready alert payload: green
// "success" when the range is free, red "error" with the conflicting
// bookings itemized when it is not.
func BuildAlert(result *models.ConflictCheckResult) models.ConflictAlert {
	if result == nil {
		return models.ConflictAlert{}
	}
	title := result.Message
	if result.HasConflict {
		if title == "" {
			title = AlertTimeConflict
		}
		return models.ConflictAlert{Level: "error", Title: title, Conflicts: result.Conflicts}
	}
	if title == "" {
		title = AlertTimeAvailable
	}
	return models.ConflictAlert{Level: "success", Title: title}
}
