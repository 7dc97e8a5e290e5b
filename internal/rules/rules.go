// Package rules holds the client-side guard rules the admin console enforces
// before any request leaves the gateway. Everything here is pure: no HTTP, no
// framework, structured results only.
package rules

import (
	"time"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
)

// User-facing rule messages, surfaced verbatim on form fields.
const (
	MsgStartInPast          = "开始时间不能早于当前时间"
	MsgEndBeforeStart       = "结束时间必须晚于开始时间"
	MsgInvalidRepeatType    = "无效的重复类型"
	MsgRepeatEndRequired    = "请设置重复结束日期"
	MsgRepeatEndBeforeStart = "重复结束日期必须晚于开始时间"
	MsgBatchReviewLimit     = "批量审核最多支持20条申请"
	MsgWorkshopPercentSum   = "各阶段占比之和必须等于100"
)

// BatchReviewLimit caps how many applications one batch review may carry.
const BatchReviewLimit = 20

// Result reports rule evaluation without touching the inputs.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func failure(errs ...string) Result { return Result{Valid: false, Errors: errs} }

func success() Result { return Result{Valid: true} }

// ValidateConflictForm runs the synchronous form rules for a conflict check.
// Failures block submission but never mutate the form. A same-date end time
// earlier than the start fails the end-after-start rule rather than being
// read as next-day.
func ValidateConflictForm(form models.ConflictCheckRequest, now time.Time) Result {
	var errs []string

	if form.StartTime.Before(now) {
		errs = append(errs, MsgStartInPast)
	}
	if !form.EndTime.After(form.StartTime) {
		errs = append(errs, MsgEndBeforeStart)
	}

	repeat := form.RepeatType
	if repeat == "" {
		repeat = models.RepeatNone
	}
	switch {
	case !repeat.Valid():
		errs = append(errs, MsgInvalidRepeatType)
	case repeat != models.RepeatNone:
		if form.RepeatEndDate == nil {
			errs = append(errs, MsgRepeatEndRequired)
		} else if !form.RepeatEndDate.After(form.StartTime) {
			errs = append(errs, MsgRepeatEndBeforeStart)
		}
	}

	if len(errs) > 0 {
		return failure(errs...)
	}
	return success()
}

// CheckBatchReviewSize guards the batch review endpoint before any network
// call is made.
func CheckBatchReviewSize(count int) Result {
	if count > BatchReviewLimit {
		return failure(MsgBatchReviewLimit)
	}
	return success()
}

// ValidateWorkshopConfig requires stage percentages to sum to exactly 100.
func ValidateWorkshopConfig(cfg models.WorkshopConfig) Result {
	total := 0
	for _, stage := range cfg.Stages {
		total += stage.Percent
	}
	if total != 100 {
		return failure(MsgWorkshopPercentSum)
	}
	return success()
}
