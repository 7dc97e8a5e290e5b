package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
)

func conflictForm(start, end time.Time) models.ConflictCheckRequest {
	return models.ConflictCheckRequest{
		ClassroomID: 1,
		StartTime:   start,
		EndTime:     end,
	}
}

func TestValidateConflictFormAccepts(t *testing.T) {
	now := time.Date(2026, 3, 2, 7, 0, 0, 0, time.Local)
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)

	result := ValidateConflictForm(conflictForm(start, start.Add(100*time.Minute)), now)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateConflictFormRejectsPastStart(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	start := now.Add(-time.Hour)

	result := ValidateConflictForm(conflictForm(start, start.Add(2*time.Hour)), now)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, MsgStartInPast)
}

func TestValidateConflictFormRejectsEndBeforeStart(t *testing.T) {
	now := time.Date(2026, 3, 2, 7, 0, 0, 0, time.Local)
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)

	for _, end := range []time.Time{start, start.Add(-time.Hour)} {
		result := ValidateConflictForm(conflictForm(start, end), now)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors, MsgEndBeforeStart)
	}
}

func TestValidateConflictFormMidnightEndStaysSameDay(t *testing.T) {
	// 23:00 -> 00:00 on the same date is end-before-start, never next-day.
	now := time.Date(2026, 3, 2, 7, 0, 0, 0, time.Local)
	start := time.Date(2026, 3, 2, 23, 0, 0, 0, time.Local)
	end := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)

	result := ValidateConflictForm(conflictForm(start, end), now)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, MsgEndBeforeStart)
}

func TestValidateConflictFormCollectsAllFailures(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	start := now.Add(-time.Hour)

	result := ValidateConflictForm(conflictForm(start, start.Add(-time.Hour)), now)

	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 2)
}

func TestValidateConflictFormRepeatRules(t *testing.T) {
	now := time.Date(2026, 3, 2, 7, 0, 0, 0, time.Local)
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)

	form := conflictForm(start, start.Add(time.Hour))
	form.RepeatType = models.RepeatWeekly

	result := ValidateConflictForm(form, now)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, MsgRepeatEndRequired)

	endDate := start.AddDate(0, 1, 0)
	form.RepeatEndDate = &endDate
	assert.True(t, ValidateConflictForm(form, now).Valid)

	before := start.AddDate(0, 0, -1)
	form.RepeatEndDate = &before
	result = ValidateConflictForm(form, now)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, MsgRepeatEndBeforeStart)
}

func TestValidateConflictFormUnknownRepeatType(t *testing.T) {
	now := time.Date(2026, 3, 2, 7, 0, 0, 0, time.Local)
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)

	form := conflictForm(start, start.Add(time.Hour))
	form.RepeatType = models.RepeatType("yearly")

	result := ValidateConflictForm(form, now)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, MsgInvalidRepeatType)
}

func TestCheckBatchReviewSize(t *testing.T) {
	assert.True(t, CheckBatchReviewSize(1).Valid)
	assert.True(t, CheckBatchReviewSize(BatchReviewLimit).Valid)

	result := CheckBatchReviewSize(BatchReviewLimit + 1)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, MsgBatchReviewLimit)
}

func TestValidateWorkshopConfig(t *testing.T) {
	cfg := models.WorkshopConfig{Stages: []models.WorkshopStage{
		{Name: "听力训练", Percent: 30},
		{Name: "阅读训练", Percent: 40},
		{Name: "写作训练", Percent: 30},
	}}
	assert.True(t, ValidateWorkshopConfig(cfg).Valid)

	cfg.Stages[2].Percent = 20
	result := ValidateWorkshopConfig(cfg)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, MsgWorkshopPercentSum)
}
