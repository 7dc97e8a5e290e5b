package rules

import (
	"fmt"
	"time"
)

// TimePreset maps a lesson-slot label to a fixed start/end pair. Presets only
// prefill the conflict-check form; the user can still adjust times freely.
type TimePreset struct {
	Label     string        `json:"label"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	Duration  time.Duration `json:"-"`
}

var timePresets = []TimePreset{
	{Label: "第一节课", StartTime: "08:00", EndTime: "09:40", Duration: 100 * time.Minute},
	{Label: "第二节课", StartTime: "10:00", EndTime: "11:40", Duration: 100 * time.Minute},
	{Label: "第三节课", StartTime: "14:00", EndTime: "15:40", Duration: 100 * time.Minute},
	{Label: "第四节课", StartTime: "16:00", EndTime: "17:40", Duration: 100 * time.Minute},
	{Label: "晚自习", StartTime: "19:00", EndTime: "21:00", Duration: 120 * time.Minute},
}

// TimePresets returns the static preset table.
func TimePresets() []TimePreset {
	out := make([]TimePreset, len(timePresets))
	copy(out, timePresets)
	return out
}

// FindPreset looks a preset up by label.
func FindPreset(label string) (TimePreset, bool) {
	for _, p := range timePresets {
		if p.Label == label {
			return p, true
		}
	}
	return TimePreset{}, false
}

// ApplyPreset re-applies the preset's "HH:MM" pair onto the base date's
// existing year/month/day. An end time at or before the start stays on the
// same date; the form rules reject it instead of rolling to the next day.
func ApplyPreset(preset TimePreset, base time.Time) (start, end time.Time, err error) {
	start, err = atClock(base, preset.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse preset start %q: %w", preset.StartTime, err)
	}
	end, err = atClock(base, preset.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse preset end %q: %w", preset.EndTime, err)
	}
	return start, end, nil
}

func atClock(base time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(base.Year(), base.Month(), base.Day(), parsed.Hour(), parsed.Minute(), 0, 0, base.Location()), nil
}
