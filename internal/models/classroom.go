package models

import "time"

// Classroom represents a bookable room in a teaching building. The platform
// core API owns the lifecycle; the gateway reads it only.
type Classroom struct {
	ID            int64     `json:"id"`
	BuildingID    int64     `json:"building_id"`
	BuildingName  string    `json:"building_name"`
	Name          string    `json:"name"`
	RoomNumber    string    `json:"room_number"`
	Floor         int       `json:"floor"`
	Capacity      int       `json:"capacity"`
	HasProjector  bool      `json:"has_projector"`
	HasComputer   bool      `json:"has_computer"`
	HasAudio      bool      `json:"has_audio"`
	HasWhiteboard bool      `json:"has_whiteboard"`
	AvailableFrom string    `json:"available_from"`
	AvailableTo   string    `json:"available_to"`
	IsAvailable   bool      `json:"is_available"`
	Maintenance   bool      `json:"maintenance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ClassroomFilter describes query params for listing classrooms.
type ClassroomFilter struct {
	BuildingID  *int64
	IsAvailable *bool
	Page        int
	Size        int
}

// RepeatType enumerates the recurrence rules accepted by the conflict check.
type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
)

// Valid reports whether the repeat type is one of the accepted values.
func (r RepeatType) Valid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return true
	}
	return false
}

// ConflictCheckRequest is the transient payload sent to the conflict endpoint.
// It is built per user interaction and never persisted gateway-side.
type ConflictCheckRequest struct {
	ClassroomID       int64      `json:"classroom_id" validate:"required"`
	StartTime         time.Time  `json:"start_time" validate:"required"`
	EndTime           time.Time  `json:"end_time" validate:"required"`
	ExcludeScheduleID *int64     `json:"exclude_schedule_id,omitempty"`
	RepeatType        RepeatType `json:"repeat_type"`
	RepeatEndDate     *time.Time `json:"repeat_end_date,omitempty"`
	RepeatDays        []int      `json:"repeat_days,omitempty"`
}

// ConflictingBooking itemizes an existing reservation that overlaps the
// requested range.
type ConflictingBooking struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	TeacherName string `json:"teacher_name"`
}

// ConflictCheckResult is the backend's verdict on the requested range.
type ConflictCheckResult struct {
	HasConflict bool                 `json:"has_conflict"`
	Message     string               `json:"message"`
	ClassroomID int64                `json:"classroom_id"`
	StartTime   time.Time            `json:"start_time"`
	EndTime     time.Time            `json:"end_time"`
	Conflicts   []ConflictingBooking `json:"conflicts,omitempty"`
}

// CreateScheduleRequest confirms a booking once the range is known to be free.
type CreateScheduleRequest struct {
	ClassroomID   int64      `json:"classroom_id" validate:"required"`
	Title         string     `json:"title" validate:"required"`
	TeacherName   string     `json:"teacher_name"`
	StartTime     time.Time  `json:"start_time" validate:"required"`
	EndTime       time.Time  `json:"end_time" validate:"required"`
	RepeatType    RepeatType `json:"repeat_type"`
	RepeatEndDate *time.Time `json:"repeat_end_date,omitempty"`
	RepeatDays    []int      `json:"repeat_days,omitempty"`
}

// Schedule is the confirmed booking echoed back by the backend.
type Schedule struct {
	ID          int64      `json:"id"`
	ClassroomID int64      `json:"classroom_id"`
	Title       string     `json:"title"`
	TeacherName string     `json:"teacher_name"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	RepeatType  RepeatType `json:"repeat_type"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ConflictAlert is the render-ready verdict handed to the admin console:
// green ("success") when the range is free, red ("error") otherwise.
type ConflictAlert struct {
	Level     string               `json:"level"`
	Title     string               `json:"title"`
	Conflicts []ConflictingBooking `json:"conflicts,omitempty"`
}

// ConflictFormUpdate carries a partial edit of a conflict-check session
// form. Nil fields are left untouched; StartTime and EndTime travel
// together.
type ConflictFormUpdate struct {
	PresetLabel       *string     `json:"preset_label,omitempty"`
	StartTime         *time.Time  `json:"start_time,omitempty"`
	EndTime           *time.Time  `json:"end_time,omitempty"`
	RepeatType        *RepeatType `json:"repeat_type,omitempty"`
	RepeatEndDate     *time.Time  `json:"repeat_end_date,omitempty"`
	RepeatDays        []int       `json:"repeat_days,omitempty"`
	ExcludeScheduleID *int64      `json:"exclude_schedule_id,omitempty"`
}

// ConflictSessionState is the polling view of a conflict-check session.
type ConflictSessionState struct {
	Checking   bool                 `json:"checking"`
	CanConfirm bool                 `json:"can_confirm"`
	Form       ConflictCheckRequest `json:"form"`
}
