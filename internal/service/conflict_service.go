package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	"github.com/ailyedu2030/cet4-gateway/internal/schedule"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
)

// conflictSessionTTL bounds how long an abandoned booking dialog keeps its
// checker alive in the gateway.
const conflictSessionTTL = 30 * time.Minute

type conflictSession struct {
	checker  *schedule.Checker
	lastUsed time.Time
}

// ConflictService maps booking-dialog sessions onto schedule.Checker
// instances. Each open dialog gets its own checker so stale-response
// suppression and the confirm gate work per dialog, not per process.
type ConflictService struct {
	api      schedule.ConflictChecker
	logger   *zap.Logger
	now      func() time.Time
	onBooked func(ctx context.Context)

	mu       sync.Mutex
	sessions map[string]*conflictSession
}

// NewConflictService instantiates ConflictService.
func NewConflictService(api schedule.ConflictChecker, logger *zap.Logger) *ConflictService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictService{
		api:      api,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*conflictSession),
	}
}

// WithClock overrides the time source. Test hook.
func (s *ConflictService) WithClock(now func() time.Time) *ConflictService {
	s.now = now
	return s
}

// WithBookingListener registers a callback fired after each successful
// confirm, so cached classroom listings can be dropped.
func (s *ConflictService) WithBookingListener(fn func(ctx context.Context)) *ConflictService {
	s.onBooked = fn
	return s
}

// Open creates a checker session for a classroom and returns its id along
// with the prefilled form.
func (s *ConflictService) Open(classroomID int64) (string, models.ConflictCheckRequest) {
	checker := schedule.NewChecker(s.api, classroomID).WithClock(s.now)
	checker.Reset()
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.sessions[id] = &conflictSession{checker: checker, lastUsed: s.now()}
	return id, checker.Form()
}

// Close discards a session. Closing an unknown id is a no-op.
func (s *ConflictService) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// UpdateForm mutates the session form. Preset application and manual edits
// both land here; either drops any verdict already held.
func (s *ConflictService) UpdateForm(id string, update models.ConflictFormUpdate) (models.ConflictCheckRequest, error) {
	checker, err := s.lookup(id)
	if err != nil {
		return models.ConflictCheckRequest{}, err
	}

	if update.PresetLabel != nil {
		if err := checker.ApplyPreset(*update.PresetLabel); err != nil {
			return models.ConflictCheckRequest{}, err
		}
	}
	if update.StartTime != nil && update.EndTime != nil {
		checker.SetTimes(*update.StartTime, *update.EndTime)
	}
	if update.RepeatType != nil {
		checker.SetRepeat(*update.RepeatType, update.RepeatEndDate, update.RepeatDays)
	}
	if update.ExcludeScheduleID != nil {
		checker.SetExcludeSchedule(*update.ExcludeScheduleID)
	}
	return checker.Form(), nil
}

// Check runs the conflict probe for the session and renders the alert card.
func (s *ConflictService) Check(ctx context.Context, id string) (*models.ConflictAlert, error) {
	checker, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	result, err := checker.Check(ctx)
	if err != nil {
		return nil, err
	}
	alert := schedule.BuildAlert(result)
	return &alert, nil
}

// Confirm submits the booking for a session that holds a clean verdict and
// tears the session down on success.
func (s *ConflictService) Confirm(ctx context.Context, id, title, teacherName string) (*models.Schedule, error) {
	checker, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	booked, err := checker.Confirm(ctx, title, teacherName)
	if err != nil {
		return nil, err
	}

	s.Close(id)
	if s.onBooked != nil {
		s.onBooked(ctx)
	}
	return booked, nil
}

// State reports whether the session can confirm, for polling clients.
func (s *ConflictService) State(id string) (models.ConflictSessionState, error) {
	checker, err := s.lookup(id)
	if err != nil {
		return models.ConflictSessionState{}, err
	}
	return models.ConflictSessionState{
		Checking:   checker.Checking(),
		CanConfirm: checker.CanConfirm(),
		Form:       checker.Form(),
	}, nil
}

func (s *ConflictService) lookup(id string) (*schedule.Checker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()

	session, ok := s.sessions[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "conflict check session not found or expired")
	}
	session.lastUsed = s.now()
	return session.checker, nil
}

func (s *ConflictService) pruneLocked() {
	cutoff := s.now().Add(-conflictSessionTTL)
	for id, session := range s.sessions {
		if session.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
