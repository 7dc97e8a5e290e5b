package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
	"github.com/ailyedu2030/cet4-gateway/pkg/jobs"
)

type fakeNotificationGateway struct {
	mu        sync.Mutex
	sent      []models.SendNotificationRequest
	sendErr   error
	failTimes int
	delivered chan struct{}
}

func (f *fakeNotificationGateway) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error) {
	return []models.Notification{{ID: 1, Title: "系统通知"}}, 1, nil
}

func (f *fakeNotificationGateway) Send(ctx context.Context, req models.SendNotificationRequest) error {
	f.mu.Lock()
	if f.failTimes > 0 {
		f.failTimes--
		f.mu.Unlock()
		return f.sendErr
	}
	f.sent = append(f.sent, req)
	delivered := f.delivered
	f.mu.Unlock()
	if delivered != nil {
		delivered <- struct{}{}
	}
	return nil
}

func (f *fakeNotificationGateway) MarkRead(ctx context.Context, notificationID int64) error {
	return nil
}

func newNotificationService(t *testing.T, gateway *fakeNotificationGateway) *NotificationService {
	t.Helper()
	svc := NewNotificationService(gateway, jobs.QueueConfig{
		Workers:    1,
		MaxRetries: 2,
		RetryDelay: 5 * time.Millisecond,
	}, NewMetricsService(), nil, nil)
	svc.Start(context.Background())
	t.Cleanup(svc.Stop)
	return svc
}

func validSend() models.SendNotificationRequest {
	return models.SendNotificationRequest{
		Title:        "报名审核通过",
		Content:      "您的报名申请已通过审核。",
		Channel:      models.NotificationChannelInApp,
		RecipientIDs: []int64{1},
	}
}

func TestNotificationServiceDispatchDelivers(t *testing.T) {
	gateway := &fakeNotificationGateway{delivered: make(chan struct{}, 1)}
	svc := newNotificationService(t, gateway)

	jobID, err := svc.Dispatch(context.Background(), validSend())
	require.NoError(t, err)
	assert.NotEmpty(t, jobID)

	select {
	case <-gateway.delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered")
	}

	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	require.Len(t, gateway.sent, 1)
	assert.Equal(t, "报名审核通过", gateway.sent[0].Title)
}

func TestNotificationServiceDispatchValidates(t *testing.T) {
	svc := newNotificationService(t, &fakeNotificationGateway{})

	_, err := svc.Dispatch(context.Background(), models.SendNotificationRequest{Title: "缺少内容"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestNotificationServiceRetriesTransientFailures(t *testing.T) {
	gateway := &fakeNotificationGateway{
		delivered: make(chan struct{}, 1),
		failTimes: 1,
		sendErr:   appErrors.ErrUpstream,
	}
	svc := newNotificationService(t, gateway)

	_, err := svc.Dispatch(context.Background(), validSend())
	require.NoError(t, err)

	select {
	case <-gateway.delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not retried to completion")
	}
}

func TestNotificationServiceList(t *testing.T) {
	svc := newNotificationService(t, &fakeNotificationGateway{})

	items, pagination, err := svc.List(context.Background(), models.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestNotificationServiceEnqueueSwallowsErrors(t *testing.T) {
	svc := newNotificationService(t, &fakeNotificationGateway{})

	// Invalid payload is logged and dropped, not surfaced.
	svc.Enqueue(context.Background(), models.SendNotificationRequest{})
}
