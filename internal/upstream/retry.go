package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
)

// GetWithRetry wraps Get in a bounded exponential backoff. Only idempotent
// reads are retried; mutating verbs always stay single-attempt. Client errors
// below 500 (including the 401 session logout) abort immediately.
func (c *Client) GetWithRetry(ctx context.Context, path string, query url.Values, dest interface{}) error {
	if c.retryMaxRetries <= 0 {
		return c.Get(ctx, path, query, dest)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval

	attempt := 0
	operation := func() error {
		attempt++
		err := c.Get(ctx, path, query, dest)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		c.logger.Warn("retrying upstream read",
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Error(err))
		return err
	}

	wrapped := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.retryMaxRetries)), ctx)
	return backoff.Retry(operation, wrapped)
}

func retryable(err error) bool {
	appErr := appErrors.FromError(err)
	if appErr.Code == appErrors.ErrSessionExpired.Code {
		return false
	}
	return appErr.Status >= http.StatusInternalServerError || appErr.Status == http.StatusBadGateway
}
