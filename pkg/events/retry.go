package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/organcare/pkg/logger"
)

const (
	maxRetries     = 3
	retryBaseDelay = time.Second
)

var defaultRetry = retryPolicy{attempts: maxRetries, baseDelay: retryBaseDelay}

// retryPolicy runs a handler up to attempts times, doubling the pause after
// each failure.
type retryPolicy struct {
	attempts  int
	baseDelay time.Duration
}

func (p retryPolicy) run(ctx context.Context, msg *message.Message, handler Handler, log logger.Logger) error {
	return retryWithBackoff(ctx, msg, handler, p.attempts, p.baseDelay, log)
}

func retryWithBackoff(
	ctx context.Context,
	msg *message.Message,
	handler Handler,
	attempts int,
	baseDelay time.Duration,
	log logger.Logger,
) error {
	delay := baseDelay
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		log.WarnContext(ctx, "events: handler failed, retrying",
			"message_id", msg.UUID,
			"attempt", attempt,
			"next_delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return fmt.Errorf("events: retry aborted: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("events: handler failed after %d attempts: %w", attempts, err)
}
