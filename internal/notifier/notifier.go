// Package notifier sends outbound messages to participants.
//
// Delivery is best-effort: callers log a failed send and move on. A
// notification failure must never roll back or block the state change that
// triggered it.
package notifier

import (
	"context"
	"log/slog"
)

// Notifier delivers one message to one recipient.
type Notifier interface {
	// Notify sends an HTML message. The returned error is informational;
	// callers log it and continue.
	Notify(ctx context.Context, to, subject, body string) error
}

// Noop is a Notifier used when no mail transport is configured. It logs the
// would-be message at debug level and reports success.
type Noop struct{}

func (Noop) Notify(_ context.Context, to, subject, _ string) error {
	slog.Debug("Notification skipped (no mail transport)", "to", to, "subject", subject)
	return nil
}
