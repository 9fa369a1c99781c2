// Package notifier delivers confirmation codes. The log notifier is the
// default channel; real transports plug in behind the same interface.
package notifier

import (
	"context"
	"log/slog"

	"github.com/ShantamRU/extraordinary-bank/pkg/provider"
)

// LogNotifier writes notifications to the structured log. Useful in
// development and as a stand-in until a delivery transport is wired up.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, recipient, subject, body string) error {
	n.logger.Info("notification sent", "recipient", recipient, "subject", subject, "body", body)
	return nil
}

var _ provider.Notifier = (*LogNotifier)(nil)
