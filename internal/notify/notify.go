// Package notify alerts operators about trading events over Telegram and
// Discord webhooks. Delivery is best-effort: a sender failure is logged and
// never affects the trading path.
package notify

import (
	"context"
	"log/slog"
	"strings"
)

// Event types emitted by the scanner.
const (
	EventArbDetected     = "arb_detected"
	EventPartialFill     = "partial_fill"
	EventExecutionFailed = "execution_failed"
)

// Sender is one delivery channel.
type Sender interface {
	// Send delivers a notification with the given title and message body.
	Send(ctx context.Context, title, message string) error
	// Name identifies the channel in logs.
	Name() string
}

// Notifier fans notifications out to every configured sender, filtered by an
// allow-list of event types. An empty allow-list permits everything.
type Notifier struct {
	senders []Sender
	allowed map[string]bool
	logger  *slog.Logger
}

// New creates a Notifier delivering to senders. Only events named in events
// are forwarded; an empty slice allows all.
func New(senders []Sender, events []string, logger *slog.Logger) *Notifier {
	allowed := make(map[string]bool, len(events))
	for _, e := range events {
		if e = strings.TrimSpace(e); e != "" {
			allowed[e] = true
		}
	}
	return &Notifier{
		senders: senders,
		allowed: allowed,
		logger:  logger.With(slog.String("component", "notifier")),
	}
}

// Notify delivers the message to all senders when the event passes the
// filter. Individual sender failures are logged; none are propagated.
func (n *Notifier) Notify(ctx context.Context, event, title, message string) {
	if len(n.allowed) > 0 && !n.allowed[event] {
		return
	}
	for _, s := range n.senders {
		if err := s.Send(ctx, title, message); err != nil {
			n.logger.WarnContext(ctx, "notification delivery failed",
				slog.String("sender", s.Name()),
				slog.String("event", event),
				slog.String("error", err.Error()),
			)
		}
	}
}
