// Package notify delivers user-visible notifications. Delivery is fire
// and forget: a Notifier never reports failure to its caller.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/prajwalun/agentbay/internal/domain"
)

// Notifier delivers one notification.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n domain.Notification)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, n domain.Notification) { f(ctx, n) }

// LogNotifier writes notifications to a zap logger. Destructive ones are
// logged at warn level.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs n.
func (l *LogNotifier) Notify(_ context.Context, n domain.Notification) {
	fields := []zap.Field{
		zap.String("conversation_id", n.ConversationID),
		zap.String("title", n.Title),
		zap.String("description", n.Description),
	}
	if n.Variant == domain.VariantDestructive {
		l.logger.Warn("Notification", fields...)
		return
	}
	l.logger.Info("Notification", fields...)
}

// Multi fans every notification out to each notifier in order.
type Multi []Notifier

// Notify delivers n to every notifier.
func (m Multi) Notify(ctx context.Context, n domain.Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu    sync.Mutex
	items []domain.Notification
}

// Notify records n.
func (r *Recorder) Notify(_ context.Context, n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification(nil), r.items...)
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
