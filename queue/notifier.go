// Package queue provides an in-process NotificationQueue for tests and
// embedded hosts that do not run a broker. Broker-backed hosts use
// adapter/redisqueue instead.
package queue

import (
	"context"
	"sync"

	"github.com/learnpath/go-progressions/pkg/types"
)

// Notifier fans notification messages out to registered listeners.
type Notifier struct {
	mu        sync.RWMutex
	listeners []func(context.Context, types.NotificationMessage)
}

// NewNotifier constructs an in-process notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

var _ types.NotificationQueue = (*Notifier)(nil)

// Register adds a listener that receives every message. Nil listeners are ignored.
func (n *Notifier) Register(listener func(context.Context, types.NotificationMessage)) {
	if listener == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, listener)
}

// Send implements types.NotificationQueue by delivering the message to all
// registered listeners synchronously.
func (n *Notifier) Send(ctx context.Context, message types.NotificationMessage) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, listener := range n.listeners {
		listener(ctx, message)
	}
	return nil
}
