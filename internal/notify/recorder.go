package notify

import (
	"sync"

	"github.com/rickgao/tweetstream/internal/connection"
)

// Recorder keeps the most recent notifications in memory.
type Recorder struct {
	mu      sync.RWMutex
	history []connection.Notification
	limit   int
}

// NewRecorder creates a Recorder holding at most limit notifications.
func NewRecorder(limit int) *Recorder {
	if limit < 1 {
		limit = 1
	}
	return &Recorder{limit: limit}
}

// Notify appends n, evicting the oldest entry when full.
func (r *Recorder) Notify(n connection.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.history) == r.limit {
		copy(r.history, r.history[1:])
		r.history = r.history[:len(r.history)-1]
	}
	r.history = append(r.history, n)
}

// History returns recorded notifications, oldest first.
func (r *Recorder) History() []connection.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]connection.Notification, len(r.history))
	copy(out, r.history)
	return out
}

// Last returns the most recent notification.
func (r *Recorder) Last() (connection.Notification, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.history) == 0 {
		return connection.Notification{}, false
	}
	return r.history[len(r.history)-1], true
}
