package notify

import "github.com/rickgao/tweetstream/internal/connection"

// Multi delivers each notification to every notifier in order.
type Multi []connection.Notifier

// Notify forwards n to all notifiers.
func (m Multi) Notify(n connection.Notification) {
	for _, nt := range m {
		if nt != nil {
			nt.Notify(n)
		}
	}
}
