package render

import "sync"

// Feed is a bounded, newest-first list of panels. Safe for concurrent use.
type Feed struct {
	mu       sync.RWMutex
	panels   []Panel
	capacity int
	total    int64
}

// NewFeed creates a Feed holding at most capacity panels.
func NewFeed(capacity int) *Feed {
	if capacity < 1 {
		capacity = 1
	}
	return &Feed{
		panels:   make([]Panel, 0, capacity),
		capacity: capacity,
	}
}

// Prepend inserts p at the top, evicting the oldest panel when full.
func (f *Feed) Prepend(p Panel) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.panels) < f.capacity {
		f.panels = append(f.panels, Panel{})
	}
	copy(f.panels[1:], f.panels[:len(f.panels)-1])
	f.panels[0] = p
	f.total++
}

// Panels returns a copy of the feed, newest first.
func (f *Feed) Panels() []Panel {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Panel, len(f.panels))
	copy(out, f.panels)
	return out
}

// Len returns the number of panels currently held.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.panels)
}

// Total returns the number of panels ever prepended.
func (f *Feed) Total() int64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.total
}
