// Package handoff carries one-shot markers between views: the edit form
// posts which record it touched, the table consumes it at most once to
// highlight and scroll to that row.
package handoff

import "sync"

// Marker keys used by the customer views.
const (
	KeyLastEditedID = "lastEditedId"
	KeyLastViewedID = "lastViewedId"
)

// Channel is a small key-value handoff with single-consumption semantics:
// Take removes the value it returns, so a marker fires at most once.
type Channel struct {
	mu     sync.Mutex
	values map[string]string
}

// NewChannel returns an empty channel.
func NewChannel() *Channel {
	return &Channel{values: make(map[string]string)}
}

// Put stores a marker, replacing any unconsumed value for the key.
func (c *Channel) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Take consumes a marker. The second result is false when no marker is set.
func (c *Channel) Take(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if ok {
		delete(c.values, key)
	}
	return v, ok
}

// Drop discards a marker without consuming its value.
func (c *Channel) Drop(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
}
