// File: travelgo/chat/buffer.go
package chat

import (
	"sort"
	"sync"

	"travelgo/models"
)

// Buffer holds the messages of one room, keyed by message id so an
// optimistic local append and its eventual stream delivery reconcile
// into a single entry instead of a visual duplicate.
type Buffer struct {
	mu   sync.Mutex
	byID map[string]models.Message
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{byID: make(map[string]models.Message)}
}

// Upsert inserts or replaces a message by id.
func (b *Buffer) Upsert(msg models.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.byID[msg.ID] = msg
}

// Reconcile applies a full stream snapshot. Confirmed messages replace
// their optimistic counterparts by id; pending local messages the
// stream has not caught up with yet are retained.
func (b *Buffer) Reconcile(snapshot []models.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := make(map[string]models.Message, len(snapshot))
	for _, msg := range snapshot {
		next[msg.ID] = msg
	}
	for id, msg := range b.byID {
		if msg.Pending {
			if _, confirmed := next[id]; !confirmed {
				next[id] = msg
			}
		}
	}
	b.byID = next
}

// Messages returns the buffer newest-first, matching the stream order.
func (b *Buffer) Messages() []models.Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.Message, 0, len(b.byID))
	for _, msg := range b.byID {
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Len returns the number of buffered messages.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.byID)
}
