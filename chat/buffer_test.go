package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelgo/models"
)

func msg(id, text string, at time.Time, pending bool) models.Message {
	return models.Message{
		ID:        id,
		Text:      text,
		Sender:    models.ChatUser{ID: 1, Name: "an"},
		CreatedAt: at,
		Pending:   pending,
	}
}

func TestBufferReconcileReplacesOptimisticEntry(t *testing.T) {
	now := time.Now()
	buf := NewBuffer()

	buf.Upsert(msg("m1", "xin chào", now, true))
	require.Equal(t, 1, buf.Len())

	// The stream delivers the confirmed copy with the server timestamp.
	confirmed := msg("m1", "xin chào", now.Add(time.Second), false)
	buf.Reconcile([]models.Message{confirmed})

	msgs := buf.Messages()
	require.Len(t, msgs, 1, "optimistic and confirmed copies must merge into one entry")
	assert.False(t, msgs[0].Pending)
	assert.Equal(t, confirmed.CreatedAt, msgs[0].CreatedAt)
}

func TestBufferReconcileKeepsUnconfirmedPending(t *testing.T) {
	now := time.Now()
	buf := NewBuffer()

	buf.Upsert(msg("remote1", "hello", now.Add(-time.Minute), false))
	buf.Upsert(msg("local1", "just sent", now, true))

	// A snapshot that has not caught up with the local send yet.
	buf.Reconcile([]models.Message{
		msg("remote1", "hello", now.Add(-time.Minute), false),
		msg("remote2", "new from peer", now.Add(-time.Second), false),
	})

	msgs := buf.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "local1", msgs[0].ID, "pending local message stays visible")
	assert.True(t, msgs[0].Pending)
}

func TestBufferReconcileDropsStaleNonPending(t *testing.T) {
	now := time.Now()
	buf := NewBuffer()
	buf.Upsert(msg("gone", "deleted remotely", now, false))

	buf.Reconcile([]models.Message{msg("kept", "still here", now, false)})

	msgs := buf.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "kept", msgs[0].ID)
}

func TestBufferMessagesNewestFirst(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	buf := NewBuffer()
	buf.Upsert(msg("a", "first", base, false))
	buf.Upsert(msg("b", "second", base.Add(time.Minute), false))
	buf.Upsert(msg("c", "third", base.Add(2*time.Minute), false))

	msgs := buf.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{msgs[0].ID, msgs[1].ID, msgs[2].ID})
}

func TestBufferOrderStableForEqualTimestamps(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	buf := NewBuffer()
	buf.Upsert(msg("aa", "one", at, false))
	buf.Upsert(msg("bb", "two", at, false))

	first := buf.Messages()
	second := buf.Messages()
	assert.Equal(t, first, second)
}
