// File: travelgo/chat/room.go
package chat

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"travelgo/models"
	"travelgo/utils"
)

const (
	roomsCollection    = "chats"
	messagesCollection = "messages"
)

// Room is a live two-party conversation: a Firestore-backed message
// stream scoped to the derived room id. It is the one long-lived
// resource in the client; Open acquires the subscription and Close must
// release it on room exit.
type Room struct {
	id     string
	client *firestore.Client
	buf    *Buffer

	cancel  context.CancelFunc
	updates chan []models.Message
}

// NewRoom resolves the room between the local user and the counterpart.
func NewRoom(client *firestore.Client, localID, counterpartID int64) *Room {
	return &Room{
		id:     RoomID(localID, counterpartID),
		client: client,
		buf:    NewBuffer(),
	}
}

// ID returns the derived room identifier.
func (r *Room) ID() string {
	return r.id
}

func (r *Room) messages() *firestore.CollectionRef {
	return r.client.Collection(roomsCollection).Doc(r.id).Collection(messagesCollection)
}

// Open starts the live subscription and returns a channel of buffer
// snapshots, newest message first. The channel closes when the stream
// ends or the room is closed.
func (r *Room) Open(ctx context.Context) (<-chan []models.Message, error) {
	if r.cancel != nil {
		return nil, fmt.Errorf("chat: room %s already open", r.id)
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.updates = make(chan []models.Message, 8)

	go r.listen(ctx)
	return r.updates, nil
}

func (r *Room) listen(ctx context.Context) {
	defer close(r.updates)

	snapshots := r.messages().
		OrderBy("createdAt", firestore.Desc).
		Snapshots(ctx)
	defer snapshots.Stop()

	for {
		snap, err := snapshots.Next()
		if err != nil {
			if ctx.Err() == nil {
				utils.GetLogger().Warn("chat: message stream ended", zap.String("room", r.id), zap.Error(err))
			}
			return
		}

		var msgs []models.Message
		docs := snap.Documents
		for {
			doc, err := docs.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				utils.GetLogger().Warn("chat: bad snapshot document", zap.String("room", r.id), zap.Error(err))
				break
			}
			var msg models.Message
			if err := doc.DataTo(&msg); err != nil {
				utils.GetLogger().Warn("chat: undecodable message", zap.String("doc", doc.Ref.ID), zap.Error(err))
				continue
			}
			if msg.ID == "" {
				msg.ID = doc.Ref.ID
			}
			msgs = append(msgs, msg)
		}

		r.buf.Reconcile(msgs)
		select {
		case r.updates <- r.buf.Messages():
		case <-ctx.Done():
			return
		}
	}
}

// Send appends the message optimistically to the local buffer and
// persists it to the remote store, where the timestamp is assigned
// server-side. The eventual stream delivery replaces the optimistic
// entry by id.
func (r *Room) Send(ctx context.Context, sender models.ChatUser, text string) ([]models.Message, error) {
	msg := models.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		CreatedAt: time.Now(),
		Pending:   true,
	}
	r.buf.Upsert(msg)

	_, err := r.messages().Doc(msg.ID).Set(ctx, map[string]any{
		"_id":  msg.ID,
		"text": msg.Text,
		"user": map[string]any{
			"_id":    sender.ID,
			"name":   sender.Name,
			"avatar": sender.Avatar,
		},
		"createdAt": firestore.ServerTimestamp,
	})
	if err != nil {
		return r.buf.Messages(), fmt.Errorf("chat: send message: %w", err)
	}
	return r.buf.Messages(), nil
}

// Messages returns the current buffer contents, newest first.
func (r *Room) Messages() []models.Message {
	return r.buf.Messages()
}

// Close releases the live subscription. Mandatory on leaving the room.
func (r *Room) Close() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
