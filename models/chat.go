// File: travelgo/models/chat.go
package models

import "time"

// ChatUser identifies a message sender inside a chat room document.
// Field names match the documents the mobile clients already write.
type ChatUser struct {
	ID     int64  `firestore:"_id"`
	Name   string `firestore:"name"`
	Avatar string `firestore:"avatar"`
}

// Message is one chat message in a two-party room.
type Message struct {
	ID        string    `firestore:"_id"`
	Text      string    `firestore:"text"`
	Sender    ChatUser  `firestore:"user"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`

	// Pending marks an optimistic local append that the stream has not
	// confirmed yet. Never persisted.
	Pending bool `firestore:"-"`
}
