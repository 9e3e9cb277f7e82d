package entity

import "time"

// Message is a single chat message. Immutable once created; the timestamp is
// assigned by the store at write time so ordering does not depend on sender
// clocks.
type Message struct {
	ID         string    `json:"id" firestore:"id"`
	Text       string    `json:"text" firestore:"text"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	SenderName string    `json:"sender_name" firestore:"senderName"`
	Timestamp  time.Time `json:"timestamp" firestore:"timestamp,serverTimestamp"`
}
