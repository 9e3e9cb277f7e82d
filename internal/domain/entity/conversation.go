package entity

import "time"

// ConversationCreatedMessage is the placeholder preview written when a
// conversation is first created.
const ConversationCreatedMessage = "تم إنشاء المحادثة"

// RoomID derives the chat room identifier for a participant pair. The pair is
// sorted before joining, so both sides compute the same id.
func RoomID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}

// ConversationSummary is the denormalized record of a chat thread's latest
// state, keyed by room id. Distinct from the full message history.
type ConversationSummary struct {
	RoomID           string    `json:"room_id" firestore:"roomId"`
	DeafUserID       string    `json:"deaf_user_id" firestore:"deafUserId"`
	DeafName         string    `json:"deaf_name" firestore:"deafName"`
	TranslatorID     string    `json:"translator_id" firestore:"translatorId"`
	TranslatorName   string    `json:"translator_name" firestore:"translatorName"`
	TranslatorGender Gender    `json:"translator_gender" firestore:"translatorGender"`
	LastMessage      string    `json:"last_message" firestore:"lastMessage"`
	Timestamp        time.Time `json:"timestamp" firestore:"timestamp"`
}

// Counterparty returns the id and display name of the other participant as
// seen by userID.
func (c *ConversationSummary) Counterparty(userID string) (id, name string) {
	if userID == c.DeafUserID {
		return c.TranslatorID, c.TranslatorName
	}
	return c.DeafUserID, c.DeafName
}
