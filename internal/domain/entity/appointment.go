package entity

import "time"

// Appointment is a request from a deaf user to a translator. The document id
// is derived from the participant pair (see RoomID), so concurrent creates
// for the same pair collide at the store instead of racing in application
// code.
type Appointment struct {
	ID           string    `json:"id" firestore:"id"`
	DeafUserID   string    `json:"deaf_user_id" firestore:"deafUserId"`
	DeafName     string    `json:"deaf_name" firestore:"deafName"`
	TranslatorID string    `json:"translator_id" firestore:"translatorId"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}

// AppointmentWithTranslator joins an appointment with its directory record.
// Translator is nil when the backing record has been removed; consumers
// render a placeholder in that case.
type AppointmentWithTranslator struct {
	*Appointment
	Translator *Translator `json:"translator,omitempty"`
}
