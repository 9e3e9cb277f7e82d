package entity

import "time"

type Role string

const (
	RoleDeaf       Role = "deaf"
	RoleTranslator Role = "translator"
)

// User is the auth-backed account record.
type User struct {
	ID        string    `json:"id" firestore:"id"`
	Email     string    `json:"email" firestore:"email"`
	Name      string    `json:"name" firestore:"name"`
	Role      Role      `json:"role" firestore:"role"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// UserProfile is a translator's self-service profile. It is mirrored into the
// translators collection; the backend assigns the document id on first save.
type UserProfile struct {
	ID         string    `json:"id" firestore:"id"`
	Name       string    `json:"name" firestore:"name"`
	Gender     Gender    `json:"gender" firestore:"gender"`
	Age        int       `json:"age" firestore:"age"`
	Level      Level     `json:"level" firestore:"level"`
	Plan       Plan      `json:"plan" firestore:"plan"`
	HourlyRate float64   `json:"hourly_rate" firestore:"hourlyRate"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Normalize enforces profile invariants: a volunteer never carries a rate.
func (p *UserProfile) Normalize() {
	if p.Plan == PlanVolunteer {
		p.HourlyRate = 0
	}
}
