package entity

import (
	"fmt"
	"strconv"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

type Plan string

const (
	PlanVolunteer Plan = "volunteer"
	PlanPaid      Plan = "paid"
)

type State string

const (
	StateVolunteer State = "Volunteer"
	StatePaid      State = "Paid"
)

// Translator is a directory record for an interpreter, written by the
// translator's own profile surface and read-only here. Age and Price are kept
// in their string-formatted document form.
type Translator struct {
	ID     string `json:"id" firestore:"id"`
	Name   string `json:"name" firestore:"name"`
	Gender Gender `json:"gender" firestore:"gender"`
	Age    string `json:"age" firestore:"age"`
	Level  Level  `json:"level" firestore:"level"`
	Price  string `json:"price" firestore:"price"`
	Plan   Plan   `json:"plan" firestore:"plan"`
}

// State classifies a translator as volunteer or paid. A record with a
// volunteer plan, or with no plan and a zero/empty price, is a volunteer.
func (t *Translator) State() State {
	if t.Plan == PlanVolunteer {
		return StateVolunteer
	}
	if t.Plan == "" {
		price := strings.TrimSpace(t.Price)
		if price == "" {
			return StateVolunteer
		}
		if v, err := strconv.ParseFloat(price, 64); err == nil && v == 0 {
			return StateVolunteer
		}
	}
	return StatePaid
}

// TranslatorFromDoc decodes a raw translator document. Historical documents
// carry several encodings for the same field (text in two locales, numeric
// codes, price vs hourlyRate, category vs plan), so decoding is tolerant.
// Records without a name or level are rejected; callers are expected to skip
// them.
func TranslatorFromDoc(id string, data map[string]interface{}) (*Translator, error) {
	name := strings.TrimSpace(fieldString(data, "name"))
	if name == "" {
		return nil, fmt.Errorf("translator %s: missing name", id)
	}

	level, ok := ParseLevel(fieldString(data, "level"))
	if !ok {
		return nil, fmt.Errorf("translator %s: missing or unknown level", id)
	}

	gender, _ := ParseGender(fieldString(data, "gender"))

	price := fieldString(data, "price")
	if price == "" {
		price = fieldString(data, "hourlyRate")
	}

	planRaw := fieldString(data, "category")
	if planRaw == "" {
		planRaw = fieldString(data, "plan")
	}
	plan, _ := ParsePlan(planRaw)

	return &Translator{
		ID:     id,
		Name:   name,
		Gender: gender,
		Age:    fieldString(data, "age"),
		Level:  level,
		Price:  price,
		Plan:   plan,
	}, nil
}

// ParseGender accepts textual and numeric gender encodings. The numeric codes
// follow ISO 5218 (1 = male, 2 = female).
func ParseGender(raw string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "m", "1", "ذكر":
		return GenderMale, true
	case "female", "f", "2", "أنثى", "انثى":
		return GenderFemale, true
	}
	return "", false
}

// ParseLevel accepts textual and numeric proficiency encodings.
func ParseLevel(raw string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "beginner", "1", "مبتدئ":
		return LevelBeginner, true
	case "intermediate", "2", "متوسط":
		return LevelIntermediate, true
	case "advanced", "3", "متقدم":
		return LevelAdvanced, true
	}
	return "", false
}

// ParsePlan accepts textual plan/category encodings.
func ParsePlan(raw string) (Plan, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "volunteer", "free", "متطوع":
		return PlanVolunteer, true
	case "paid", "مدفوع":
		return PlanPaid, true
	}
	return "", false
}

// fieldString reads a document field as a string regardless of whether the
// document stored it as text or a number.
func fieldString(data map[string]interface{}, key string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
