package entity

import (
	"testing"
)

func TestTranslatorFromDocDecodesLegacyEncodings(t *testing.T) {
	translator, err := TranslatorFromDoc("t1", map[string]interface{}{
		"name":       "Sara",
		"gender":     "أنثى",
		"age":        int64(29),
		"level":      "2",
		"hourlyRate": float64(15),
		"category":   "مدفوع",
	})
	if err != nil {
		t.Fatalf("TranslatorFromDoc: %v", err)
	}

	if translator.Gender != GenderFemale {
		t.Fatalf("expected female, got %q", translator.Gender)
	}
	if translator.Level != LevelIntermediate {
		t.Fatalf("expected intermediate, got %q", translator.Level)
	}
	if translator.Age != "29" {
		t.Fatalf("expected age 29, got %q", translator.Age)
	}
	if translator.Price != "15" {
		t.Fatalf("expected price from hourlyRate, got %q", translator.Price)
	}
	if translator.Plan != PlanPaid {
		t.Fatalf("expected paid plan from category, got %q", translator.Plan)
	}
}

func TestTranslatorFromDocRejectsIncompleteRecords(t *testing.T) {
	if _, err := TranslatorFromDoc("t1", map[string]interface{}{
		"level": "beginner",
	}); err == nil {
		t.Fatal("expected error for missing name")
	}

	if _, err := TranslatorFromDoc("t2", map[string]interface{}{
		"name": "Omar",
	}); err == nil {
		t.Fatal("expected error for missing level")
	}

	if _, err := TranslatorFromDoc("t3", map[string]interface{}{
		"name":  "Omar",
		"level": "guru",
	}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestTranslatorState(t *testing.T) {
	cases := []struct {
		name       string
		translator Translator
		want       State
	}{
		{"explicit volunteer plan", Translator{Plan: PlanVolunteer, Price: "20"}, StateVolunteer},
		{"explicit paid plan", Translator{Plan: PlanPaid}, StatePaid},
		{"no plan empty price", Translator{Price: ""}, StateVolunteer},
		{"no plan zero price", Translator{Price: "0"}, StateVolunteer},
		{"no plan nonzero price", Translator{Price: "10"}, StatePaid},
		{"no plan unparseable price", Translator{Price: "abc"}, StatePaid},
	}

	for _, tc := range cases {
		if got := tc.translator.State(); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestParseGender(t *testing.T) {
	for _, raw := range []string{"male", "M", "1", "ذكر"} {
		gender, ok := ParseGender(raw)
		if !ok || gender != GenderMale {
			t.Fatalf("expected %q to parse as male", raw)
		}
	}
	for _, raw := range []string{"female", "f", "2", "أنثى", "انثى"} {
		gender, ok := ParseGender(raw)
		if !ok || gender != GenderFemale {
			t.Fatalf("expected %q to parse as female", raw)
		}
	}
	if _, ok := ParseGender("other"); ok {
		t.Fatal("expected unknown gender to fail")
	}
}

func TestParsePlan(t *testing.T) {
	for _, raw := range []string{"volunteer", "free", "متطوع"} {
		plan, ok := ParsePlan(raw)
		if !ok || plan != PlanVolunteer {
			t.Fatalf("expected %q to parse as volunteer", raw)
		}
	}
	plan, ok := ParsePlan("مدفوع")
	if !ok || plan != PlanPaid {
		t.Fatal("expected Arabic paid label to parse")
	}
}
