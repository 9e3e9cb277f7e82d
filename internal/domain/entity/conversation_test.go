package entity

import "testing"

func TestRoomIDIsOrderIndependent(t *testing.T) {
	if got := RoomID("u1", "t1"); got != "t1_u1" {
		t.Fatalf("expected t1_u1, got %q", got)
	}
	if RoomID("u1", "t1") != RoomID("t1", "u1") {
		t.Fatal("expected the same room id regardless of argument order")
	}
}

func TestConversationSummaryCounterparty(t *testing.T) {
	summary := &ConversationSummary{
		DeafUserID:     "u1",
		DeafName:       "Lina",
		TranslatorID:   "t1",
		TranslatorName: "Sara",
	}

	id, name := summary.Counterparty("u1")
	if id != "t1" || name != "Sara" {
		t.Fatalf("expected the translator for the deaf user, got %q/%q", id, name)
	}
	id, name = summary.Counterparty("t1")
	if id != "u1" || name != "Lina" {
		t.Fatalf("expected the deaf user for the translator, got %q/%q", id, name)
	}
}
