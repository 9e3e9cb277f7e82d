package usecase

import (
	"context"
	"testing"

	"ishara/internal/domain/entity"
	"ishara/pkg/errors"
)

func newUserFixture() (*UserUseCase, *stubUserRepo, *stubTranslatorRepo, *stubSessionStore) {
	userRepo := newStubUserRepo()
	translatorRepo := &stubTranslatorRepo{}
	sessions := newStubSessionStore()
	return NewUserUseCase(userRepo, translatorRepo, sessions), userRepo, translatorRepo, sessions
}

func TestChooseRoleCachesAndMirrors(t *testing.T) {
	uc, userRepo, _, sessions := newUserFixture()
	userRepo.users["u1"] = &entity.User{ID: "u1", Email: "lina@example.com"}

	if err := uc.ChooseRole(context.Background(), "u1", entity.RoleDeaf); err != nil {
		t.Fatalf("ChooseRole: %v", err)
	}

	if sessions.roles["u1"] != entity.RoleDeaf {
		t.Fatal("expected the role to be cached")
	}
	if userRepo.users["u1"].Role != entity.RoleDeaf {
		t.Fatal("expected the role to be mirrored to the user record")
	}
}

func TestChooseRoleRejectsUnknownRole(t *testing.T) {
	uc, _, _, _ := newUserFixture()

	err := uc.ChooseRole(context.Background(), "u1", "admin")
	if !errors.Is(err, "BAD_REQUEST") {
		t.Fatalf("expected BAD_REQUEST, got %v", err)
	}
}

func TestRoleFallsBackToUserRecord(t *testing.T) {
	uc, userRepo, _, sessions := newUserFixture()
	userRepo.users["u1"] = &entity.User{ID: "u1", Role: entity.RoleTranslator}

	role, err := uc.Role(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Role: %v", err)
	}
	if role != entity.RoleTranslator {
		t.Fatalf("expected translator, got %q", role)
	}
	if sessions.roles["u1"] != entity.RoleTranslator {
		t.Fatal("expected the fallback to re-cache the role")
	}
}

func TestSaveProfileCreatesThenUpdates(t *testing.T) {
	uc, _, _, sessions := newUserFixture()

	input := SaveProfileInput{
		Name:       "Sara",
		Gender:     "female",
		Age:        28,
		Level:      "advanced",
		Plan:       "paid",
		HourlyRate: 12,
	}

	profile, err := uc.SaveProfile(context.Background(), "u1", input)
	if err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if profile.Gender != entity.GenderFemale || profile.Level != entity.LevelAdvanced {
		t.Fatalf("unexpected parsed profile %+v", profile)
	}
	if sessions.docIDs["u1"] != "doc-1" {
		t.Fatalf("expected the backend doc id to be cached, got %q", sessions.docIDs["u1"])
	}

	// Second save goes to the same document, not a new one.
	if _, err := uc.SaveProfile(context.Background(), "u1", input); err != nil {
		t.Fatalf("SaveProfile (update): %v", err)
	}
	if sessions.docIDs["u1"] != "doc-1" {
		t.Fatal("expected the cached doc id to be unchanged")
	}
}

func TestSaveProfileZeroesVolunteerRate(t *testing.T) {
	uc, _, _, _ := newUserFixture()

	profile, err := uc.SaveProfile(context.Background(), "u1", SaveProfileInput{
		Name:       "Omar",
		Gender:     "male",
		Age:        30,
		Level:      "beginner",
		Plan:       "volunteer",
		HourlyRate: 25,
	})
	if err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if profile.HourlyRate != 0 {
		t.Fatalf("expected a volunteer rate of 0, got %v", profile.HourlyRate)
	}
}

func TestSaveProfileRejectsUnknownEnums(t *testing.T) {
	uc, _, _, _ := newUserFixture()

	base := SaveProfileInput{Name: "Omar", Gender: "male", Age: 30, Level: "beginner", Plan: "paid"}

	bad := base
	bad.Gender = "other"
	if _, err := uc.SaveProfile(context.Background(), "u1", bad); !errors.Is(err, "BAD_REQUEST") {
		t.Fatalf("expected BAD_REQUEST for gender, got %v", err)
	}

	bad = base
	bad.Level = "guru"
	if _, err := uc.SaveProfile(context.Background(), "u1", bad); !errors.Is(err, "BAD_REQUEST") {
		t.Fatalf("expected BAD_REQUEST for level, got %v", err)
	}

	bad = base
	bad.Plan = "premium"
	if _, err := uc.SaveProfile(context.Background(), "u1", bad); !errors.Is(err, "BAD_REQUEST") {
		t.Fatalf("expected BAD_REQUEST for plan, got %v", err)
	}
}

func TestDeleteProfileWithoutSavedProfile(t *testing.T) {
	uc, _, _, _ := newUserFixture()

	err := uc.DeleteProfile(context.Background(), "u1")
	if !errors.Is(err, "BAD_REQUEST") {
		t.Fatalf("expected BAD_REQUEST without a cached doc id, got %v", err)
	}
}

func TestDeleteProfileClearsCachedID(t *testing.T) {
	uc, _, _, sessions := newUserFixture()
	sessions.docIDs["u1"] = "doc-1"

	if err := uc.DeleteProfile(context.Background(), "u1"); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	if sessions.docIDs["u1"] != "" {
		t.Fatal("expected the cached doc id to be cleared")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	uc, _, _, sessions := newUserFixture()
	sessions.roles["u1"] = entity.RoleDeaf
	sessions.docIDs["u1"] = "doc-1"

	if err := uc.Logout(context.Background(), "u1"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.cleared) != 1 || sessions.cleared[0] != "u1" {
		t.Fatalf("expected the session to be cleared, got %v", sessions.cleared)
	}
}
