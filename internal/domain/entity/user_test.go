package entity

import (
	"errors"
	"testing"
	"time"
)

func TestNewUser_NormalizesFields(t *testing.T) {
	user, err := NewUser(1, "  alice  ", "  Alice@X.COM ", "  Alice A  ", time.Time{})
	if err != nil {
		t.Fatalf("expected construction to succeed, got error: %v", err)
	}

	if user.Username != "alice" {
		t.Fatalf("expected trimmed username, got %q", user.Username)
	}
	if user.Email != "alice@x.com" {
		t.Fatalf("expected lower-cased trimmed email, got %q", user.Email)
	}
	if user.FullName != "Alice A" {
		t.Fatalf("expected trimmed full name, got %q", user.FullName)
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
	if user.UpdatedAt.Before(user.CreatedAt) {
		t.Fatalf("updated_at %v precedes created_at %v", user.UpdatedAt, user.CreatedAt)
	}
}

func TestNewUser_RejectsInvalidData(t *testing.T) {
	cases := []struct {
		name     string
		username string
		email    string
		fullName string
	}{
		{"short username", "ab", "a@x.com", "Alice A"},
		{"blank username", "   ", "a@x.com", "Alice A"},
		{"email without at", "alice", "alice.x.com", "Alice A"},
		{"blank email", "alice", "  ", "Alice A"},
		{"short full name", "alice", "a@x.com", "A"},
		{"blank full name", "alice", "a@x.com", " "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(1, tc.username, tc.email, tc.fullName, time.Time{})
			var invalid *InvalidDataError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidDataError, got %v", err)
			}
		})
	}
}

func TestUpdateProfile_PartialAndValidation(t *testing.T) {
	user, err := NewUser(1, "alice", "alice@x.com", "Alice A", time.Time{})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	before := user.UpdatedAt

	newName := "  Alice B  "
	if err := user.UpdateProfile(&newName, nil); err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	if user.FullName != "Alice B" {
		t.Fatalf("expected full name updated, got %q", user.FullName)
	}
	if user.Email != "alice@x.com" {
		t.Fatalf("email must be unchanged, got %q", user.Email)
	}
	if user.UpdatedAt.Before(before) {
		t.Fatal("updated_at must not go backwards")
	}

	badEmail := "no-at-sign"
	if err := user.UpdateProfile(nil, &badEmail); err == nil {
		t.Fatal("expected invalid email to be rejected")
	}
	if user.Email != "alice@x.com" {
		t.Fatalf("failed update must not change email, got %q", user.Email)
	}

	newEmail := " ALICE@Y.COM "
	if err := user.UpdateProfile(nil, &newEmail); err != nil {
		t.Fatalf("expected email update to succeed, got %v", err)
	}
	if user.Email != "alice@y.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
}

func TestRecord_RoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 30, 0, 123456789, time.UTC)
	user, err := NewUser(42, "alice", "alice@x.com", "Alice A", created)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	restored, err := UserFromRecord(user.ToRecord())
	if err != nil {
		t.Fatalf("expected round trip to succeed, got %v", err)
	}

	if restored.ID != user.ID {
		t.Fatalf("id mismatch: %d vs %d", restored.ID, user.ID)
	}
	if restored.Username != user.Username || restored.Email != user.Email || restored.FullName != user.FullName {
		t.Fatalf("field mismatch: %+v vs %+v", restored, user)
	}
	if !restored.CreatedAt.Equal(user.CreatedAt) {
		t.Fatalf("created_at mismatch: %v vs %v", restored.CreatedAt, user.CreatedAt)
	}
	if !restored.UpdatedAt.Equal(user.UpdatedAt) {
		t.Fatalf("updated_at mismatch: %v vs %v", restored.UpdatedAt, user.UpdatedAt)
	}
}

func TestUserFromRecord_RejectsCorruptRecords(t *testing.T) {
	rec := Record{ID: 1, Username: "al", Email: "a@x.com", FullName: "Alice A",
		CreatedAt: "2024-03-01T10:30:00Z", UpdatedAt: "2024-03-01T10:30:00Z"}
	if _, err := UserFromRecord(rec); err == nil {
		t.Fatal("expected short username in stored record to be rejected")
	}

	rec = Record{ID: 1, Username: "alice", Email: "a@x.com", FullName: "Alice A",
		CreatedAt: "not-a-timestamp", UpdatedAt: "2024-03-01T10:30:00Z"}
	if _, err := UserFromRecord(rec); err == nil {
		t.Fatal("expected malformed timestamp to be rejected")
	}
}

func TestDisplayNameAndEmailCheck(t *testing.T) {
	user, err := NewUser(1, "alice", "alice@x.com", "Alice A", time.Time{})
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	if got := user.DisplayName(); got != "Alice A (@alice)" {
		t.Fatalf("unexpected display name %q", got)
	}
	if !user.HasValidEmail() {
		t.Fatal("expected alice@x.com to pass the dotted-domain check")
	}

	user.Email = "alice@localhost"
	if user.HasValidEmail() {
		t.Fatal("expected alice@localhost to fail the dotted-domain check")
	}
}
