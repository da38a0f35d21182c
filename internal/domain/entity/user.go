package entity

import (
	"strings"
	"time"
)

// User represents a core domain entity without infrastructure concerns.
// Instances are only created through NewUser or UserFromRecord, so a User
// never exists in a state that violates the business rules.
type User struct {
	ID        int64
	Username  string
	Email     string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser validates and constructs a User. A zero createdAt means "now".
// Username and FullName are trimmed, Email is trimmed and lower-cased.
func NewUser(id int64, username, email, fullName string, createdAt time.Time) (*User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return nil, &InvalidDataError{Message: "username must be at least 3 characters long"}
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, &InvalidDataError{Message: "email must be a valid email address"}
	}

	fullName = strings.TrimSpace(fullName)
	if len(fullName) < 2 {
		return nil, &InvalidDataError{Message: "full name must be at least 2 characters long"}
	}

	now := time.Now().UTC()
	if createdAt.IsZero() {
		createdAt = now
	}
	if now.Before(createdAt) {
		now = createdAt
	}

	return &User{
		ID:        id,
		Username:  username,
		Email:     email,
		FullName:  fullName,
		CreatedAt: createdAt,
		UpdatedAt: now,
	}, nil
}

// UpdateProfile applies the provided fields, each validated independently.
// Nil means "leave unchanged". Username is immutable and has no parameter
// here on purpose. UpdatedAt is refreshed on success.
func (u *User) UpdateProfile(fullName, email *string) error {
	if fullName != nil {
		trimmed := strings.TrimSpace(*fullName)
		if len(trimmed) < 2 {
			return &InvalidDataError{Message: "full name must be at least 2 characters long"}
		}
		u.FullName = trimmed
	}

	if email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*email))
		if !strings.Contains(normalized, "@") {
			return &InvalidDataError{Message: "email must be a valid email address"}
		}
		u.Email = normalized
	}

	u.UpdatedAt = time.Now().UTC()
	return nil
}

// HasValidEmail reports whether the email has a dot after the @ part.
func (u *User) HasValidEmail() bool {
	at := strings.Index(u.Email, "@")
	return at >= 0 && strings.Contains(u.Email[at+1:], ".")
}

// DisplayName renders the user for human-facing output.
func (u *User) DisplayName() string {
	return u.FullName + " (@" + u.Username + ")"
}
