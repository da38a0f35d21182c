package entity

import (
	"time"
)

// Record is the plain serialized form of a User, used by the file-backed
// repository. Timestamps are RFC3339Nano in UTC so a round trip through
// ToRecord and UserFromRecord reproduces every field exactly.
type Record struct {
	ID        int64  `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ToRecord converts the user into its serialized form.
func (u *User) ToRecord() Record {
	return Record{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// UserFromRecord rebuilds a User from its serialized form. The record passes
// through the same validation as NewUser; a stored record that violates the
// business rules is rejected rather than resurrected.
func UserFromRecord(rec Record) (*User, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
	if err != nil {
		return nil, &InvalidDataError{Message: "malformed created_at timestamp"}
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, rec.UpdatedAt)
	if err != nil {
		return nil, &InvalidDataError{Message: "malformed updated_at timestamp"}
	}

	user, err := NewUser(rec.ID, rec.Username, rec.Email, rec.FullName, createdAt)
	if err != nil {
		return nil, err
	}
	user.UpdatedAt = updatedAt
	return user, nil
}
