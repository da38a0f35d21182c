package entity

import "fmt"

// NotFoundError signals that a lookup target is absent. Either ID or
// Username identifies what was looked up.
type NotFoundError struct {
	ID       int64
	Username string
}

func (e *NotFoundError) Error() string {
	if e.Username != "" {
		return fmt.Sprintf("user with username %q not found", e.Username)
	}
	return fmt.Sprintf("user with id %d not found", e.ID)
}

// AlreadyExistsError signals a duplicate username on create.
type AlreadyExistsError struct {
	Username string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("user with username %q already exists", e.Username)
}

// InvalidDataError signals a business-rule violation in user data.
type InvalidDataError struct {
	Message string
}

func (e *InvalidDataError) Error() string {
	return "invalid user data: " + e.Message
}
