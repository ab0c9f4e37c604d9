package app

import "fmt"

// Error carries a message that can be shown to the site user as is.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ErrBadRequest(msg string) error {
	return &Error{Status: 400, Message: msg}
}

func ErrUnauthorized(msg string) error {
	return &Error{Status: 401, Message: msg}
}

func ErrNotFound(msg string) error {
	return &Error{Status: 404, Message: msg}
}

// ErrFailed wraps a storage failure behind a user-facing message.
func ErrFailed(msg string, err error) error {
	return &Error{Status: 500, Message: msg, Err: err}
}
