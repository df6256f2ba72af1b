package issue

import "errors"

var (
	ErrNotFound      = errors.New("issue not found")
	ErrInvalidInput  = errors.New("invalid issue input")
	ErrInvalidStatus = errors.New("invalid issue status")
	ErrEmptyPatch    = errors.New("nothing to update")
)

type DomainError struct {
	Err     error
	Message string
	Code    string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func invalid(msg string) error {
	return &DomainError{Err: ErrInvalidInput, Message: msg, Code: "invalid_input"}
}
