package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured   = errors.New("store is not configured")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrNotFound        = errors.New("record not found")
	ErrForbidden       = errors.New("api key rejected")
)

// Error - ошибка обращения к хранилищу.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("store %s: status %d: %s", e.Op, e.Status, msg)
	}
	return fmt.Sprintf("store %s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AuthError - отказ провайдера аутентификации. Message показывается пользователю.
type AuthError struct {
	Status  int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "authentication failed"
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// apiError покрывает и формат ошибок huma, и ответы middleware.
type apiError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (a *apiError) message() string {
	if a == nil {
		return ""
	}
	switch {
	case a.Detail != "":
		return a.Detail
	case a.Error != "":
		return a.Error
	default:
		return a.Title
	}
}
