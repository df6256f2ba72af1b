package client

import (
	"errors"

	"liquidtrack/internal/domain/issue"
)

var (
	// ErrConfiguration - не заданы адрес или ключ хранилища.
	ErrConfiguration      = errors.New("store configuration missing")
	ErrAnalysisInProgress = errors.New("analysis already in progress")
	ErrInvalidInput       = issue.ErrInvalidInput
	ErrNotAuthenticated   = errors.New("not authenticated")
)
