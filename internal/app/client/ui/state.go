// Package ui - терминальное представление трекера.
package ui

import (
	"time"

	"liquidtrack/internal/app/client/i18n"
	"liquidtrack/internal/domain/issue"
)

// State - состояние представления, передается явно каждому экрану.
type State struct {
	Lang     i18n.Lang
	Search   string
	Status   issue.Status
	Since    *time.Time
	FormOpen bool
}

func NewState(lang i18n.Lang) *State {
	return &State{Lang: lang}
}

// Filter переводит состояние в фильтр снимка.
func (s *State) Filter() issue.Filter {
	return issue.Filter{Search: s.Search, Status: s.Status, Since: s.Since}
}

func (s *State) ToggleLang() i18n.Lang {
	s.Lang = s.Lang.Toggle()
	return s.Lang
}

// Reset сбрасывает фильтры.
func (s *State) Reset() {
	s.Search = ""
	s.Status = ""
	s.Since = nil
}
