package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/olebedev/when/rules/ru"
)

var parser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(ru.All...)
	w.Add(common.All...)
	return w
}()

var layouts = []string{time.RFC3339, "2006-01-02", "02.01.2006"}

// ParseSince разбирает "вчера", "last week", "2026-01-31" и т.п. относительно now.
// Пустая строка снимает фильтр.
func ParseSince(raw string, now time.Time) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, raw, now.Location()); err == nil {
			return &t, nil
		}
	}

	r, err := parser.Parse(raw, now)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", raw, err)
	}
	if r == nil {
		return nil, fmt.Errorf("unrecognized date %q", raw)
	}
	t := r.Time
	return &t, nil
}
