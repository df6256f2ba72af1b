// Package i18n - двуязычная таблица строк клиента.
package i18n

import (
	"fmt"
	"strings"

	"liquidtrack/internal/domain/issue"
)

type Lang string

const (
	EN Lang = "en"
	RU Lang = "ru"

	Default = RU
)

// Langs возвращает поддерживаемые языки.
func Langs() []Lang {
	return []Lang{RU, EN}
}

// ParseLang разбирает код языка без учета регистра.
func ParseLang(raw string) (Lang, error) {
	switch Lang(strings.ToLower(strings.TrimSpace(raw))) {
	case EN:
		return EN, nil
	case RU:
		return RU, nil
	}
	return "", fmt.Errorf("unsupported language %q", raw)
}

// Toggle переключает ru <-> en.
func (l Lang) Toggle() Lang {
	if l == EN {
		return RU
	}
	return EN
}

// Upper - название языка для подсказки LLM.
func (l Lang) Upper() string {
	if l == EN {
		return "ENGLISH"
	}
	return "RUSSIAN"
}

// T возвращает строку для ключа. Неизвестный язык читается как Default,
// отсутствующий ключ возвращается как есть.
func T(l Lang, k Key) string {
	table, ok := tables[l]
	if !ok {
		table = tables[Default]
	}
	if s, ok := table[k]; ok {
		return s
	}
	return string(k)
}

// Tf - T с форматированием.
func Tf(l Lang, k Key, args ...any) string {
	return fmt.Sprintf(T(l, k), args...)
}

// Status - локализованное название статуса.
func Status(l Lang, s issue.Status) string {
	names, ok := statuses[l]
	if !ok {
		names = statuses[Default]
	}
	if n, ok := names[s]; ok {
		return n
	}
	return string(s)
}
