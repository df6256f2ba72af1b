package issue

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "In Progress"
	StatusCustoms    Status = "At Customs"
	StatusDelivery   Status = "Delivery"
	StatusDone       Status = "Done"
	StatusStuck      Status = "Stuck"
)

// Statuses возвращает все статусы в порядке отображения.
func Statuses() []Status {
	return []Status{
		StatusNew,
		StatusInProgress,
		StatusCustoms,
		StatusDelivery,
		StatusDone,
		StatusStuck,
	}
}

// Schema реализует huma.SchemaProvider.
func (Status) Schema(_ huma.Registry) *huma.Schema {
	enum := make([]any, 0, len(Statuses()))
	for _, s := range Statuses() {
		enum = append(enum, string(s))
	}
	return &huma.Schema{
		Type:        "string",
		Enum:        enum,
		Description: "Статус проблемы",
		Examples:    []any{string(StatusNew)},
	}
}

// Validate проверяет, что статус входит в перечисление.
func (s Status) Validate() error {
	switch s {
	case StatusNew, StatusInProgress, StatusCustoms, StatusDelivery, StatusDone, StatusStuck:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus принимает как значение ("At Customs"), так и короткую форму ("customs", "in-progress").
func ParseStatus(raw string) (Status, error) {
	for _, s := range Statuses() {
		if string(s) == raw {
			return s, nil
		}
	}
	switch normalize(raw) {
	case "new":
		return StatusNew, nil
	case "inprogress", "progress":
		return StatusInProgress, nil
	case "atcustoms", "customs":
		return StatusCustoms, nil
	case "delivery":
		return StatusDelivery, nil
	case "done":
		return StatusDone, nil
	case "stuck":
		return StatusStuck, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}
