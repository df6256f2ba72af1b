package issue

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Filter ограничивает выборку. Пустые поля не фильтруют.
type Filter struct {
	Search string
	Status Status
	Since  *time.Time
}

// Match проверяет одну проблему. Поиск регистронезависимый, по заголовку или описанию.
func (f Filter) Match(i Issue) bool {
	if f.Status != "" && i.Status != f.Status {
		return false
	}
	if f.Since != nil && i.CreatedAt.Before(*f.Since) {
		return false
	}
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(i.Title), term) ||
		strings.Contains(strings.ToLower(i.Description), term)
}

// Apply возвращает подходящие проблемы, сохраняя порядок.
func (f Filter) Apply(issues []Issue) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, i := range issues {
		if f.Match(i) {
			out = append(out, i)
		}
	}
	return out
}

const (
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
	FieldTitle     = "title"
	FieldStatus    = "status"
)

// Order задает сортировку выборки.
type Order struct {
	Field      string
	Descending bool
}

// NewestFirst - порядок списка по умолчанию.
var NewestFirst = Order{Field: FieldCreatedAt, Descending: true}

// String возвращает форму "поле.asc|desc", используемую в query-параметре.
func (o Order) String() string {
	dir := "asc"
	if o.Descending {
		dir = "desc"
	}
	return o.Field + "." + dir
}

// ParseOrder разбирает "created_at.desc". Пустая строка дает NewestFirst.
func ParseOrder(raw string) (Order, error) {
	if raw == "" {
		return NewestFirst, nil
	}
	field, dir, _ := strings.Cut(raw, ".")
	switch field {
	case FieldCreatedAt, FieldUpdatedAt, FieldTitle, FieldStatus:
	default:
		return Order{}, fmt.Errorf("%w: unknown order field %q", ErrInvalidInput, field)
	}
	switch dir {
	case "", "asc":
		return Order{Field: field}, nil
	case "desc":
		return Order{Field: field, Descending: true}, nil
	}
	return Order{}, fmt.Errorf("%w: unknown order direction %q", ErrInvalidInput, dir)
}

// Sort упорядочивает срез на месте, при равенстве ключей исходный порядок сохраняется.
func (o Order) Sort(issues []Issue) {
	less := func(a, b Issue) int {
		switch o.Field {
		case FieldUpdatedAt:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		case FieldTitle:
			return strings.Compare(a.Title, b.Title)
		case FieldStatus:
			return strings.Compare(string(a.Status), string(b.Status))
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	sort.SliceStable(issues, func(i, j int) bool {
		c := less(issues[i], issues[j])
		if o.Descending {
			c = -c
		}
		return c < 0
	})
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}
