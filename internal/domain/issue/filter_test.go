package issue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_ApplySearchCaseInsensitive(t *testing.T) {
	issues := []Issue{
		{ID: "1", Title: "Delayed shipment", Description: "Container is late"},
		{ID: "2", Title: "Customs hold", Description: "Papers missing"},
	}

	got := Filter{Search: "DELAY"}.Apply(issues)

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilter_Match(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)
	iss := Issue{
		Title:       "Spare part",
		Description: "Supplier DELAY on bearings",
		Status:      StatusStuck,
		CreatedAt:   now,
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "empty filter", filter: Filter{}, want: true},
		{name: "description match", filter: Filter{Search: "delay"}, want: true},
		{name: "no match", filter: Filter{Search: "customs"}, want: false},
		{name: "status match", filter: Filter{Status: StatusStuck}, want: true},
		{name: "status mismatch", filter: Filter{Status: StatusDone}, want: false},
		{name: "since before", filter: Filter{Since: &weekAgo}, want: true},
		{name: "since after", filter: Filter{Since: ptr(now.Add(time.Hour))}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(iss))
		})
	}
}

func TestOrder_Sort_NewestFirst(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	issues := []Issue{
		{ID: "a", CreatedAt: base},
		{ID: "b", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "c", CreatedAt: base.Add(time.Hour)},
	}

	NewestFirst.Sort(issues)

	assert.Equal(t, []string{"b", "c", "a"}, ids(issues))
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, NewestFirst, o)

	o, err = ParseOrder("title.asc")
	require.NoError(t, err)
	assert.Equal(t, Order{Field: FieldTitle}, o)
	assert.Equal(t, "title.asc", o.String())

	_, err = ParseOrder("password.desc")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseOrder("created_at.sideways")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func ptr[T any](v T) *T {
	return &v
}

func ids(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.ID)
	}
	return out
}
