package issue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{raw: "New", want: StatusNew},
		{raw: "At Customs", want: StatusCustoms},
		{raw: "customs", want: StatusCustoms},
		{raw: "in-progress", want: StatusInProgress},
		{raw: "IN_PROGRESS", want: StatusInProgress},
		{raw: " Stuck ", want: StatusStuck},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseStatus(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseStatus("Lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range Statuses() {
		assert.NoError(t, s.Validate(), s)
	}
	assert.ErrorIs(t, Status("Archived").Validate(), ErrInvalidStatus)
}

func TestPatch_Apply(t *testing.T) {
	iss := Issue{ID: "7", Status: StatusNew, ResponsibleID: "1"}

	got := StatusPatch(StatusDone).Apply(iss)
	assert.Equal(t, StatusDone, got.Status)
	assert.Equal(t, "1", got.ResponsibleID)

	got = ResponsiblePatch("3").Apply(iss)
	assert.Equal(t, "3", got.ResponsibleID)

	got = AnalysisPatch("Call the broker").Apply(iss)
	assert.True(t, got.HasAnalysis())
	assert.Equal(t, "Call the broker", got.Analysis())
	assert.False(t, iss.HasAnalysis())

	assert.True(t, Patch{}.Empty())
}

func TestFindPerson(t *testing.T) {
	p, ok := FindPerson("2")
	require.True(t, ok)
	assert.Equal(t, "Elena Petrova", p.Name)

	_, ok = FindPerson("99")
	assert.False(t, ok)
	assert.Equal(t, "1", DefaultResponsibleID())
}
