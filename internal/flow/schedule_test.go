package flow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myplan/myplan-bot/internal/flow"
)

func TestTextScheduleAcceptsStrictPattern(t *testing.T) {
	var ts flow.TextSchedule

	res := ts.Collect(map[string]string{}, "2025-08-01 10:00")
	require.True(t, res.OK)
	require.True(t, res.Done)
	assert.Equal(t, time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC), res.At)
}

func TestTextScheduleRejections(t *testing.T) {
	var ts flow.TextSchedule

	tests := []struct {
		name  string
		input string
	}{
		{"wrong shape", "tomorrow"},
		{"missing time", "2025-08-01"},
		{"seconds not allowed", "2025-08-01 10:00:00"},
		{"month out of range", "2025-13-01 10:00"},
		{"day out of range", "2025-01-42 10:00"},
		{"hour out of range", "2025-08-01 25:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := map[string]string{}
			res := ts.Collect(fields, tt.input)
			assert.False(t, res.OK)
			assert.NotEmpty(t, res.Next.Text)
			assert.Empty(t, fields, "rejected input must not touch fields")
		})
	}
}

func TestPickScheduleSequence(t *testing.T) {
	p := flow.NewPickSchedule()
	p.Now = func() time.Time { return time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC) }

	prompt := p.Prompt()
	require.Len(t, prompt.Options, 7)
	assert.Equal(t, "2025-08-01", prompt.Options[0])
	assert.Equal(t, "2025-08-07", prompt.Options[6])

	fields := map[string]string{}

	res := p.Collect(fields, "2025-08-03")
	require.True(t, res.OK)
	assert.False(t, res.Done)
	assert.Equal(t, "Выберите час:", res.Next.Text)
	assert.Len(t, res.Next.Options, 24)

	res = p.Collect(fields, "09")
	require.True(t, res.OK)
	assert.False(t, res.Done)
	assert.Equal(t, "Выберите минуты:", res.Next.Text)

	res = p.Collect(fields, "45")
	require.True(t, res.OK)
	require.True(t, res.Done)
	assert.Equal(t, time.Date(2025, 8, 3, 9, 45, 0, 0, time.UTC), res.At)
}

func TestPickScheduleRejectsBadPieces(t *testing.T) {
	p := flow.NewPickSchedule()

	fields := map[string]string{}
	res := p.Collect(fields, "not-a-date")
	assert.False(t, res.OK)
	assert.Empty(t, fields)

	fields = map[string]string{"remind_date": "2025-08-03"}
	for _, bad := range []string{"24", "-1", "noon"} {
		res = p.Collect(fields, bad)
		assert.False(t, res.OK, "hour %q", bad)
		assert.NotContains(t, fields, "remind_hour")
	}

	fields["remind_hour"] = "09"
	for _, bad := range []string{"60", "-5", "half"} {
		res = p.Collect(fields, bad)
		assert.False(t, res.OK, "minute %q", bad)
	}
}
