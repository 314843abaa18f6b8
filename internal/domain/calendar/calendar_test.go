package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
)

func TestAddMonth_RecortaAlUltimoDia(t *testing.T) {
	cases := []struct {
		in, want time.Time
	}{
		{calendar.Date(2024, 1, 31), calendar.Date(2024, 2, 29)},
		{calendar.Date(2023, 1, 31), calendar.Date(2023, 2, 28)},
		{calendar.Date(2024, 3, 31), calendar.Date(2024, 4, 30)},
		{calendar.Date(2024, 1, 15), calendar.Date(2024, 2, 15)},
		{calendar.Date(2024, 12, 31), calendar.Date(2025, 1, 31)},
		{calendar.Date(2024, 2, 29), calendar.Date(2024, 3, 29)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, calendar.AddMonth(tc.in), "AddMonth(%s)", calendar.Format(tc.in))
	}
}

func TestMonthBounds_TodosLosMeses(t *testing.T) {
	want2024 := []int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	for i, days := range want2024 {
		first, last := calendar.MonthBounds(calendar.Date(2024, time.Month(i+1), 15))
		assert.Equal(t, 1, first.Day())
		assert.Equal(t, days, last.Day(), "mes %d", i+1)
	}
	_, last := calendar.MonthBounds(calendar.Date(2023, 2, 10))
	assert.Equal(t, calendar.Date(2023, 2, 28), last)
}

func TestMonthBounds_FebreroBisiesto(t *testing.T) {
	first, last := calendar.MonthBounds(calendar.Date(2024, 2, 15))
	assert.Equal(t, calendar.Date(2024, 2, 1), first)
	assert.Equal(t, calendar.Date(2024, 2, 29), last)
}

func TestToday_UsaLaZonaIndicada(t *testing.T) {
	loc, err := time.LoadLocation("America/Costa_Rica")
	require.NoError(t, err)

	// 03:00 UTC del 1 de marzo es todavía 29 de febrero en Costa Rica (UTC-6).
	now := time.Date(2024, 3, 1, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, calendar.Date(2024, 2, 29), calendar.Today(now, loc))
	assert.Equal(t, calendar.Date(2024, 3, 1), calendar.Today(now, nil))
}

func TestParseYFormat(t *testing.T) {
	d, err := calendar.Parse("2024-07-09")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-09", calendar.Format(d))

	_, err = calendar.Parse("09/07/2024")
	assert.Error(t, err)
}

func TestFormatosEnEspanol(t *testing.T) {
	assert.Equal(t, "05 de marzo", calendar.LongES(calendar.Date(2024, 3, 5)))
	assert.Equal(t, "Febrero 2026", calendar.MonthLabelES(calendar.Date(2026, 2, 1)))
	assert.Equal(t, calendar.Date(2024, 3, 1), calendar.AddDays(calendar.Date(2024, 2, 28), 2))
}
