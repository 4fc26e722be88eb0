package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderintake/internal/domain"
)

// ref is a Monday.
var ref = time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFindDateNumeric(t *testing.T) {
	cases := map[string]time.Time{
		"deliver by 2025-06-12 please": date(2025, time.June, 12),
		"needed on 12/06/2025":         date(2025, time.December, 6),
		"before 15/01/2026":            date(2026, time.January, 15),
	}
	for text, want := range cases {
		got, ev, ok := findDate(text, ref)
		require.True(t, ok, text)
		assert.Equal(t, want, got, text)
		assert.Equal(t, domain.EvidenceExplicitDate, ev.Kind, text)
	}
}

func TestFindDateMonthName(t *testing.T) {
	got, ev, ok := findDate("we need these by June 12th, 2025", ref)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.June, 12), got)
	assert.Equal(t, domain.EvidenceExplicitDate, ev.Kind)

	got, _, ok = findDate("deliver on 12 June", ref)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.June, 12), got)
}

func TestFindDateMonthNameRollsToNextYear(t *testing.T) {
	// January has already passed relative to ref, so without a year the
	// next occurrence is assumed.
	got, _, ok := findDate("deliver by January 15", ref)
	require.True(t, ok)
	assert.Equal(t, date(2026, time.January, 15), got)
}

func TestFindDateRejectsImpossibleCalendarDate(t *testing.T) {
	_, _, ok := findDate("deliver by Feb 30", ref)
	assert.False(t, ok)
}

func TestFindDateRelative(t *testing.T) {
	got, ev, ok := findDate("we need this next Friday", ref)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.June, 6), got)
	assert.Equal(t, domain.EvidenceRelativeDate, ev.Kind)

	got, _, ok = findDate("delivery tomorrow please", ref)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.June, 3), got)

	got, _, ok = findDate("ship in 10 days", ref)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.June, 12), got)
}

func TestFindDateSameWeekdayMeansNextWeek(t *testing.T) {
	// ref is a Monday; "next Monday" is a week out, never today.
	got, _, ok := findDate("next Monday works", ref)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.June, 9), got)
}

func TestFindDateNone(t *testing.T) {
	_, _, ok := findDate("no schedule information here", ref)
	assert.False(t, ok)
}

func TestFindDateExplicitWinsOverRelative(t *testing.T) {
	got, ev, ok := findDate("deliver 2025-07-01 or next Friday at the latest", ref)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.July, 1), got)
	assert.Equal(t, domain.EvidenceExplicitDate, ev.Kind)
}
