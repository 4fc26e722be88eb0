package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"orderintake/internal/domain"
)

var (
	numericDateRe = regexp.MustCompile(`\b(\d{4}-\d{1,2}-\d{1,2}|\d{1,2}[/.]\d{1,2}[/.]\d{2,4})\b`)

	monthDayRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?\b`)
	dayMonthRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?(?:,?\s+(\d{4}))?\b`)

	relativeDateRe = regexp.MustCompile(`(?i)\b(?:(next|this|coming)\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)|(tomorrow|today)|in\s+(\d+)\s+days?)\b`)
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
	"sunday": time.Sunday,
}

// findDate scans text for a date expression. Explicit expressions
// (numeric or month-name) win over relative terms; relative terms are
// resolved against ref. The returned evidence detail is the matched span.
func findDate(text string, ref time.Time) (time.Time, domain.Evidence, bool) {
	if m := numericDateRe.FindString(text); m != "" {
		if t, err := dateparse.ParseAny(m); err == nil {
			return dateOnly(t), domain.Evidence{Kind: domain.EvidenceExplicitDate, Detail: m}, true
		}
	}
	if t, span, ok := findMonthNameDate(text, ref); ok {
		return t, domain.Evidence{Kind: domain.EvidenceExplicitDate, Detail: span}, true
	}
	if t, span, ok := findRelativeDate(text, ref); ok {
		return t, domain.Evidence{Kind: domain.EvidenceRelativeDate, Detail: span}, true
	}
	return time.Time{}, domain.Evidence{}, false
}

func findMonthNameDate(text string, ref time.Time) (time.Time, string, bool) {
	if m := monthDayRe.FindStringSubmatch(text); m != nil {
		return buildCalendarDate(m[1], m[2], m[3], ref, m[0])
	}
	if m := dayMonthRe.FindStringSubmatch(text); m != nil {
		return buildCalendarDate(m[2], m[1], m[3], ref, m[0])
	}
	return time.Time{}, "", false
}

func buildCalendarDate(monthTok, dayTok, yearTok string, ref time.Time, span string) (time.Time, string, bool) {
	month, ok := months[strings.ToLower(monthTok)]
	if !ok {
		return time.Time{}, "", false
	}
	day, err := strconv.Atoi(dayTok)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, "", false
	}
	year := ref.Year()
	explicitYear := yearTok != ""
	if explicitYear {
		year, err = strconv.Atoi(yearTok)
		if err != nil {
			return time.Time{}, "", false
		}
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		// Rolled over, e.g. Feb 30: not a real calendar date.
		return time.Time{}, "", false
	}
	// Year omitted and the date already passed: assume the next occurrence.
	if !explicitYear && t.Before(dateOnly(ref)) {
		t = time.Date(year+1, month, day, 0, 0, 0, 0, time.UTC)
	}
	return t, span, true
}

func findRelativeDate(text string, ref time.Time) (time.Time, string, bool) {
	m := relativeDateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, "", false
	}
	base := dateOnly(ref)
	switch {
	case m[2] != "": // qualified weekday
		target := weekdays[strings.ToLower(m[2])]
		days := (int(target) - int(base.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return base.AddDate(0, 0, days), m[0], true
	case strings.EqualFold(m[3], "tomorrow"):
		return base.AddDate(0, 0, 1), m[0], true
	case strings.EqualFold(m[3], "today"):
		return base, m[0], true
	case m[4] != "":
		n, err := strconv.Atoi(m[4])
		if err != nil {
			return time.Time{}, "", false
		}
		return base.AddDate(0, 0, n), m[0], true
	}
	return time.Time{}, "", false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
