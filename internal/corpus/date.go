package corpus

import "time"

// DateLayout is the persisted form of NextDue.
const DateLayout = "2006-01-02"

// Day truncates t to its calendar day, expressed as UTC midnight so that
// days compare and round-trip without zone drift.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the day n days after day.
func AddDays(day time.Time, n int) time.Time {
	return Day(day).AddDate(0, 0, n)
}

// FormatDate renders a day in DateLayout.
func FormatDate(day time.Time) string {
	return Day(day).Format(DateLayout)
}

// ParseDate parses a persisted date. Timestamps in RFC 3339 form are
// accepted too and truncated to their day.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}
