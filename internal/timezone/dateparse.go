package timezone

import (
	"fmt"
	"strings"
	"time"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ResolveDate normalizes a spoken date to "2006-01-02" relative to now.
// Accepted forms: "2006-01-02", "01/02/2006", "today", "tomorrow",
// "day after tomorrow", "next <weekday>".
func ResolveDate(s string, now time.Time) (string, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	today := now

	switch {
	case in == "today":
		return today.Format("2006-01-02"), nil
	case in == "day after tomorrow":
		return today.AddDate(0, 0, 2).Format("2006-01-02"), nil
	case in == "tomorrow":
		return today.AddDate(0, 0, 1).Format("2006-01-02"), nil
	case strings.HasPrefix(in, "next "):
		name := strings.TrimSpace(strings.TrimPrefix(in, "next "))
		wd, ok := weekdays[name]
		if !ok {
			return "", fmt.Errorf("unknown weekday %q", name)
		}
		days := (int(wd) - int(today.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return today.AddDate(0, 0, days).Format("2006-01-02"), nil
	}

	if t, err := time.Parse("2006-01-02", in); err == nil {
		return t.Format("2006-01-02"), nil
	}
	if t, err := time.Parse("01/02/2006", in); err == nil {
		return t.Format("2006-01-02"), nil
	}

	return "", fmt.Errorf("unrecognized date %q", s)
}
