package calendar

import (
	"fmt"
	"time"
)

// ParseClock converts "15:04" to minutes since midnight.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock is the inverse of ParseClock.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) share any instant.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// WithinWindow reports whether [start,end) fits inside the working
// window [workStart,workEnd].
func WithinWindow(workStart, workEnd, start, end int) bool {
	return start >= workStart && end <= workEnd
}
