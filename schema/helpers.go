package schema

import (
	"fmt"
	"time"
)

// weekdayNames is indexed by time.Weekday, so 0 is Sunday.
var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// MonthKey formats a date as a zero-padded YYYY-MM key.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// WeekdayName returns the English name of a weekday index (0=Sunday).
// Out-of-range indices are rendered as "Day N".
func WeekdayName(day int) string {
	if day < 0 || day >= len(weekdayNames) {
		return fmt.Sprintf("Day %d", day)
	}
	return weekdayNames[day]
}

// ShareOf returns part as a percentage of total, or 0 when total is not positive.
func ShareOf(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total * 100
}
