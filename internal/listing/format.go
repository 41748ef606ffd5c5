package listing

import (
	"fmt"
	"strings"
	"time"
)

// FormatPrice renders a whole-dollar amount with thousands separators.
func FormatPrice(price int) string {
	digits := fmt.Sprintf("%d", price)
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	out := "$" + strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// FormatDate renders a millisecond timestamp as a short date.
func FormatDate(ms int64) string {
	return time.UnixMilli(ms).Format("Jan 2, 2006")
}

// FormatRelativeTime renders how long ago a millisecond timestamp was.
func FormatRelativeTime(ms int64, now time.Time) string {
	diff := now.Sub(time.UnixMilli(ms))
	switch {
	case diff >= 24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	case diff >= time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff >= time.Minute:
		return plural(int(diff.Minutes()), "minute")
	default:
		return "Just now"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// Truncate shortens text to maxLen runes with a trailing ellipsis.
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return strings.TrimSpace(string(runes[:maxLen])) + "..."
}
