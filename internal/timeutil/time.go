package timeutil

import (
	"strings"
	"time"
)

// TimestampLayout is the storage format for user-state timestamps.
// Lexicographic order matches chronological order, which the
// watched-recency sort relies on.
const TimestampLayout = "2006-01-02 15:04:05"

var nowFunc = time.Now

// Now returns the current time. It is wrapped to simplify testing and
// allow centralized timezone handling.
func Now() time.Time {
	return nowFunc()
}

// SetNowFunc overrides the function used by Now. Passing nil resets it.
func SetNowFunc(fn func() time.Time) {
	if fn == nil {
		nowFunc = time.Now
		return
	}
	nowFunc = fn
}

// Timestamp returns the current time in the storage layout.
func Timestamp() string {
	return Now().Format(TimestampLayout)
}

// ExtractYear pulls the year out of a provider date (YYYY-MM-DD).
// Unparseable dates yield "Unknown".
func ExtractYear(date string) string {
	date = strings.TrimSpace(date)
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Format("2006")
	}
	return "Unknown"
}
