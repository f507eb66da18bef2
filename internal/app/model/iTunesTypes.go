package model

import (
	"fmt"
	"math"
	"time"
)

type ItunesTime struct {
	time.Time
}

// Override default String() function to output time in RFC1123Z format (Itunes "RFC2822" time format).
func (t ItunesTime) String() string {
	return t.UTC().Format(time.RFC1123Z)
}

// FormatDuration formats seconds the way itunes:duration expects
// (HH:MM:SS). Fractions are truncated, hours are not wrapped at 24
// and NaN, infinite or negative input gives 00:00:00.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 || seconds >= math.MaxInt64 {
		return "00:00:00"
	}
	s := int64(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}
