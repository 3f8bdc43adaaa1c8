package transcription

import (
	"fmt"
	"math"
)

// FormatTimestamp renders a position in seconds as HH:MM:SS, or as
// HH:MM:SS.mmm when sub-second precision is requested. Durations of an hour
// or more roll into the hours field rather than wrapping.
func FormatTimestamp(seconds float64, millis bool) string {
	if seconds < 0 {
		seconds = 0
	}
	whole := int(seconds)
	hours := whole / 3600
	minutes := (whole % 3600) / 60

	if millis {
		return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, math.Mod(seconds, 60))
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, whole%60)
}

// FormatInterval renders a start/end pair as a bracketed interval with
// millisecond precision, e.g. [00:00:01.500 - 00:00:02.250]
func FormatInterval(start, end float64) string {
	return fmt.Sprintf("[%s - %s]", FormatTimestamp(start, true), FormatTimestamp(end, true))
}
