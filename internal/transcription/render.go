package transcription

import (
	"fmt"
	"os"
	"strings"
)

// RenderSegments turns an ordered segment list into printable transcript
// lines: "[<start>] <speaker>: <text>" with timestamps, "<speaker>: <text>"
// without.
func RenderSegments(segments []NormalizedSegment, includeTimestamps bool) []string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		if includeTimestamps {
			lines = append(lines, fmt.Sprintf("[%s] %s: %s",
				FormatTimestamp(seg.StartTime, true), seg.Speaker, seg.Text))
		} else {
			lines = append(lines, fmt.Sprintf("%s: %s", seg.Speaker, seg.Text))
		}
	}
	return lines
}

// WriteLines writes the rendered transcript to path as newline-joined UTF-8
// text. The file handle is released on every path; a failure surfaces as
// ErrSinkWrite and leaves the in-memory lines untouched.
func WriteLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}

	_, werr := f.WriteString(strings.Join(lines, "\n"))
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("%w: %v", ErrSinkWrite, werr)
	}
	return nil
}
