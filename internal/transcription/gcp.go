package transcription

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// flattenGCP extracts transcript lines from a GCP Speech-to-Text result.
// Each result contributes its first alternative's transcript. When word-level
// timestamps are requested, per-word interval lines are emitted instead,
// unless the words array covers fewer tokens than the transcript itself, a
// sign of incomplete word data that forces the flat text for that result.
func flattenGCP(p *gcpPayload, opts Options) ([]string, error) {
	var lines []string
	for _, result := range p.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		alt := result.Alternatives[0]

		if !opts.IncludeTimestamps || len(alt.Words) < len(strings.Fields(alt.Transcript)) {
			if alt.Transcript != "" {
				lines = append(lines, alt.Transcript)
			}
			continue
		}

		for _, word := range alt.Words {
			start, err := parseGCPTime(word.StartTime)
			if err != nil {
				return nil, err
			}
			end, err := parseGCPTime(word.EndTime)
			if err != nil {
				return nil, err
			}
			lines = append(lines, fmt.Sprintf("%s %s", FormatInterval(start, end), word.Word))
		}
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no transcript text in gcp result", ErrEmptyResult)
	}
	return lines, nil
}

// parseGCPTime normalizes the two GCP time encodings to float seconds:
// a {seconds, nanos} object becomes seconds + nanos/1e9, a string like
// "1.5s" has the suffix stripped and is parsed as a float. Bare numbers are
// accepted as seconds. A missing value is zero.
func parseGCPTime(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		secs, err := strconv.ParseFloat(strings.TrimSuffix(str, "s"), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid word time %q", ErrMalformedPayload, str)
		}
		return secs, nil
	}

	var obj struct {
		Seconds json.RawMessage `json:"seconds"`
		Nanos   json.RawMessage `json:"nanos"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return 0, fmt.Errorf("%w: invalid word time %s", ErrMalformedPayload, string(raw))
	}
	secs, err := parseLooseNumber(obj.Seconds)
	if err != nil {
		return 0, err
	}
	nanos, err := parseLooseNumber(obj.Nanos)
	if err != nil {
		return 0, err
	}
	return secs + nanos/1e9, nil
}

// parseLooseNumber accepts a JSON number or a quoted number; protojson
// serializes int64 seconds as strings
func parseLooseNumber(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if parsed, err := strconv.ParseFloat(str, 64); err == nil {
			return parsed, nil
		}
	}
	return 0, fmt.Errorf("%w: invalid numeric value %s", ErrMalformedPayload, string(raw))
}
