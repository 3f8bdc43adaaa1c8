package transcription

import (
	"encoding/json"
	"fmt"
)

// Classify inspects the top-level keys of a raw recognition result and
// reports which provider shape it carries. Validation of the payload shape
// happens once here; the flatteners and the reconciler can then decode into
// their typed structs without re-checking.
//
// The rules, checked in order:
//   - Azure if recognizedPhrases or combinedRecognizedPhrases is present
//   - GCP if results is present and is a list
//   - AWS if results is present and is a mapping holding either
//     speaker_labels and items, or transcripts
func Classify(raw json.RawMessage) (Format, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return FormatUnknown, fmt.Errorf("%w: payload is not a JSON object", ErrMalformedPayload)
	}
	if len(top) == 0 {
		return FormatUnknown, fmt.Errorf("%w: payload is empty", ErrMalformedPayload)
	}

	if _, ok := top["recognizedPhrases"]; ok {
		return FormatAzure, nil
	}
	if _, ok := top["combinedRecognizedPhrases"]; ok {
		return FormatAzure, nil
	}

	results, ok := top["results"]
	if !ok {
		return FormatUnknown, ErrUnrecognizedFormat
	}

	switch firstJSONByte(results) {
	case '[':
		return FormatGCP, nil
	case '{':
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(results, &inner); err != nil {
			return FormatUnknown, fmt.Errorf("%w: invalid results object", ErrMalformedPayload)
		}
		_, hasLabels := inner["speaker_labels"]
		_, hasItems := inner["items"]
		_, hasTranscripts := inner["transcripts"]
		if (hasLabels && hasItems) || hasTranscripts {
			return FormatAWS, nil
		}
		return FormatUnknown, fmt.Errorf("%w: results object has neither diarization data nor transcripts", ErrUnrecognizedFormat)
	default:
		return FormatUnknown, fmt.Errorf("%w: results is neither a list nor a mapping", ErrMalformedPayload)
	}
}

// firstJSONByte returns the first non-whitespace byte of a raw JSON value,
// or 0 if there is none
func firstJSONByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b
		}
	}
	return 0
}
