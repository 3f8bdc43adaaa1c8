package transcription

import "fmt"

// Azure batch results encode offsets and durations as 100-nanosecond ticks
const azureTicksPerSecond = 1e7

// flattenAzure extracts transcript lines from an Azure batch transcription
// result. The pre-merged combinedRecognizedPhrases text is preferred when
// present; otherwise each successfully recognized phrase contributes its best
// candidate's display text, with an interval prefix when timestamps are
// requested.
func flattenAzure(p *azurePayload, opts Options) ([]string, error) {
	if len(p.CombinedRecognizedPhrases) > 0 {
		lines := make([]string, 0, len(p.CombinedRecognizedPhrases))
		for _, phrase := range p.CombinedRecognizedPhrases {
			lines = append(lines, phrase.Display)
		}
		return lines, nil
	}

	var lines []string
	for _, phrase := range p.RecognizedPhrases {
		if phrase.RecognitionStatus != "Success" || len(phrase.NBest) == 0 {
			continue
		}
		text := phrase.NBest[0].Display

		if opts.IncludeTimestamps {
			start := phrase.Offset / azureTicksPerSecond
			end := (phrase.Offset + phrase.Duration) / azureTicksPerSecond
			lines = append(lines, fmt.Sprintf("%s %s", FormatInterval(start, end), text))
		} else {
			lines = append(lines, text)
		}
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no recognized phrases in azure result", ErrEmptyResult)
	}
	return lines, nil
}
