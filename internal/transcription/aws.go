package transcription

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/rafeekpro/speecher/pkg/logger"
)

const (
	itemTypePronunciation = "pronunciation"
	itemTypePunctuation   = "punctuation"

	// Speaker label used by the flat fallback when diarization is unusable
	genericSpeaker = "Speaker"

	// A sentence already ending in one of these is left untouched by
	// finishSentence
	sentenceTerminators = ".!?,;:-"
)

// wordItem is one recognized token in provider order. Punctuation tokens
// carry no timing of their own; they ride on the preceding word.
type wordItem struct {
	kind     string
	text     string
	start    float64
	end      float64
	hasTimes bool
}

// speakerSegment is one diarization interval. Providers do not guarantee
// that segments arrive sorted, nor that word intervals nest cleanly inside
// exactly one segment.
type speakerSegment struct {
	speaker string
	start   float64
	end     float64
}

// awsStrategy attempts to merge word items and diarization segments into
// speaker-attributed segments. A nil or empty return means the strategy
// could not produce output and the next one in the chain is tried.
type awsStrategy struct {
	name string
	run  func(items []wordItem, segments []speakerSegment) []NormalizedSegment
}

// awsStrategies is the fallback chain, tried in order: strict interval
// matching first, chronological speaker-switch grouping second, and finally
// a flat join of every word with diarization ignored.
var awsStrategies = []awsStrategy{
	{name: "interval-match", run: matchByInterval},
	{name: "speaker-switch", run: groupBySpeakerSwitch},
	{name: "flat", run: flattenAllWords},
}

// reconcileAWS merges the payload's word items and diarization segments into
// chronologically sorted, speaker-attributed segments.
func (e *Engine) reconcileAWS(p *awsPayload) ([]NormalizedSegment, error) {
	items := parseAWSItems(p.Items)
	segments := parseAWSSegments(p.SpeakerLabels.Segments)

	for _, strategy := range awsStrategies {
		result := strategy.run(items, segments)
		if len(result) == 0 {
			e.logger.Debug("Reconciliation strategy yielded no segments, falling back",
				logger.String("strategy", strategy.name))
			continue
		}

		// The producing strategy may already emit segments in order, but
		// this sort is the engine's sole ordering guarantee, so it always
		// runs.
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].StartTime < result[j].StartTime
		})

		e.logger.Debug("Reconciled diarized transcript",
			logger.String("strategy", strategy.name),
			logger.Int("segments", len(result)))
		return result, nil
	}

	return nil, fmt.Errorf("%w: no strategy produced any segments", ErrEmptyResult)
}

// parseAWSItems converts wire items into wordItems, preserving provider
// order. Items without an alternative keep their position with empty text so
// that index-based punctuation lookahead stays aligned with the raw list.
func parseAWSItems(raw []awsItem) []wordItem {
	items := make([]wordItem, 0, len(raw))
	for _, item := range raw {
		w := wordItem{kind: item.Type}
		if len(item.Alternatives) > 0 {
			w.text = item.Alternatives[0].Content
		}
		if item.StartTime != "" && item.EndTime != "" {
			start, serr := strconv.ParseFloat(item.StartTime, 64)
			end, eerr := strconv.ParseFloat(item.EndTime, 64)
			if serr == nil && eerr == nil {
				w.start = start
				w.end = end
				w.hasTimes = true
			}
		}
		items = append(items, w)
	}
	return items
}

func parseAWSSegments(raw []awsSpeakerSegment) []speakerSegment {
	segments := make([]speakerSegment, 0, len(raw))
	for _, seg := range raw {
		start, serr := strconv.ParseFloat(seg.StartTime, 64)
		end, eerr := strconv.ParseFloat(seg.EndTime, 64)
		if serr != nil || eerr != nil {
			continue
		}
		segments = append(segments, speakerSegment{
			speaker: seg.SpeakerLabel,
			start:   start,
			end:     end,
		})
	}
	return segments
}

// matchByInterval collects, for each diarization segment, every word whose
// interval lies entirely within the segment, sorts them by start time, and
// attaches punctuation that immediately follows a word in the raw item list.
// Segments with no matching words contribute nothing.
func matchByInterval(items []wordItem, segments []speakerSegment) []NormalizedSegment {
	var out []NormalizedSegment
	for _, seg := range segments {
		matched := wordsWithinSegment(items, seg)
		sort.SliceStable(matched, func(i, j int) bool {
			return items[matched[i]].start < items[matched[j]].start
		})

		words := make([]string, 0, len(matched))
		for _, idx := range matched {
			if w, ok := wordWithPunctuation(items, idx); ok {
				words = append(words, w)
			}
		}
		if len(words) == 0 {
			continue
		}

		out = append(out, NormalizedSegment{
			Speaker:   seg.speaker,
			Text:      finishSentence(strings.Join(words, " ")),
			StartTime: seg.start,
			EndTime:   seg.end,
		})
	}
	return out
}

// groupBySpeakerSwitch walks the segments in the order the provider emitted
// them, accumulating matched words into one running utterance per speaker and
// flushing whenever the speaker label changes. This tolerates overlapping or
// unsorted segments that leave tier 1 with nothing to emit.
func groupBySpeakerSwitch(items []wordItem, segments []speakerSegment) []NormalizedSegment {
	var (
		out        []NormalizedSegment
		buffer     []string
		speaker    string
		start, end float64
	)

	flush := func() {
		if speaker == "" || len(buffer) == 0 {
			return
		}
		out = append(out, NormalizedSegment{
			Speaker:   speaker,
			Text:      finishSentence(strings.Join(buffer, " ")),
			StartTime: start,
			EndTime:   end,
		})
		buffer = nil
	}

	for _, seg := range segments {
		if speaker != seg.speaker {
			flush()
			start = seg.start
		}
		speaker = seg.speaker
		end = seg.end

		for _, idx := range wordsWithinSegment(items, seg) {
			if w, ok := wordWithPunctuation(items, idx); ok {
				buffer = append(buffer, w)
			}
		}
	}
	flush()
	return out
}

// flattenAllWords ignores diarization entirely: every word in file order,
// with trailing punctuation attached, becomes a single generically-labeled
// segment with zero timestamps.
func flattenAllWords(items []wordItem, _ []speakerSegment) []NormalizedSegment {
	var words []string
	for _, item := range items {
		if item.text == "" {
			continue
		}
		if item.kind == itemTypePunctuation {
			if len(words) > 0 {
				words[len(words)-1] += item.text
			}
			continue
		}
		words = append(words, item.text)
	}
	if len(words) == 0 {
		return nil
	}
	return []NormalizedSegment{{
		Speaker:   genericSpeaker,
		Text:      finishSentence(strings.Join(words, " ")),
		StartTime: 0.0,
		EndTime:   0.0,
	}}
}

// wordsWithinSegment returns the indices of word items whose [start,end]
// interval lies entirely within the segment's interval
func wordsWithinSegment(items []wordItem, seg speakerSegment) []int {
	var matched []int
	for i, item := range items {
		if item.kind == itemTypePunctuation || !item.hasTimes {
			continue
		}
		if seg.start <= item.start && item.end <= seg.end {
			matched = append(matched, i)
		}
	}
	return matched
}

// wordWithPunctuation returns the word at idx with an immediately following
// punctuation token appended without a separating space. Items with no text
// are skipped.
func wordWithPunctuation(items []wordItem, idx int) (string, bool) {
	word := items[idx].text
	if word == "" {
		return "", false
	}
	if idx+1 < len(items) && items[idx+1].kind == itemTypePunctuation {
		word += items[idx+1].text
	}
	return word, true
}

// finishSentence collapses repeated whitespace, uppercases the first rune and
// terminates the sentence with a period unless it already ends in punctuation
func finishSentence(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return text
	}
	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	if !strings.ContainsRune(sentenceTerminators, runes[len(runes)-1]) {
		return string(runes) + "."
	}
	return string(runes)
}

// renderAWSSimple renders the non-diarized AWS shape: per-word interval lines
// when timestamps are requested and word items are available, the flat
// transcript text otherwise.
func renderAWSSimple(p *awsPayload, opts Options) ([]string, error) {
	items := parseAWSItems(p.Items)

	if opts.IncludeTimestamps {
		var lines []string
		for _, item := range items {
			if item.kind != itemTypePronunciation || item.text == "" || !item.hasTimes {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s %s", FormatInterval(item.start, item.end), item.text))
		}
		if len(lines) > 0 {
			return lines, nil
		}
	}

	if len(p.Transcripts) > 0 && p.Transcripts[0].Transcript != "" {
		return []string{p.Transcripts[0].Transcript}, nil
	}

	// No flat transcript field; fall back to joining the word items.
	if flat := flattenAllWords(items, nil); len(flat) > 0 {
		return []string{flat[0].Text}, nil
	}

	return nil, fmt.Errorf("%w: aws result has no transcript text", ErrEmptyResult)
}
