package transcription

import (
	"encoding/json"
	"testing"

	"github.com/rafeekpro/speecher/pkg/logger"
	"github.com/stretchr/testify/require"
)

// diarizedPayload is an AWS-shaped result with two speakers whose diarization
// segments arrive out of temporal order.
const diarizedPayload = `{
	"results": {
		"transcripts": [{"transcript": "Hi How are you"}],
		"speaker_labels": {
			"speakers": 2,
			"segments": [
				{"speaker_label": "spk_1", "start_time": "5.0", "end_time": "9.0"},
				{"speaker_label": "spk_0", "start_time": "0.0", "end_time": "1.0"}
			]
		},
		"items": [
			{"type": "pronunciation", "start_time": "0.0", "end_time": "0.4", "alternatives": [{"confidence": "0.99", "content": "Hi"}]},
			{"type": "punctuation", "alternatives": [{"confidence": "0.0", "content": "."}]},
			{"type": "pronunciation", "start_time": "5.0", "end_time": "5.3", "alternatives": [{"confidence": "0.98", "content": "How"}]},
			{"type": "pronunciation", "start_time": "5.4", "end_time": "5.6", "alternatives": [{"confidence": "0.97", "content": "are"}]},
			{"type": "pronunciation", "start_time": "5.7", "end_time": "5.9", "alternatives": [{"confidence": "0.99", "content": "you"}]},
			{"type": "punctuation", "alternatives": [{"confidence": "0.0", "content": "?"}]}
		]
	}
}`

func newTestEngine() *Engine {
	return NewEngine(logger.NewNop())
}

func TestReconcileAWSSortsSegments(t *testing.T) {
	result, err := newTestEngine().Process(json.RawMessage(diarizedPayload), Options{
		SpeakerAttribution: true,
	})
	require.NoError(t, err)
	require.Equal(t, FormatAWS, result.Format)

	require.Equal(t, []NormalizedSegment{
		{Speaker: "spk_0", Text: "Hi.", StartTime: 0.0, EndTime: 1.0},
		{Speaker: "spk_1", Text: "How are you?", StartTime: 5.0, EndTime: 9.0},
	}, result.Segments)

	require.Equal(t, []string{
		"spk_0: Hi.",
		"spk_1: How are you?",
	}, result.Lines)
}

func TestReconcileAWSWithTimestamps(t *testing.T) {
	result, err := newTestEngine().Process(json.RawMessage(diarizedPayload), Options{
		SpeakerAttribution: true,
		IncludeTimestamps:  true,
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		"[00:00:00.000] spk_0: Hi.",
		"[00:00:05.000] spk_1: How are you?",
	}, result.Lines)
}

func TestReconcileAWSFlatFallback(t *testing.T) {
	// No word interval falls inside the lone segment, so tiers 1 and 2 are
	// empty and the flat tier takes over.
	payload := `{
		"results": {
			"speaker_labels": {
				"speakers": 1,
				"segments": [
					{"speaker_label": "spk_0", "start_time": "0.0", "end_time": "1.0"}
				]
			},
			"items": [
				{"type": "pronunciation", "start_time": "10.0", "end_time": "10.5", "alternatives": [{"confidence": "0.9", "content": "hello"}]},
				{"type": "pronunciation", "start_time": "10.6", "end_time": "11.0", "alternatives": [{"confidence": "0.9", "content": "world"}]}
			]
		}
	}`

	result, err := newTestEngine().Process(json.RawMessage(payload), Options{SpeakerAttribution: true})
	require.NoError(t, err)
	require.Equal(t, []NormalizedSegment{
		{Speaker: "Speaker", Text: "Hello world.", StartTime: 0.0, EndTime: 0.0},
	}, result.Segments)
}

func TestReconcileAWSEmptyResult(t *testing.T) {
	// A lone punctuation item gives every tier nothing to emit.
	payload := `{
		"results": {
			"speaker_labels": {
				"speakers": 1,
				"segments": [
					{"speaker_label": "spk_0", "start_time": "0.0", "end_time": "1.0"}
				]
			},
			"items": [
				{"type": "punctuation", "alternatives": [{"confidence": "0.0", "content": "."}]}
			]
		}
	}`

	_, err := newTestEngine().Process(json.RawMessage(payload), Options{SpeakerAttribution: true})
	require.ErrorIs(t, err, ErrEmptyResult)
}

func TestReconcileAWSSkipsItemsWithoutAlternatives(t *testing.T) {
	payload := `{
		"results": {
			"speaker_labels": {
				"speakers": 1,
				"segments": [
					{"speaker_label": "spk_0", "start_time": "0.0", "end_time": "2.0"}
				]
			},
			"items": [
				{"type": "pronunciation", "start_time": "0.0", "end_time": "0.4", "alternatives": []},
				{"type": "pronunciation", "start_time": "0.5", "end_time": "0.9", "alternatives": [{"confidence": "0.9", "content": "hello"}]}
			]
		}
	}`

	result, err := newTestEngine().Process(json.RawMessage(payload), Options{SpeakerAttribution: true})
	require.NoError(t, err)
	require.Len(t, result.Segments, 1)
	require.Equal(t, "Hello.", result.Segments[0].Text)
}

func TestGroupBySpeakerSwitch(t *testing.T) {
	items := []wordItem{
		{kind: itemTypePronunciation, text: "hello", start: 0.1, end: 0.5, hasTimes: true},
		{kind: itemTypePronunciation, text: "again", start: 1.2, end: 1.8, hasTimes: true},
		{kind: itemTypePronunciation, text: "bye", start: 2.1, end: 2.5, hasTimes: true},
	}
	segments := []speakerSegment{
		{speaker: "spk_0", start: 0.0, end: 1.0},
		{speaker: "spk_0", start: 1.0, end: 2.0},
		{speaker: "spk_1", start: 2.0, end: 3.0},
	}

	out := groupBySpeakerSwitch(items, segments)
	require.Equal(t, []NormalizedSegment{
		{Speaker: "spk_0", Text: "Hello again.", StartTime: 0.0, EndTime: 2.0},
		{Speaker: "spk_1", Text: "Bye.", StartTime: 2.0, EndTime: 3.0},
	}, out)
}

func TestFinishSentence(t *testing.T) {
	require.Equal(t, "Hello world.", finishSentence("  hello   world "))
	require.Equal(t, "Hi!", finishSentence("hi!"))
	require.Equal(t, "Already fine,", finishSentence("already fine,"))
	require.Equal(t, "", finishSentence("   "))
}

func TestRenderAWSSimple(t *testing.T) {
	payload := `{
		"results": {
			"transcripts": [{"transcript": "Hello world"}],
			"items": [
				{"type": "pronunciation", "start_time": "0.0", "end_time": "0.5", "alternatives": [{"confidence": "0.9", "content": "Hello"}]},
				{"type": "pronunciation", "start_time": "0.6", "end_time": "1.0", "alternatives": [{"confidence": "0.9", "content": "world"}]}
			]
		}
	}`

	t.Run("flat without timestamps", func(t *testing.T) {
		result, err := newTestEngine().Process(json.RawMessage(payload), Options{})
		require.NoError(t, err)
		require.Equal(t, []string{"Hello world"}, result.Lines)
		require.Nil(t, result.Segments)
	})

	t.Run("per-word with timestamps", func(t *testing.T) {
		result, err := newTestEngine().Process(json.RawMessage(payload), Options{IncludeTimestamps: true})
		require.NoError(t, err)
		require.Equal(t, []string{
			"[00:00:00.000 - 00:00:00.500] Hello",
			"[00:00:00.600 - 00:00:01.000] world",
		}, result.Lines)
	})

	t.Run("empty transcripts", func(t *testing.T) {
		_, err := newTestEngine().Process(json.RawMessage(`{"results": {"transcripts": []}}`), Options{})
		require.ErrorIs(t, err, ErrEmptyResult)
	})
}
