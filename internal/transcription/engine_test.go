package transcription

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessIsIdempotent(t *testing.T) {
	engine := newTestEngine()
	opts := Options{SpeakerAttribution: true, IncludeTimestamps: true}

	first, err := engine.Process(json.RawMessage(diarizedPayload), opts)
	require.NoError(t, err)

	second, err := engine.Process(json.RawMessage(diarizedPayload), opts)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestProcessUnrecognizedFormat(t *testing.T) {
	_, err := newTestEngine().Process(json.RawMessage(`{"jobName": "x", "status": "COMPLETED"}`), Options{})
	require.ErrorIs(t, err, ErrUnrecognizedFormat)
}

func TestProcessMalformedPayload(t *testing.T) {
	_, err := newTestEngine().Process(json.RawMessage(`"not an object"`), Options{})
	require.ErrorIs(t, err, ErrMalformedPayload)
}

func TestProcessNoTimestampsNeverBracketed(t *testing.T) {
	payloads := []string{
		diarizedPayload,
		`{"combinedRecognizedPhrases": [{"display": "Hello there."}]}`,
		`{"results": [{"alternatives": [{"transcript": "Hi"}]}]}`,
		`{"results": {"transcripts": [{"transcript": "Plain text"}]}}`,
	}

	engine := newTestEngine()
	for _, payload := range payloads {
		result, err := engine.Process(json.RawMessage(payload), Options{SpeakerAttribution: true})
		require.NoError(t, err)
		for _, line := range result.Lines {
			require.NotContains(t, line, "[", "payload: %s", payload)
		}
	}
}

func TestProcessToFile(t *testing.T) {
	engine := newTestEngine()
	path := filepath.Join(t.TempDir(), "out.txt")

	result, err := engine.ProcessToFile(json.RawMessage(diarizedPayload), Options{SpeakerAttribution: true}, path)
	require.NoError(t, err)
	require.Len(t, result.Lines, 2)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "spk_0: Hi.\nspk_1: How are you?", string(data))
}

func TestProcessToFileWriteFailure(t *testing.T) {
	engine := newTestEngine()
	path := filepath.Join(t.TempDir(), "missing", "out.txt")

	result, err := engine.ProcessToFile(json.RawMessage(diarizedPayload), Options{SpeakerAttribution: true}, path)
	require.ErrorIs(t, err, ErrSinkWrite)
	// The rendered lines survive the failed write.
	require.NotNil(t, result)
	require.Len(t, result.Lines, 2)
}
