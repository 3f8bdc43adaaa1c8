package transcription

import "errors"

// Error kinds reported by the engine. Callers match them with errors.Is to
// decide how a failure is surfaced: an unrecognized payload points at the
// provider response, an empty result points at the transcription job itself.
var (
	// ErrUnrecognizedFormat means the payload matches none of the known
	// provider shapes.
	ErrUnrecognizedFormat = errors.New("unrecognized transcription format")

	// ErrEmptyResult means the payload was classified but contained no
	// transcript content to render.
	ErrEmptyResult = errors.New("no transcript content in result")

	// ErrMalformedPayload means expected keys are missing or of the wrong
	// type.
	ErrMalformedPayload = errors.New("malformed transcription payload")

	// ErrSinkWrite means the optional transcript file could not be written.
	ErrSinkWrite = errors.New("failed to write transcript file")
)
