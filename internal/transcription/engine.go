package transcription

import (
	"encoding/json"
	"fmt"

	"github.com/rafeekpro/speecher/pkg/logger"
)

// Engine reconciles raw, provider-specific recognition results into a single
// normalized, chronologically ordered, speaker-attributed transcript. It is
// stateless and synchronous: every invocation works on its own data, so
// concurrent callers need no coordination.
type Engine struct {
	logger *logger.Logger
}

// NewEngine creates an engine with the given logger injected for diagnostics
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{logger: log.Named("transcription")}
}

// Process classifies the raw recognition result, runs the matching flattener
// or reconciler, and renders the transcript lines. Failures are always one of
// the classified engine errors, never a panic.
func (e *Engine) Process(raw json.RawMessage, opts Options) (*Result, error) {
	format, err := Classify(raw)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Classified recognition result",
		logger.String("format", format.String()),
		logger.Bool("speaker_attribution", opts.SpeakerAttribution),
		logger.Bool("include_timestamps", opts.IncludeTimestamps))

	switch format {
	case FormatAzure:
		var p azurePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		lines, err := flattenAzure(&p, opts)
		if err != nil {
			return nil, err
		}
		return &Result{Format: format, Lines: lines}, nil

	case FormatGCP:
		var p gcpPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		lines, err := flattenGCP(&p, opts)
		if err != nil {
			return nil, err
		}
		return &Result{Format: format, Lines: lines}, nil

	case FormatAWS:
		var wrapper struct {
			Results awsPayload `json:"results"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		p := wrapper.Results

		if opts.SpeakerAttribution && p.SpeakerLabels != nil &&
			len(p.SpeakerLabels.Segments) > 0 && len(p.Items) > 0 {
			segments, err := e.reconcileAWS(&p)
			if err != nil {
				return nil, err
			}
			return &Result{
				Format:   format,
				Segments: segments,
				Lines:    RenderSegments(segments, opts.IncludeTimestamps),
			}, nil
		}

		lines, err := renderAWSSimple(&p, opts)
		if err != nil {
			return nil, err
		}
		return &Result{Format: format, Lines: lines}, nil

	default:
		return nil, ErrUnrecognizedFormat
	}
}

// ProcessToFile renders the transcript and additionally writes it to path.
// The rendered result is returned even when the write fails, alongside the
// write error.
func (e *Engine) ProcessToFile(raw json.RawMessage, opts Options, path string) (*Result, error) {
	result, err := e.Process(raw, opts)
	if err != nil {
		return nil, err
	}
	if err := WriteLines(path, result.Lines); err != nil {
		e.logger.Error("Failed to write transcript file",
			logger.String("path", path),
			logger.Error(err))
		return result, err
	}
	e.logger.Info("Wrote transcript file",
		logger.String("path", path),
		logger.Int("lines", len(result.Lines)))
	return result, nil
}
