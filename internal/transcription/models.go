package transcription

import "encoding/json"

// Format identifies which cloud provider produced a raw recognition result.
type Format int

const (
	FormatUnknown Format = iota
	FormatAWS
	FormatAzure
	FormatGCP
)

// String returns the provider name for logging and API responses
func (f Format) String() string {
	switch f {
	case FormatAWS:
		return "aws"
	case FormatAzure:
		return "azure"
	case FormatGCP:
		return "gcp"
	default:
		return "unknown"
	}
}

// Options control how a raw recognition result is rendered
type Options struct {
	// SpeakerAttribution enables per-speaker reconciliation for payloads
	// that carry diarization data
	SpeakerAttribution bool
	// IncludeTimestamps adds bracketed time prefixes to the rendered lines
	IncludeTimestamps bool
}

// NormalizedSegment is one speaker-attributed utterance with consistent
// punctuation, the unit the reconciler produces. Segments are always sorted
// by StartTime ascending.
type NormalizedSegment struct {
	Speaker   string  `json:"speaker"`
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// Result holds the rendered transcript for one recognition result.
// Segments is nil for provider shapes that carry no diarization data.
type Result struct {
	Format   Format              `json:"format"`
	Segments []NormalizedSegment `json:"segments,omitempty"`
	Lines    []string            `json:"lines"`
}

// AWS Transcribe result shape. Times are decimal strings in the wire format.

type awsPayload struct {
	Transcripts   []awsTranscript   `json:"transcripts"`
	SpeakerLabels *awsSpeakerLabels `json:"speaker_labels"`
	Items         []awsItem         `json:"items"`
}

type awsTranscript struct {
	Transcript string `json:"transcript"`
}

type awsSpeakerLabels struct {
	Speakers int                 `json:"speakers"`
	Segments []awsSpeakerSegment `json:"segments"`
}

type awsSpeakerSegment struct {
	SpeakerLabel string `json:"speaker_label"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

type awsItem struct {
	Type         string           `json:"type"`
	StartTime    string           `json:"start_time,omitempty"`
	EndTime      string           `json:"end_time,omitempty"`
	Alternatives []awsAlternative `json:"alternatives"`
}

type awsAlternative struct {
	Confidence string `json:"confidence"`
	Content    string `json:"content"`
}

// Azure batch transcription result shape. Offsets and durations are in
// 100-nanosecond ticks.

type azurePayload struct {
	CombinedRecognizedPhrases []azureCombinedPhrase   `json:"combinedRecognizedPhrases"`
	RecognizedPhrases         []azureRecognizedPhrase `json:"recognizedPhrases"`
}

type azureCombinedPhrase struct {
	Channel int    `json:"channel"`
	Display string `json:"display"`
}

type azureRecognizedPhrase struct {
	RecognitionStatus string       `json:"recognitionStatus"`
	Offset            float64      `json:"offset"`
	Duration          float64      `json:"duration"`
	NBest             []azureNBest `json:"nBest"`
}

type azureNBest struct {
	Confidence float64 `json:"confidence"`
	Display    string  `json:"display"`
}

// GCP Speech-to-Text result shape. Word times appear either as
// {seconds, nanos} objects or as strings with an "s" suffix, so they are
// kept raw and normalized by parseGCPTime.

type gcpPayload struct {
	Results []gcpResult `json:"results"`
}

type gcpResult struct {
	Alternatives []gcpAlternative `json:"alternatives"`
}

type gcpAlternative struct {
	Transcript string    `json:"transcript"`
	Confidence float64   `json:"confidence"`
	Words      []gcpWord `json:"words"`
}

type gcpWord struct {
	Word      string          `json:"word"`
	StartTime json.RawMessage `json:"startTime"`
	EndTime   json.RawMessage `json:"endTime"`
}
