package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rafeekpro/speecher/internal/transcription"
	"github.com/rafeekpro/speecher/pkg/logger"
)

// speecher reads a raw recognition result from AWS Transcribe, Azure Speech,
// or GCP Speech-to-Text and prints the normalized transcript. With -o the
// transcript is also written to a file.
func main() {
	inputPath := flag.String("f", "", "Path to the raw recognition result JSON file (required)")
	outputPath := flag.String("o", "", "Path to write the transcript to (optional, stdout is always printed)")
	timestamps := flag.Bool("t", false, "Prefix transcript lines with timestamps")
	speakers := flag.Bool("s", true, "Attribute lines to speakers when the result carries diarization data")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn, or error")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: speecher -f <result.json> [-o <transcript.txt>] [-t] [-s]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	log, err := logger.New(logger.Config{Level: *logLevel, Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *inputPath, err)
		os.Exit(1)
	}

	engine := transcription.NewEngine(log)
	opts := transcription.Options{
		SpeakerAttribution: *speakers,
		IncludeTimestamps:  *timestamps,
	}

	var result *transcription.Result
	if *outputPath != "" {
		result, err = engine.ProcessToFile(json.RawMessage(raw), opts, *outputPath)
	} else {
		result, err = engine.Process(json.RawMessage(raw), opts)
	}

	switch {
	case errors.Is(err, transcription.ErrEmptyResult):
		fmt.Fprintln(os.Stderr, "Nothing was transcribed.")
		os.Exit(1)
	case errors.Is(err, transcription.ErrUnrecognizedFormat), errors.Is(err, transcription.ErrMalformedPayload):
		fmt.Fprintln(os.Stderr, "The recognition result could not be understood.")
		os.Exit(1)
	case err != nil:
		// A failed file write still leaves the rendered transcript to print.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if result == nil {
			os.Exit(1)
		}
	}

	for _, line := range result.Lines {
		fmt.Println(line)
	}
}
