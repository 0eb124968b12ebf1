// Package speech wraps text-to-speech and speech-to-text services.
package speech

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by constructors when no API key is set.
var ErrNotConfigured = errors.New("speech service not configured")

// Synthesizer turns text into playable audio.
type Synthesizer interface {
	// Synthesize returns encoded audio for text. Empty audio means playback
	// is unavailable; callers must not treat it as fatal.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Clip is a recorded audio answer.
type Clip struct {
	Data []byte

	// Filename carries the container format via its extension, e.g.
	// "answer.wav". Transcription services sniff the format from it.
	Filename string
}

// Empty reports whether the clip holds no audio.
func (c Clip) Empty() bool {
	return len(c.Data) == 0
}

// Transcriber turns a spoken answer into text.
type Transcriber interface {
	// Transcribe returns the recognized text. An empty string means no
	// speech was captured.
	Transcribe(ctx context.Context, clip Clip) (string, error)
}
