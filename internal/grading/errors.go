package grading

import "errors"

var (
	// ErrMissingCredential means the handwriting grader has no API key.
	// It is surfaced through Result.Fault, not returned.
	ErrMissingCredential = errors.New("handwriting grader credential missing")

	// ErrTranscriptionEmpty means a spoken answer produced no text. The
	// learner should try again.
	ErrTranscriptionEmpty = errors.New("no speech captured")

	// ErrNoDrawingSubmitted means a handwriting round got no image.
	ErrNoDrawingSubmitted = errors.New("no drawing submitted")

	// ErrNoChoice means a multiple-choice round got no option.
	ErrNoChoice = errors.New("no option selected")
)
