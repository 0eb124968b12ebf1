package session

import "errors"

// Phase is where the session is in its select/present/grade cycle.
type Phase int

const (
	PhaseSelecting  Phase = iota // waiting for Next
	PhasePresenting              // a round is shown, waiting for Submit
	PhaseGraded                  // the result is shown, waiting for Advance
)

func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "selecting"
	case PhasePresenting:
		return "presenting"
	case PhaseGraded:
		return "graded"
	default:
		return "unknown"
	}
}

var (
	// ErrRoundInFlight is returned by Next while a round is presented or
	// its result has not been acknowledged.
	ErrRoundInFlight = errors.New("a round is already in progress")

	// ErrNotPresenting is returned by Submit when no round awaits an answer.
	ErrNotPresenting = errors.New("no round is awaiting an answer")

	// ErrNotGraded is returned by Advance before the round is graded.
	ErrNotGraded = errors.New("round has not been graded")
)
