package drill

import (
	"github.com/abhisek/lingodrill/internal/grading"
	"github.com/abhisek/lingodrill/internal/quiz"
	"github.com/abhisek/lingodrill/internal/session"
)

// startedMsg is sent once the session start event has been recorded.
type startedMsg struct{}

// roundReadyMsg carries the next presented round.
type roundReadyMsg struct {
	Round *quiz.Round
	Err   error
}

// gradedMsg carries the outcome of a submission. Result is nil when the
// response was unusable and the round is still presented.
type gradedMsg struct {
	Result *grading.Result
	Err    error
	Stats  session.Stats
}

// audioDoneMsg is sent when playback finishes or fails. Path is set when
// no player is configured and the audio was only written to disk.
type audioDoneMsg struct {
	Path string
	Err  error
}

// flushedMsg reports a save retry.
type flushedMsg struct {
	Err error
}

// reloadedMsg reports a corpus reload.
type reloadedMsg struct {
	Err error
}

// endedMsg carries the session summary.
type endedMsg struct {
	Summary session.Summary
}
