// Package grading decides whether a learner's response to a round is
// correct.
package grading

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/quiz"
	"github.com/abhisek/lingodrill/internal/speech"
	"go.uber.org/zap"
)

// Spoken answers pass at or above these similarity scores.
const (
	SentenceThreshold = 70.0
	DefaultThreshold  = 80.0
)

// Drawing is a handwritten answer image.
type Drawing struct {
	Data     []byte
	MIMEType string
}

// Evaluation is a vision grader's verdict on a drawing.
type Evaluation struct {
	Correct  bool
	Score    float64
	Feedback string
}

// VisionGrader judges handwriting.
type VisionGrader interface {
	Evaluate(ctx context.Context, d Drawing, target, meaning string) (Evaluation, error)
}

// Response is what the learner submitted. Which field is read depends on
// the round's modality family.
type Response struct {
	// ChoiceID is the identity of the picked option.
	ChoiceID string

	// Text is the typed answer for dictation, or an already known
	// transcript for spoken rounds.
	Text string

	// Clip is a recorded spoken answer.
	Clip *speech.Clip

	// Drawing is a handwritten answer.
	Drawing *Drawing
}

// Grader scores responses. Vision and Transcriber are optional.
type Grader struct {
	vision      VisionGrader
	transcriber speech.Transcriber
	log         *zap.Logger
}

// NewGrader creates a grader. A nil vision grader makes handwriting rounds
// fault with FaultMissingCredential. A nil transcriber makes spoken rounds
// use Response.Text as the transcript.
func NewGrader(vision VisionGrader, transcriber speech.Transcriber, log *zap.Logger) *Grader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Grader{vision: vision, transcriber: transcriber, log: log}
}

// Grade scores resp against the round. Errors are returned only when the
// response is unusable and the learner should answer again.
func (g *Grader) Grade(ctx context.Context, r *quiz.Round, resp Response) (*Result, error) {
	switch r.Modality.Family() {
	case quiz.FamilyChoice:
		return gradeChoice(r, resp)
	case quiz.FamilyDictation:
		return gradeDictation(r, resp), nil
	case quiz.FamilySpoken:
		return g.gradeSpoken(ctx, r, resp)
	case quiz.FamilyHandwriting:
		return g.gradeHandwriting(ctx, r, resp)
	}
	return nil, fmt.Errorf("grade %q: %w", r.Modality, quiz.ErrNoModality)
}

func gradeChoice(r *quiz.Round, resp Response) (*Result, error) {
	if resp.ChoiceID == "" {
		return nil, ErrNoChoice
	}
	return &Result{
		Correct: resp.ChoiceID == r.Item.ID(),
		Input:   resp.ChoiceID,
	}, nil
}

func gradeDictation(r *quiz.Round, resp Response) *Result {
	in := strings.TrimSpace(resp.Text)
	correct := in == strings.TrimSpace(r.Item.TargetText)
	s := 0.0
	if correct {
		s = 100
	}
	return &Result{Correct: correct, Score: score(s), Input: in}
}

// Threshold returns the passing similarity for a category.
func Threshold(c corpus.Category) float64 {
	if c == corpus.CategorySentence {
		return SentenceThreshold
	}
	return DefaultThreshold
}

func (g *Grader) gradeSpoken(ctx context.Context, r *quiz.Round, resp Response) (*Result, error) {
	transcript := strings.TrimSpace(resp.Text)
	if resp.Clip != nil && !resp.Clip.Empty() && g.transcriber != nil {
		t, err := g.transcriber.Transcribe(ctx, *resp.Clip)
		if err != nil {
			return nil, fmt.Errorf("transcribe answer: %w", err)
		}
		transcript = strings.TrimSpace(t)
	}
	if transcript == "" {
		return nil, ErrTranscriptionEmpty
	}

	s := Similarity(transcript, r.Item.SpeechText())
	return &Result{
		Correct: s >= Threshold(r.Item.Category),
		Score:   score(s),
		Input:   transcript,
	}, nil
}

func (g *Grader) gradeHandwriting(ctx context.Context, r *quiz.Round, resp Response) (*Result, error) {
	if resp.Drawing == nil || len(resp.Drawing.Data) == 0 {
		return nil, ErrNoDrawingSubmitted
	}
	if g.vision == nil {
		g.log.Warn("handwriting round cannot be graded",
			zap.String("fault", string(FaultMissingCredential)),
			zap.String("item", r.Item.ID()))
		return &Result{
			Correct:  false,
			Score:    score(0),
			Feedback: "Handwriting grading is unavailable: no vision API key is configured.",
			Fault:    FaultMissingCredential,
		}, nil
	}

	ev, err := g.vision.Evaluate(ctx, *resp.Drawing, r.Item.TargetText, r.Item.Meaning)
	if err != nil {
		g.log.Error("handwriting grader failed",
			zap.String("fault", string(FaultGrader)),
			zap.String("item", r.Item.ID()),
			zap.Error(err))
		return &Result{
			Correct:  false,
			Score:    score(0),
			Feedback: fmt.Sprintf("Handwriting grading failed: %v", err),
			Fault:    FaultGrader,
		}, nil
	}
	return &Result{
		Correct:  ev.Correct,
		Score:    score(clampScore(ev.Score)),
		Feedback: ev.Feedback,
	}, nil
}

func clampScore(s float64) float64 {
	switch {
	case s < 0:
		return 0
	case s > 100:
		return 100
	}
	return s
}
