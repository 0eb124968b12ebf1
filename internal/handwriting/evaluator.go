// Package handwriting grades handwritten answers with a vision-capable LLM.
package handwriting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/template"

	"github.com/abhisek/lingodrill/internal/grading"
	"github.com/abhisek/lingodrill/internal/llm"
	"go.uber.org/zap"
)

// Config holds configuration for the evaluator.
type Config struct {
	// Language is the language the learner is writing.
	Language string

	// FeedbackLanguage is the language the feedback is written in.
	FeedbackLanguage string

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Language:         "Thai",
		FeedbackLanguage: "English",
		MaxTokens:        256,
		Temperature:      0.2,
	}
}

// Evaluator implements grading.VisionGrader over an llm.Provider.
type Evaluator struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
}

var _ grading.VisionGrader = (*Evaluator)(nil)

// NewEvaluator creates an evaluator. Zero config fields take defaults.
func NewEvaluator(provider llm.Provider, cfg Config, log *zap.Logger) *Evaluator {
	def := DefaultConfig()
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
	if cfg.FeedbackLanguage == "" {
		cfg.FeedbackLanguage = def.FeedbackLanguage
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{provider: provider, cfg: cfg, log: log}
}

// evaluationOutput is the raw LLM response.
type evaluationOutput struct {
	IsCorrect bool    `json:"is_correct"`
	Score     float64 `json:"score"`
	Feedback  string  `json:"feedback"`
}

// Evaluate asks the model whether the drawing shows target. A provider
// failure is returned as an error; an unusable reply becomes an incorrect
// verdict with diagnostic feedback.
func (e *Evaluator) Evaluate(ctx context.Context, d grading.Drawing, target, meaning string) (grading.Evaluation, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeHandwriting)

	prompt, err := buildPrompt(e.cfg, target, meaning)
	if err != nil {
		return grading.Evaluation{}, fmt.Errorf("build handwriting prompt: %w", err)
	}

	resp, err := e.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: prompt,
			Images:  []llm.Image{{MIMEType: d.MIMEType, Data: d.Data}},
		}},
		Schema:      EvaluationSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		var truncated *llm.ErrMaxTokensExceeded
		if errors.As(err, &invalid) || errors.As(err, &truncated) {
			e.log.Warn("unusable handwriting verdict", zap.Error(err))
			return unreadable(err), nil
		}
		return grading.Evaluation{}, fmt.Errorf("handwriting evaluation failed: %w", err)
	}

	var raw evaluationOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		e.log.Warn("handwriting verdict is not JSON", zap.Error(err))
		return unreadable(err), nil
	}

	return grading.Evaluation{
		Correct:  raw.IsCorrect,
		Score:    raw.Score,
		Feedback: raw.Feedback,
	}, nil
}

func unreadable(err error) grading.Evaluation {
	return grading.Evaluation{
		Correct:  false,
		Score:    0,
		Feedback: fmt.Sprintf("Could not read the grader's verdict: %v", err),
	}
}

const systemPrompt = `You are a strict but encouraging language teacher grading handwriting on a blackboard.

Evaluate the image against these rules:
- It must be readable and structurally correct. Minor proportion mistakes are fine. Wrong characters, missing vowels or tone marks, and mirrored writing are not.
- Give a score from 0 to 100.
- Give brief, actionable feedback in one sentence.`

var promptTemplate = template.Must(template.New("handwriting").Parse(`The learner was asked to write the {{.Language}} text "{{.Target}}"{{if .Meaning}} (meaning: {{.Meaning}}){{end}}.
Grade the attached image. Write the feedback in {{.FeedbackLanguage}}.`))

func buildPrompt(cfg Config, target, meaning string) (string, error) {
	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, struct {
		Language         string
		FeedbackLanguage string
		Target           string
		Meaning          string
	}{cfg.Language, cfg.FeedbackLanguage, target, meaning})
	return buf.String(), err
}
