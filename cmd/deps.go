package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/lingodrill/internal/config"
	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/grading"
	"github.com/abhisek/lingodrill/internal/handwriting"
	"github.com/abhisek/lingodrill/internal/llm"
	"github.com/abhisek/lingodrill/internal/logging"
	"github.com/abhisek/lingodrill/internal/session"
	"github.com/abhisek/lingodrill/internal/sheet"
	"github.com/abhisek/lingodrill/internal/speech"
	"github.com/abhisek/lingodrill/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env holds what every command shares: settings, the logger, the SQLite
// store (events always live there) and the corpus.
type env struct {
	cfg    config.Config
	log    *zap.Logger
	db     *store.Store
	corpus *corpus.Store
}

// openEnv loads settings, builds the logger and opens the stores. When tui
// is set, logs go to a file because the terminal belongs to Bubble Tea.
func openEnv(cmd *cobra.Command, tui bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logOpts := logging.Options{Level: cfg.LogLevel}
	if tui {
		logOpts.File = cfg.LogFile
		if logOpts.File == "" {
			logOpts.File = logging.DefaultFile(cfg.DBPath)
		}
	}
	log, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.DBPath, log)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &env{
		cfg:    cfg,
		log:    log,
		db:     db,
		corpus: corpus.NewStore(storageFor(cfg, db, log), log),
	}, nil
}

func storageFor(cfg config.Config, db *store.Store, log *zap.Logger) corpus.Storage {
	if cfg.Backend == config.BackendXLSX {
		return sheet.Open(cfg.SheetPath, sheet.Options{Sheet: cfg.SheetName, Log: log})
	}
	return db.ItemRepo()
}

func (e *env) Close() {
	if err := e.db.Close(); err != nil {
		e.log.Warn("close store", zap.Error(err))
	}
	_ = e.log.Sync()
}

// callCtx bounds one blocking call with the configured timeout.
func (e *env) callCtx(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, e.cfg.CallTimeout)
}

// loadCorpus reads the corpus as of now.
func (e *env) loadCorpus(ctx context.Context) error {
	ctx, cancel := e.callCtx(ctx)
	defer cancel()
	if err := e.corpus.Load(ctx, time.Now()); err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	e.log.Info("corpus loaded",
		zap.String("backend", string(e.cfg.Backend)), zap.Int("items", e.corpus.Len()))
	return nil
}

// collaborators are the optional services behind audio and grading.
type collaborators struct {
	grader *grading.Grader
	synth  speech.Synthesizer
	player *speech.Player

	// warnings describe missing services in words a learner can act on.
	warnings []string
}

// buildCollaborators wires the vision grader and speech services that have
// credentials. Missing ones degrade to warnings; grading then reports a
// missing-credential fault instead of failing the round.
func (e *env) buildCollaborators(ctx context.Context) collaborators {
	var c collaborators

	var vision grading.VisionGrader
	provider, llmCfg, err := llm.NewProviderFromEnv(ctx, e.db.EventRepo(), e.log)
	switch {
	case errors.Is(err, llm.ErrNoCredentials):
		c.warnings = append(c.warnings, "Handwriting grading is off: no LLM API key is set.")
		e.log.Warn("vision grader not configured", zap.String("fault", string(grading.FaultMissingCredential)))
	case err != nil:
		c.warnings = append(c.warnings, "Handwriting grading is off: "+err.Error())
		e.log.Error("vision grader unavailable", zap.Error(err), zap.String("fault", string(grading.FaultGrader)))
	default:
		vision = handwriting.NewEvaluator(provider, handwriting.Config{
			Language:         e.cfg.LanguageName,
			FeedbackLanguage: e.cfg.FeedbackLanguage,
		}, e.log)
		e.log.Info("vision grader ready", zap.String("provider", llmCfg.Provider))
	}

	var transcriber speech.Transcriber
	sp, err := speech.NewOpenAISpeech(speech.OpenAIConfig{
		APIKey:   e.cfg.OpenAIKey,
		BaseURL:  e.cfg.OpenAIBaseURL,
		Voice:    e.cfg.TTSVoice,
		Language: e.cfg.Language,
	}, e.log)
	if err != nil {
		c.warnings = append(c.warnings, "Audio is off: set OPENAI_API_KEY to hear and transcribe.")
		e.log.Warn("speech not configured", zap.Error(err))
	} else {
		transcriber = sp
		c.synth = speech.WithCache(sp)
	}
	c.player = &speech.Player{Command: e.cfg.Player, Dir: e.cfg.AudioDir}

	c.grader = grading.NewGrader(vision, transcriber, e.log)
	return c
}

// newSession returns a factory for drill sessions over the loaded corpus.
func (e *env) newSession(grader *grading.Grader) func() *session.Session {
	return func() *session.Session {
		return session.New(session.Options{
			Store:  e.corpus,
			Grader: grader,
			Events: e.db.EventRepo(),
			Log:    e.log,
		})
	}
}
