// Package config reads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "LINGODRILL_"

// Backend selects where the corpus is stored.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendXLSX   Backend = "xlsx"
)

// Config holds application settings. LLM provider settings live in
// llm.Config and are read separately.
type Config struct {
	// DBPath is the SQLite database. Empty means the default data path.
	DBPath string

	Backend Backend

	// SheetPath is the xlsx workbook used by the xlsx backend.
	SheetPath string

	// SheetName is the sheet holding the corpus. Empty means the first.
	SheetName string

	// LogFile receives logs while the TUI owns the terminal. Empty means
	// a file next to the database.
	LogFile  string
	LogLevel string

	// CallTimeout bounds each blocking collaborator call.
	CallTimeout time.Duration

	// Player is the command used to play audio files, e.g. "mpv --no-video".
	// Empty disables playback.
	Player   string
	AudioDir string

	// Language is the ISO 639-1 code of the drilled language.
	Language string

	// LanguageName and FeedbackLanguage are used in grading prompts.
	LanguageName     string
	FeedbackLanguage string

	TTSVoice string

	// OpenAIKey enables speech synthesis and transcription.
	OpenAIKey     string
	OpenAIBaseURL string
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Backend:          BackendSQLite,
		LogLevel:         "info",
		CallTimeout:      45 * time.Second,
		Language:         "th",
		LanguageName:     "Thai",
		FeedbackLanguage: "English",
		TTSVoice:         "nova",
	}
}

// LoadDotEnv loads variables from the given files, or ".env" when none are
// given. Missing files are skipped and variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// FromEnv reads LINGODRILL_* variables over the defaults.
func FromEnv() (Config, error) {
	cfg := Default()

	cfg.DBPath = env("DB")
	if v := env("BACKEND"); v != "" {
		cfg.Backend = Backend(strings.ToLower(v))
	}
	cfg.SheetPath = env("SHEET")
	cfg.SheetName = env("SHEET_NAME")
	cfg.LogFile = env("LOG_FILE")
	if v := env("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := env("CALL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("%sCALL_TIMEOUT: %w", envPrefix, err)
		}
		cfg.CallTimeout = d
	}
	cfg.Player = env("PLAYER")
	cfg.AudioDir = env("AUDIO_DIR")
	if v := env("LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := env("LANGUAGE_NAME"); v != "" {
		cfg.LanguageName = v
	}
	if v := env("FEEDBACK_LANGUAGE"); v != "" {
		cfg.FeedbackLanguage = v
	}
	if v := env("TTS_VOICE"); v != "" {
		cfg.TTSVoice = v
	}
	cfg.OpenAIKey = firstNonEmpty(env("OPENAI_API_KEY"), os.Getenv("OPENAI_API_KEY"))
	cfg.OpenAIBaseURL = env("OPENAI_BASE_URL")

	return cfg, cfg.Validate()
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
	case BackendXLSX:
		if c.SheetPath == "" {
			return fmt.Errorf("backend %q needs %sSHEET", c.Backend, envPrefix)
		}
	default:
		return fmt.Errorf("unknown backend %q (want sqlite or xlsx)", c.Backend)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("call timeout must be positive, got %s", c.CallTimeout)
	}
	return nil
}

// SpeechEnabled reports whether speech synthesis and transcription are
// configured.
func (c Config) SpeechEnabled() bool {
	return c.OpenAIKey != ""
}

func env(name string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + name))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
