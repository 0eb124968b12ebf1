package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIConfig configures the OpenAI speech endpoints.
type OpenAIConfig struct {
	APIKey   string
	BaseURL  string
	Voice    string // tts voice, default "nova"
	Language string // ISO-639-1 hint for transcription, e.g. "th"
}

// OpenAISpeech implements Synthesizer with tts-1 and Transcriber with
// whisper-1.
type OpenAISpeech struct {
	client   *openai.Client
	voice    openai.SpeechVoice
	language string
	log      *zap.Logger
}

// NewOpenAISpeech creates an OpenAI speech adapter.
func NewOpenAISpeech(cfg OpenAIConfig, log *zap.Logger) (*OpenAISpeech, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if log == nil {
		log = zap.NewNop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	voice := openai.VoiceNova
	if cfg.Voice != "" {
		voice = openai.SpeechVoice(cfg.Voice)
	}

	return &OpenAISpeech{
		client:   openai.NewClientWithConfig(config),
		voice:    voice,
		language: cfg.Language,
		log:      log,
	}, nil
}

func (s *OpenAISpeech) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          s.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		s.log.Warn("speech synthesis failed", zap.Error(err))
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read synthesized audio: %w", err)
	}
	return audio, nil
}

func (s *OpenAISpeech) Transcribe(ctx context.Context, clip Clip) (string, error) {
	if clip.Empty() {
		return "", nil
	}
	name := clip.Filename
	if name == "" {
		name = "answer.wav"
	}

	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: name,
		Reader:   bytes.NewReader(clip.Data),
		Language: s.language,
	})
	if err != nil {
		s.log.Warn("speech transcription failed", zap.Error(err))
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
