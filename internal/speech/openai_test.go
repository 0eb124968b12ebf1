package speech

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSpeech(t *testing.T, handler http.HandlerFunc) *OpenAISpeech {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	s, err := NewOpenAISpeech(OpenAIConfig{
		APIKey:   "test-key",
		BaseURL:  server.URL + "/v1",
		Language: "th",
	}, nil)
	require.NoError(t, err)
	return s
}

func TestNewOpenAISpeech_RequiresKey(t *testing.T) {
	_, err := NewOpenAISpeech(OpenAIConfig{}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestOpenAISpeech_Synthesize(t *testing.T) {
	var got map[string]any
	s := newTestSpeech(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3fake-mp3"))
	})

	audio, err := s.Synthesize(context.Background(), " สวัสดี ")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3fake-mp3"), audio)
	assert.Equal(t, "tts-1", got["model"])
	assert.Equal(t, "nova", got["voice"])
	assert.Equal(t, "สวัสดี", got["input"])
}

func TestOpenAISpeech_SynthesizeBlankSkipsCall(t *testing.T) {
	s := newTestSpeech(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected request")
	})
	audio, err := s.Synthesize(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, audio)
}

func TestOpenAISpeech_SynthesizeError(t *testing.T) {
	s := newTestSpeech(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	})
	audio, err := s.Synthesize(context.Background(), "น้ำ")
	assert.Error(t, err)
	assert.Empty(t, audio)
}

func TestOpenAISpeech_Transcribe(t *testing.T) {
	s := newTestSpeech(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "th", r.FormValue("language"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "answer.webm", hdr.Filename)
		assert.Equal(t, []byte("RIFF"), data)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":" ผมชอบกินข้าว "}`))
	})

	text, err := s.Transcribe(context.Background(), Clip{Data: []byte("RIFF"), Filename: "answer.webm"})
	require.NoError(t, err)
	assert.Equal(t, "ผมชอบกินข้าว", text)
}

func TestOpenAISpeech_TranscribeEmptyClip(t *testing.T) {
	s := newTestSpeech(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected request")
	})
	text, err := s.Transcribe(context.Background(), Clip{})
	require.NoError(t, err)
	assert.Empty(t, text)
}

type countingSynth struct {
	calls int
	audio []byte
	err   error
}

func (c *countingSynth) Synthesize(_ context.Context, _ string) ([]byte, error) {
	c.calls++
	return c.audio, c.err
}

func TestWithCache(t *testing.T) {
	inner := &countingSynth{audio: []byte("mp3")}
	c := WithCache(inner)

	for i := 0; i < 3; i++ {
		a, err := c.Synthesize(context.Background(), "ก")
		require.NoError(t, err)
		assert.Equal(t, []byte("mp3"), a)
	}
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 1, c.Len())
}

func TestWithCache_DoesNotCacheFailures(t *testing.T) {
	inner := &countingSynth{err: errors.New("offline")}
	c := WithCache(inner)

	_, err := c.Synthesize(context.Background(), "ก")
	assert.Error(t, err)
	_, err = c.Synthesize(context.Background(), "ก")
	assert.Error(t, err)
	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, c.Len())
}

func TestPlayer_Save(t *testing.T) {
	p := &Player{Dir: t.TempDir()}
	assert.False(t, p.Enabled())

	path, err := p.Save("น้ำ", []byte("mp3"))
	require.NoError(t, err)
	again, err := p.Save("น้ำ", []byte("other"))
	require.NoError(t, err)
	assert.Equal(t, path, again)

	err = p.Play(context.Background(), "น้ำ", []byte("mp3"))
	assert.Error(t, err)
}
