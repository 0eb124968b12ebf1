package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/lingodrill/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvents struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordedEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsEvent(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"is_correct":true}`),
		Usage:   Usage{InputTokens: 120, OutputTokens: 12},
	})
	rec := &recordedEvents{}
	p := WithLogging(mock, rec, nil)

	ctx := WithPurpose(context.Background(), PurposeHandwriting)
	_, err := p.Generate(ctx, Request{
		System: "grade",
		Messages: []Message{{
			Role:    RoleUser,
			Content: "Target: ก",
			Images:  []Image{{MIMEType: "image/png", Data: make([]byte, 2048)}},
		}},
	})
	require.NoError(t, err)
	require.Len(t, rec.events, 1)

	ev := rec.events[0]
	assert.Equal(t, PurposeHandwriting, ev.Purpose)
	assert.True(t, ev.Success)
	assert.Equal(t, 120, ev.InputTokens)
	assert.Equal(t, `{"is_correct":true}`, ev.ResponseBody)
	assert.Contains(t, ev.RequestBody, "<image image/png, 2048 bytes>")
	assert.False(t, strings.Contains(ev.RequestBody, strings.Repeat("\x00", 16)), "raw image bytes must not be logged")
}

func TestLoggingProvider_EventFailureDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	rec := &recordedEvents{err: errors.New("db locked")}
	p := WithLogging(mock, rec, nil)

	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("503")}})
	rec := &recordedEvents{}
	p := WithLogging(mock, rec, nil)

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)
	require.Len(t, rec.events, 1)
	assert.False(t, rec.events[0].Success)
	assert.Contains(t, rec.events[0].ErrorMessage, "503")
}

func TestLoggingProvider_NilRecorder(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	_, err := WithLogging(mock, nil, nil).Generate(context.Background(), Request{})
	assert.NoError(t, err)
}

func TestImage_DataURL(t *testing.T) {
	img := Image{MIMEType: "image/png", Data: []byte("png")}
	assert.Equal(t, "data:image/png;base64,cG5n", img.DataURL())
}
