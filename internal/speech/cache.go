package speech

import (
	"context"
	"sync"
)

// CachedSynthesizer is a decorator that memoizes synthesized audio per
// text for the lifetime of the process. Failures are not cached.
type CachedSynthesizer struct {
	inner Synthesizer

	mu    sync.Mutex
	audio map[string][]byte
}

// WithCache wraps a Synthesizer with an in-memory cache.
func WithCache(s Synthesizer) *CachedSynthesizer {
	return &CachedSynthesizer{inner: s, audio: make(map[string][]byte)}
}

func (c *CachedSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	c.mu.Lock()
	if a, ok := c.audio[text]; ok {
		c.mu.Unlock()
		return a, nil
	}
	c.mu.Unlock()

	a, err := c.inner.Synthesize(ctx, text)
	if err != nil || len(a) == 0 {
		return a, err
	}

	c.mu.Lock()
	c.audio[text] = a
	c.mu.Unlock()
	return a, nil
}

// Len returns the number of cached entries.
func (c *CachedSynthesizer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.audio)
}
