package speech

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Player plays synthesized audio through an external command such as
// "mpv --really-quiet" or "afplay". The audio is written to Dir first.
type Player struct {
	Command string
	Dir     string
}

// Enabled reports whether a player command is configured.
func (p *Player) Enabled() bool {
	return p != nil && strings.TrimSpace(p.Command) != ""
}

// Save writes audio to Dir under a name derived from text and returns the
// path. Existing files are reused.
func (p *Player) Save(text string, audio []byte) (string, error) {
	dir := p.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}
	sum := sha1.Sum([]byte(text))
	path := filepath.Join(dir, hex.EncodeToString(sum[:8])+".mp3")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	return path, nil
}

// Play saves audio and runs the player on it, blocking until playback ends.
func (p *Player) Play(ctx context.Context, text string, audio []byte) error {
	if !p.Enabled() {
		return fmt.Errorf("no audio player configured")
	}
	if len(audio) == 0 {
		return fmt.Errorf("no audio to play")
	}
	path, err := p.Save(text, audio)
	if err != nil {
		return err
	}
	args := strings.Fields(p.Command)
	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("play audio: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
