package notify

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// BellPlayer rings the terminal bell.
type BellPlayer struct {
	W io.Writer
}

func (p BellPlayer) Play() error {
	if p.W == nil {
		return fmt.Errorf("notify: bell has no output")
	}
	_, err := io.WriteString(p.W, "\a")
	return err
}

// ExecPlayer plays SoundFile with the platform audio tool and falls back to
// Fallback when no sound file is configured. Play only starts the tool; the
// process is reaped in the background and exit failures go to Log.
type ExecPlayer struct {
	SoundFile string
	Fallback  Player
	Log       *zap.Logger
}

// commandFor resolves the audio tool for the running platform.
var commandFor = func(file string) (string, []string, error) {
	return audioCommand(runtime.GOOS, file)
}

func (p ExecPlayer) Play() error {
	if strings.TrimSpace(p.SoundFile) == "" {
		if p.Fallback == nil {
			return fmt.Errorf("notify: no sound file and no fallback player")
		}
		return p.Fallback.Play()
	}
	name, args, err := commandFor(p.SoundFile)
	if err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("notify: start %s: %w", name, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil && p.Log != nil {
			p.Log.Warn("audio tool exited with error", zap.String("tool", name), zap.Error(err))
		}
	}()
	return nil
}

func (p ExecPlayer) Prime() error {
	if strings.TrimSpace(p.SoundFile) == "" {
		return nil
	}
	name, _, err := commandFor(p.SoundFile)
	if err != nil {
		return err
	}
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("notify: audio tool %s: %w", name, err)
	}
	return nil
}

func audioCommand(goos string, file string) (string, []string, error) {
	switch goos {
	case "linux":
		return "paplay", []string{file}, nil
	case "darwin":
		return "afplay", []string{file}, nil
	default:
		return "", nil, fmt.Errorf("notify: audio playback unsupported on %s", goos)
	}
}
