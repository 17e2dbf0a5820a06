package notify

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultToastDuration = 5 * time.Second

// Toast holds the latest message until its duration elapses.
type Toast struct {
	mu       sync.Mutex
	text     string
	until    time.Time
	duration time.Duration
	now      func() time.Time
}

func NewToast(duration time.Duration, now func() time.Time) *Toast {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	if now == nil {
		now = time.Now
	}
	return &Toast{duration: duration, now: now}
}

func (t *Toast) Show(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.text = text
	t.until = t.now().Add(t.duration)
}

// Current returns the visible message at now, if any.
func (t *Toast) Current(now time.Time) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.text == "" || !now.Before(t.until) {
		return "", false
	}
	return t.text, true
}

func (t *Toast) Duration() time.Duration {
	return t.duration
}

// DesktopDisplay raises an OS notification via notify-send or osascript.
type DesktopDisplay struct {
	Title string
	Log   *zap.Logger
}

func (d DesktopDisplay) Show(text string) {
	title := d.Title
	if title == "" {
		title = "remindd"
	}
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("notify-send", title, text).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(text), escapeAppleScript(title))
		err = exec.Command("osascript", "-e", script).Run()
	}
	if err != nil && d.Log != nil {
		d.Log.Warn("desktop notification failed", zap.Error(err))
	}
}

// WriterDisplay prints one line per message.
type WriterDisplay struct {
	W   io.Writer
	Now func() time.Time
}

func (d WriterDisplay) Show(text string) {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	fmt.Fprintf(d.W, "[%s] reminder: %s\n", now().Format("15:04:05"), text)
}

type MultiDisplay []Display

func (m MultiDisplay) Show(text string) {
	for _, d := range m {
		if d != nil {
			d.Show(text)
		}
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
