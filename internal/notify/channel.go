// Package notify delivers alarm alerts: an audible alert that needs a
// one-time activation, and a transient visual message that always works.
package notify

import (
	"errors"
	"fmt"
	"sync"
)

var ErrChannelUnavailable = errors.New("notify: audio channel not activated")

type Channel interface {
	PlayAlert() error
	ShowMessage(text string)
}

type Player interface {
	Play() error
}

// Primer is implemented by players that must be warmed up before the first
// real alert, e.g. by checking that the audio tool exists.
type Primer interface {
	Prime() error
}

type Display interface {
	Show(text string)
}

// Gate is a Channel whose audio half stays closed until Activate succeeds.
type Gate struct {
	mu      sync.RWMutex
	player  Player
	display Display
	active  bool
}

func NewGate(player Player, display Display) *Gate {
	return &Gate{player: player, display: display}
}

// Activate grants the audio capability. Calling it again is a no-op.
func (g *Gate) Activate() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active {
		return nil
	}
	if p, ok := g.player.(Primer); ok {
		if err := p.Prime(); err != nil {
			return fmt.Errorf("notify: activate audio: %w", err)
		}
	}
	g.active = true
	return nil
}

func (g *Gate) Active() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.active
}

func (g *Gate) PlayAlert() error {
	g.mu.RLock()
	active := g.active
	g.mu.RUnlock()
	if !active {
		return ErrChannelUnavailable
	}
	if g.player == nil {
		return fmt.Errorf("%w: no player configured", ErrChannelUnavailable)
	}
	return g.player.Play()
}

func (g *Gate) ShowMessage(text string) {
	if g.display != nil {
		g.display.Show(text)
	}
}
