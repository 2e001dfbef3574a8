// Package audio plays the game's sound cues and background music.
package audio

import (
	"sync"

	"github.com/ayusman/handshot/internal/game"
)

// Player consumes the sounds emitted by a session.
type Player interface {
	Play(s game.Sound)
	// SetPaused pauses or resumes the background music.
	SetPaused(paused bool)
	Close() error
}

// Nop discards everything. It is used with -muted and when no audio device
// is available.
type Nop struct{}

func (Nop) Play(game.Sound) {}
func (Nop) SetPaused(bool)  {}
func (Nop) Close() error    { return nil }

// Recorder remembers what it was asked to play. Tests use it in place of a
// real device.
type Recorder struct {
	mu     sync.Mutex
	played []game.Sound
	paused bool
	closed bool
}

func (r *Recorder) Play(s game.Sound) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, s)
}

func (r *Recorder) SetPaused(paused bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = paused
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Played returns a copy of every sound played so far.
func (r *Recorder) Played() []game.Sound {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]game.Sound, len(r.played))
	copy(out, r.played)
	return out
}

// Paused reports the last SetPaused value.
func (r *Recorder) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
