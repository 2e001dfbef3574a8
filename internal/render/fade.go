package render

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fadeDuration is how long the game over screen takes to come up, in seconds.
const fadeDuration = 1.8

// Fade darkens the screen and lifts the veil over fadeDuration.
type Fade struct {
	tween *gween.Tween
	alpha float32
	done  bool
}

// NewFade returns a fade that starts fully black.
func NewFade() *Fade {
	return &Fade{tween: gween.New(1, 0, fadeDuration, ease.Linear), alpha: 1}
}

// Advance moves the fade forward by dt seconds and returns the overlay alpha.
func (f *Fade) Advance(dt float32) float32 {
	if f.done {
		return 0
	}
	f.alpha, f.done = f.tween.Update(dt)
	if f.done {
		f.alpha = 0
	}
	return f.alpha
}

// Alpha is the current overlay opacity in [0,1].
func (f *Fade) Alpha() float32 { return f.alpha }

// Done reports whether the fade has finished.
func (f *Fade) Done() bool { return f.done }
