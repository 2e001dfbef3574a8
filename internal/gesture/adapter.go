// Package gesture maps detected hand landmarks to player controls.
package gesture

import (
	"math"

	"github.com/ayusman/handshot/internal/detector"
	"github.com/ayusman/handshot/internal/game"
)

// Config describes the playfield the adapter maps onto.
type Config struct {
	Width, Height float64
	// PlayerSize is subtracted from the screen bounds when clamping.
	PlayerSize float64
	// ShootThreshold is the normalized horizontal gap between the index and
	// middle fingertips below which the hand reads as shooting.
	ShootThreshold float64
}

// ConfigFrom derives the adapter settings from the game tunables.
func ConfigFrom(cfg game.Config) Config {
	return Config{
		Width:          float64(cfg.Width),
		Height:         float64(cfg.Height),
		PlayerSize:     cfg.PlayerSize,
		ShootThreshold: cfg.ShootThreshold,
	}
}

// Adapter converts one frame's hands into a game.Control. When no usable
// hand is present the previous control is returned unchanged.
type Adapter struct {
	cfg  Config
	last game.Control
}

// NewAdapter creates an adapter that has not seen a hand yet.
func NewAdapter(cfg Config) *Adapter {
	return &Adapter{cfg: cfg}
}

// Update consumes the hands detected in one frame. Only the first hand is
// used; a hand with non-finite coordinates counts as no hand.
func (a *Adapter) Update(hands []detector.HandLandmarks) game.Control {
	if len(hands) == 0 || !hands[0].Valid() {
		return a.last
	}
	hand := &hands[0]

	wrist := hand.Points[detector.Wrist]
	x := a.cfg.Width - wrist.X*a.cfg.Width
	y := wrist.Y * a.cfg.Height

	gap := math.Abs(hand.Points[detector.IndexTip].X - hand.Points[detector.MiddleTip].X)

	a.last = game.Control{
		Tracking: true,
		X:        game.Clamp(x, 0, a.cfg.Width-a.cfg.PlayerSize),
		Y:        game.Clamp(y, 0, a.cfg.Height-a.cfg.PlayerSize),
		Shoot:    gap < a.cfg.ShootThreshold,
	}
	return a.last
}

// Last returns the most recent control without consuming a frame.
func (a *Adapter) Last() game.Control {
	return a.last
}

// Reset forgets the last hand.
func (a *Adapter) Reset() {
	a.last = game.Control{}
}
