// Package game implements the shooter's simulation: entity stores, collision
// resolution, the power-bullet buff and the session state machine.
//
// Nothing in this package touches a window, a camera or a speaker. A caller
// feeds one Input per loop iteration into Session.Step and reads the result
// back through DrawList and DrainSounds.
package game

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned when a Config cannot describe a playable session.
var ErrInvalidConfig = errors.New("invalid configuration")

// Default tunables.
const (
	DefaultWidth            = 800
	DefaultHeight           = 600
	DefaultPlayerSpeed      = 10.0
	DefaultBaseCooldown     = 200 * time.Millisecond
	DefaultBuffCooldown     = 20 * time.Millisecond
	DefaultBuffDuration     = 5000 * time.Millisecond
	DefaultEnemySpawnChance = 0.02
	DefaultBeamSpawnChance  = 0.005
	DefaultShootThreshold   = 0.03
	DefaultStartingLives    = 3
)

// Config holds every tunable of a session. Sizes and speeds are in screen
// pixels and pixels per tick.
type Config struct {
	Width  int
	Height int

	PlayerSize  float64
	PlayerSpeed float64
	SpeedBonus  float64 // added to PlayerSpeed on every beam pickup

	BaseCooldown time.Duration
	BuffCooldown time.Duration
	BuffDuration time.Duration

	BulletWidth   float64
	BulletHeight  float64
	BulletSpeed   float64
	BulletOffsetX float64 // muzzle offset from the player's left edge

	EnemySize        float64
	EnemySpeed       float64
	EnemyJitter      int // horizontal drift is drawn from [-EnemyJitter, EnemyJitter]
	EnemySpawnChance float64

	BeamSize        float64
	BeamSpeed       float64
	BeamSpawnChance float64

	ShootThreshold float64
	StartingLives  int
	ScorePerKill   int
}

// DefaultConfig returns the reference tuning for an 800x600 screen.
func DefaultConfig() Config {
	return Config{
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		PlayerSize:       50,
		PlayerSpeed:      DefaultPlayerSpeed,
		SpeedBonus:       5,
		BaseCooldown:     DefaultBaseCooldown,
		BuffCooldown:     DefaultBuffCooldown,
		BuffDuration:     DefaultBuffDuration,
		BulletWidth:      10,
		BulletHeight:     20,
		BulletSpeed:      10,
		BulletOffsetX:    22,
		EnemySize:        50,
		EnemySpeed:       5,
		EnemyJitter:      2,
		EnemySpawnChance: DefaultEnemySpawnChance,
		BeamSize:         30,
		BeamSpeed:        5,
		BeamSpawnChance:  DefaultBeamSpawnChance,
		ShootThreshold:   DefaultShootThreshold,
		StartingLives:    DefaultStartingLives,
		ScorePerKill:     10,
	}
}

// Validate reports the first problem that makes the configuration unusable.
// All returned errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: screen must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.PlayerSize <= 0 || c.PlayerSize > float64(c.Width) || c.PlayerSize > float64(c.Height):
		return fmt.Errorf("%w: player size %.0f does not fit the screen", ErrInvalidConfig, c.PlayerSize)
	case c.EnemySize <= 0 || c.EnemySize > float64(c.Width):
		return fmt.Errorf("%w: enemy size %.0f does not fit the screen", ErrInvalidConfig, c.EnemySize)
	case c.BeamSize <= 0 || c.BeamSize > float64(c.Width):
		return fmt.Errorf("%w: beam size %.0f does not fit the screen", ErrInvalidConfig, c.BeamSize)
	case c.BulletWidth <= 0 || c.BulletHeight <= 0:
		return fmt.Errorf("%w: bullet size must be positive", ErrInvalidConfig)
	case c.PlayerSpeed < 0 || c.SpeedBonus < 0:
		return fmt.Errorf("%w: player speed must not be negative", ErrInvalidConfig)
	case c.BulletSpeed <= 0 || c.EnemySpeed <= 0 || c.BeamSpeed <= 0:
		return fmt.Errorf("%w: entity speeds must be positive", ErrInvalidConfig)
	case c.EnemyJitter < 0:
		return fmt.Errorf("%w: enemy jitter must not be negative, got %d", ErrInvalidConfig, c.EnemyJitter)
	case c.BaseCooldown <= 0 || c.BuffCooldown <= 0:
		return fmt.Errorf("%w: cooldowns must be positive", ErrInvalidConfig)
	case c.BuffDuration <= 0:
		return fmt.Errorf("%w: buff duration must be positive, got %s", ErrInvalidConfig, c.BuffDuration)
	case !isProbability(c.EnemySpawnChance) || !isProbability(c.BeamSpawnChance):
		return fmt.Errorf("%w: spawn chances must lie in [0,1]", ErrInvalidConfig)
	case c.ShootThreshold <= 0 || c.ShootThreshold >= 1:
		return fmt.Errorf("%w: shoot threshold %.3f outside (0,1)", ErrInvalidConfig, c.ShootThreshold)
	case c.StartingLives < 1:
		return fmt.Errorf("%w: starting lives must be at least 1, got %d", ErrInvalidConfig, c.StartingLives)
	case c.ScorePerKill < 0:
		return fmt.Errorf("%w: score per kill must not be negative", ErrInvalidConfig)
	}
	return nil
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
