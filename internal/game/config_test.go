package game

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("screen = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if cfg.BaseCooldown != 200*time.Millisecond {
		t.Errorf("BaseCooldown = %s, want 200ms", cfg.BaseCooldown)
	}
	if cfg.BuffCooldown != 20*time.Millisecond {
		t.Errorf("BuffCooldown = %s, want 20ms", cfg.BuffCooldown)
	}
	if cfg.BuffDuration != 5*time.Second {
		t.Errorf("BuffDuration = %s, want 5s", cfg.BuffDuration)
	}
	if cfg.StartingLives != 3 {
		t.Errorf("StartingLives = %d, want 3", cfg.StartingLives)
	}
}

func TestConfig_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative width", func(c *Config) { c.Width = -800 }},
		{"zero height", func(c *Config) { c.Height = 0 }},
		{"player larger than screen", func(c *Config) { c.Width = 40 }},
		{"enemy spawn chance above one", func(c *Config) { c.EnemySpawnChance = 1.5 }},
		{"negative beam chance", func(c *Config) { c.BeamSpawnChance = -0.1 }},
		{"zero cooldown", func(c *Config) { c.BaseCooldown = 0 }},
		{"zero buff duration", func(c *Config) { c.BuffDuration = 0 }},
		{"threshold of one", func(c *Config) { c.ShootThreshold = 1 }},
		{"no lives", func(c *Config) { c.StartingLives = 0 }},
		{"negative jitter", func(c *Config) { c.EnemyJitter = -1 }},
		{"negative speed", func(c *Config) { c.PlayerSpeed = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}

			if _, err := NewSession(cfg, nil); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewSession() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
