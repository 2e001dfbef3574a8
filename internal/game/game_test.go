package game

import (
	"math/rand/v2"
	"testing"
)

// newTestSession returns a Playing session with spawning disabled unless the
// caller's mutate function turns it back on.
func newTestSession(t *testing.T, mutate func(*Config)) *Session {
	t.Helper()

	cfg := DefaultConfig()
	cfg.EnemySpawnChance = 0
	cfg.BeamSpawnChance = 0
	if mutate != nil {
		mutate(&cfg)
	}

	s, err := NewSession(cfg, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	if !s.Apply(Action{Kind: ActionStart}) {
		t.Fatal("Apply(start) should leave the start menu")
	}
	return s
}

func countSounds(sounds []Sound, want Sound) int {
	n := 0
	for _, s := range sounds {
		if s == want {
			n++
		}
	}
	return n
}
