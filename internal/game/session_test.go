package game

import (
	"math/rand/v2"
	"testing"
	"time"
)

func TestNewSession_StartsOnMenu(t *testing.T) {
	s, err := NewSession(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	if s.State() != StateStartMenu {
		t.Errorf("State() = %v, want %v", s.State(), StateStartMenu)
	}
	if s.Score() != 0 || s.Lives() != 3 {
		t.Errorf("score/lives = %d/%d, want 0/3", s.Score(), s.Lives())
	}

	p := s.Player()
	if p.X != 375 || p.Y != 540 {
		t.Errorf("player at (%v, %v), want (375, 540)", p.X, p.Y)
	}

	// The menu does not simulate.
	s.Step(Input{Control: Control{Tracking: true, X: 10, Y: 10, Shoot: true}}, time.Second)
	if len(s.Bullets()) != 0 || s.Tick() != 0 {
		t.Error("Step() on the start menu should not advance the simulation")
	}
}

func TestSession_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		action  ActionKind
		want    State
		changed bool
	}{
		{"menu start", StateStartMenu, ActionStart, StatePlaying, true},
		{"menu play again ignored", StateStartMenu, ActionPlayAgain, StateStartMenu, false},
		{"menu quit", StateStartMenu, ActionQuit, StateTerminated, true},
		{"playing pause", StatePlaying, ActionTogglePause, StatePaused, true},
		{"playing start ignored", StatePlaying, ActionStart, StatePlaying, false},
		{"paused resume", StatePaused, ActionTogglePause, StatePlaying, true},
		{"paused quit", StatePaused, ActionQuit, StateTerminated, true},
		{"game over play again", StateGameOver, ActionPlayAgain, StatePlaying, true},
		{"game over pause ignored", StateGameOver, ActionTogglePause, StateGameOver, false},
		{"game over quit", StateGameOver, ActionQuit, StateTerminated, true},
		{"terminated stays", StateTerminated, ActionStart, StateTerminated, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSession(DefaultConfig(), nil)
			if err != nil {
				t.Fatalf("NewSession() error = %v", err)
			}
			s.state = tt.from

			if got := s.Apply(Action{Kind: tt.action}); got != tt.changed {
				t.Errorf("Apply(%v) = %v, want %v", tt.action, got, tt.changed)
			}
			if s.State() != tt.want {
				t.Errorf("State() = %v, want %v", s.State(), tt.want)
			}
		})
	}
}

func TestSession_PauseIsEdgeTriggered(t *testing.T) {
	s := newTestSession(t, nil)

	held := Input{PauseHeld: true}
	released := Input{}

	s.Step(held, 16*time.Millisecond)
	if s.State() != StatePaused {
		t.Fatalf("State() = %v after pressing pause, want paused", s.State())
	}

	// Holding the key must not oscillate.
	for i := 0; i < 10; i++ {
		s.Step(held, 16*time.Millisecond)
		if s.State() != StatePaused {
			t.Fatalf("State() = %v on held tick %d, want paused", s.State(), i)
		}
	}

	s.Step(released, 16*time.Millisecond)
	if s.State() != StatePaused {
		t.Fatalf("State() = %v after release, want paused", s.State())
	}

	s.Step(held, 16*time.Millisecond)
	if s.State() != StatePlaying {
		t.Fatalf("State() = %v after second press, want playing", s.State())
	}
}

func TestSession_PauseFreezesSimulation(t *testing.T) {
	s := newTestSession(t, nil)
	s.SpawnEnemy(100, 100)
	s.Apply(Action{Kind: ActionTogglePause})

	before := s.Enemies()[0].Y
	now := s.Now()
	for i := 0; i < 5; i++ {
		s.Step(Input{}, 16*time.Millisecond)
	}

	if got := s.Enemies()[0].Y; got != before {
		t.Errorf("enemy moved from %v to %v while paused", before, got)
	}
	if s.Now() != now {
		t.Errorf("Now() advanced while paused: %s -> %s", now, s.Now())
	}
}

func TestSession_ResetIsIdempotent(t *testing.T) {
	s := newTestSession(t, nil)

	// Dirty every field the reset is responsible for.
	s.SpawnEnemy(390, 525)
	s.Step(Input{Control: Control{Tracking: true, X: 375, Y: 540, Shoot: true}}, time.Second)
	s.SpawnEnemy(100, 100)
	s.SpawnBeam(200, 200)
	s.SpawnBullet(300, 300)
	s.ActivateBuff()
	s.lives = 1

	if s.Score() == 0 {
		t.Fatal("setup should have scored")
	}

	s.Reset()
	once := resetView(s)
	s.Reset()
	twice := resetView(s)

	if once != twice {
		t.Errorf("second Reset() changed state:\n once  %+v\n twice %+v", once, twice)
	}

	want := resetState{
		score:    0,
		lives:    3,
		cooldown: 200 * time.Millisecond,
		speed:    10,
		playerX:  375,
		playerY:  540,
	}
	if once != want {
		t.Errorf("Reset() state = %+v, want %+v", once, want)
	}
}

type resetState struct {
	score, lives            int
	bullets, enemies, beams int
	buff                    bool
	timers                  int
	cooldown                time.Duration
	speed                   float64
	playerX, playerY        float64
}

func resetView(s *Session) resetState {
	return resetState{
		score:    s.Score(),
		lives:    s.Lives(),
		bullets:  len(s.Bullets()),
		enemies:  len(s.Enemies()),
		beams:    len(s.Beams()),
		buff:     s.Buff().Active,
		timers:   s.PendingTimers(),
		cooldown: s.Cooldown(),
		speed:    s.Player().Speed,
		playerX:  s.Player().X,
		playerY:  s.Player().Y,
	}
}

func TestSession_PlayAgainResets(t *testing.T) {
	s := newTestSession(t, func(c *Config) {
		c.StartingLives = 1
		c.EnemyJitter = 0
	})
	first := s.ID()

	s.SpawnEnemy(375, 500)
	s.ActivateBuff()
	s.Step(Input{}, 16*time.Millisecond)

	if s.State() != StateGameOver {
		t.Fatalf("State() = %v, want game over", s.State())
	}

	if !s.Apply(Action{Kind: ActionPlayAgain}) {
		t.Fatal("Apply(play again) should restart")
	}
	if s.State() != StatePlaying {
		t.Errorf("State() = %v, want playing", s.State())
	}
	if s.Lives() != 1 || s.Score() != 0 {
		t.Errorf("lives/score = %d/%d, want 1/0", s.Lives(), s.Score())
	}
	if s.Buff().Active || s.Cooldown() != 200*time.Millisecond || s.PendingTimers() != 0 {
		t.Error("play again should clear the buff and its timer")
	}
	if s.ID() == first {
		t.Error("play again should start a new run id")
	}
}

func TestSession_SelectCamera(t *testing.T) {
	s, err := NewSession(DefaultConfig(), rand.New(rand.NewPCG(3, 4)))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	if !s.Apply(Action{Kind: ActionSelectCamera, Camera: 1}) {
		t.Fatal("selecting camera 1 on the menu should succeed")
	}
	if s.Camera() != 1 {
		t.Errorf("Camera() = %d, want 1", s.Camera())
	}
	if s.Apply(Action{Kind: ActionSelectCamera, Camera: 1}) {
		t.Error("re-selecting the current camera should report no change")
	}
	if s.Apply(Action{Kind: ActionSelectCamera, Camera: -1}) {
		t.Error("negative camera index should be ignored")
	}

	s.Apply(Action{Kind: ActionStart})
	if s.Apply(Action{Kind: ActionSelectCamera, Camera: 0}) {
		t.Error("camera selection is only available on the menu")
	}
	if s.Camera() != 1 {
		t.Errorf("Camera() = %d, want 1", s.Camera())
	}
}

func TestSession_DrainSounds(t *testing.T) {
	s := newTestSession(t, nil)
	s.Step(Input{Control: Control{Tracking: true, X: 100, Y: 100, Shoot: true}}, 0)

	sounds := s.DrainSounds()
	if len(sounds) != 1 || sounds[0] != SoundShoot {
		t.Errorf("DrainSounds() = %v, want [shoot]", sounds)
	}
	if again := s.DrainSounds(); again != nil {
		t.Errorf("second DrainSounds() = %v, want nil", again)
	}
}
