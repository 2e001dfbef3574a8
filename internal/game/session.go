package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Session owns every piece of mutable game state. It is not safe for
// concurrent use; a single loop goroutine is expected to drive it.
type Session struct {
	cfg Config
	rng *rand.Rand

	id    uuid.UUID // changes on every Start and PlayAgain
	state State

	score int
	lives int

	player   Player
	bullets  []Bullet
	enemies  []Enemy
	beams    []Beam
	buff     Buff
	cooldown time.Duration
	timers   Scheduler

	now      time.Duration
	tick     uint64
	lastShot time.Duration
	hasShot  bool

	camera int
	pause  edge
	sounds []Sound
}

// Snapshot is a copy of the session's scalar state, safe to hand to other
// goroutines.
type Snapshot struct {
	ID       uuid.UUID
	State    State
	Score    int
	Lives    int
	Tick     uint64
	Buff     Buff
	Camera   int
	Bullets  int
	Enemies  int
	Beams    int
	Cooldown time.Duration
}

// NewSession validates cfg and returns a session waiting on the start menu.
// A nil rng is replaced by a time-seeded source.
func NewSession(cfg Config, rng *rand.Rand) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	s := &Session{
		cfg:   cfg,
		rng:   rng,
		id:    uuid.New(),
		state: StateStartMenu,
	}
	s.Reset()
	return s, nil
}

// Reset restores score, lives, entity stores, buff, cooldown and the player
// to their starting values. The state machine position is left unchanged.
func (s *Session) Reset() {
	s.score = 0
	s.lives = s.cfg.StartingLives
	s.player = Player{
		X:     float64(s.cfg.Width)/2 - s.cfg.PlayerSize/2,
		Y:     float64(s.cfg.Height) - s.cfg.PlayerSize - 10,
		Size:  s.cfg.PlayerSize,
		Speed: s.cfg.PlayerSpeed,
	}
	s.bullets = s.bullets[:0]
	s.enemies = s.enemies[:0]
	s.beams = s.beams[:0]
	s.buff = Buff{}
	s.cooldown = s.cfg.BaseCooldown
	s.timers.Clear()
	s.now = 0
	s.tick = 0
	s.lastShot = 0
	s.hasShot = false
	s.sounds = s.sounds[:0]
}

// Apply performs a discrete command and reports whether it changed anything.
// Commands that do not apply to the current state are ignored.
func (s *Session) Apply(a Action) bool {
	switch a.Kind {
	case ActionStart:
		if s.state != StateStartMenu {
			return false
		}
		s.Reset()
		s.id = uuid.New()
		s.state = StatePlaying
	case ActionTogglePause:
		return s.togglePause()
	case ActionPlayAgain:
		if s.state != StateGameOver {
			return false
		}
		s.Reset()
		s.id = uuid.New()
		s.state = StatePlaying
	case ActionQuit:
		if s.state == StateTerminated {
			return false
		}
		s.state = StateTerminated
	case ActionSelectCamera:
		if s.state != StateStartMenu || a.Camera < 0 || a.Camera == s.camera {
			return false
		}
		s.camera = a.Camera
	default:
		return false
	}
	return true
}

func (s *Session) togglePause() bool {
	switch s.state {
	case StatePlaying:
		s.state = StatePaused
	case StatePaused:
		s.state = StatePlaying
	default:
		return false
	}
	return true
}

func (s *Session) gameOver() {
	s.state = StateGameOver
	s.emit(SoundGameOver)
}

func (s *Session) emit(snd Sound) {
	s.sounds = append(s.sounds, snd)
}

// DrainSounds returns the cues emitted since the previous call.
func (s *Session) DrainSounds() []Sound {
	if len(s.sounds) == 0 {
		return nil
	}
	out := slices.Clone(s.sounds)
	s.sounds = s.sounds[:0]
	return out
}

// SetCamera records the camera index without going through the menu, e.g.
// when restoring a persisted setting.
func (s *Session) SetCamera(index int) error {
	if index < 0 {
		return fmt.Errorf("%w: camera index %d", ErrInvalidConfig, index)
	}
	s.camera = index
	return nil
}

// SpawnEnemy places an enemy at the given position.
func (s *Session) SpawnEnemy(x, y float64) Enemy {
	e := Enemy{ID: uuid.New(), X: x, Y: y, Size: s.cfg.EnemySize}
	s.enemies = append(s.enemies, e)
	return e
}

// SpawnBeam places a power-up pickup at the given position.
func (s *Session) SpawnBeam(x, y float64) Beam {
	b := Beam{ID: uuid.New(), X: x, Y: y, Size: s.cfg.BeamSize}
	s.beams = append(s.beams, b)
	return b
}

// SpawnBullet places a bullet at the given position, bypassing the cooldown.
func (s *Session) SpawnBullet(x, y float64) Bullet {
	b := Bullet{ID: uuid.New(), X: x, Y: y, W: s.cfg.BulletWidth, H: s.cfg.BulletHeight}
	s.bullets = append(s.bullets, b)
	return b
}

func (s *Session) Config() Config          { return s.cfg }
func (s *Session) ID() uuid.UUID           { return s.id }
func (s *Session) State() State            { return s.state }
func (s *Session) Score() int              { return s.score }
func (s *Session) Lives() int              { return s.lives }
func (s *Session) Player() Player          { return s.player }
func (s *Session) Buff() Buff              { return s.buff }
func (s *Session) Cooldown() time.Duration { return s.cooldown }
func (s *Session) Now() time.Duration      { return s.now }
func (s *Session) Tick() uint64            { return s.tick }
func (s *Session) Camera() int             { return s.camera }
func (s *Session) PendingTimers() int      { return s.timers.Pending() }
func (s *Session) Bullets() []Bullet       { return slices.Clone(s.bullets) }
func (s *Session) Enemies() []Enemy        { return slices.Clone(s.enemies) }
func (s *Session) Beams() []Beam           { return slices.Clone(s.beams) }

// Snapshot copies the scalar state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:       s.id,
		State:    s.state,
		Score:    s.score,
		Lives:    s.lives,
		Tick:     s.tick,
		Buff:     s.buff,
		Camera:   s.camera,
		Bullets:  len(s.bullets),
		Enemies:  len(s.enemies),
		Beams:    len(s.beams),
		Cooldown: s.cooldown,
	}
}
