package game

import (
	"math"
	"time"
)

// Step advances the session by one tick of length dt.
//
// The pause edge is evaluated in every state. The simulation itself only
// runs while Playing, in this order:
//  1. move the player to the gesture target
//  2. shoot if requested and off cooldown
//  3. advance bullets, prune them, resolve bullet/enemy hits
//  4. maybe spawn an enemy
//  5. advance enemies, resolve enemy/player hits, prune them
//  6. maybe spawn a beam
//  7. advance beams, resolve pickups, prune them
//  8. fire due timers
//
// Reaching zero lives in step 5 ends the tick early.
func (s *Session) Step(in Input, dt time.Duration) {
	if s.pause.rising(in.PauseHeld) {
		s.togglePause()
	}
	if s.state != StatePlaying {
		return
	}
	if dt > 0 {
		s.now += dt
	}
	s.tick++

	s.steer(in.Control)
	if in.Control.Shoot {
		s.shoot()
	}
	s.updateBullets()

	if s.roll(s.cfg.EnemySpawnChance) {
		s.SpawnEnemy(float64(s.rng.IntN(s.spawnRange(s.cfg.EnemySize))), -s.cfg.EnemySize)
	}
	s.updateEnemies()
	if s.state != StatePlaying {
		return
	}

	if s.roll(s.cfg.BeamSpawnChance) {
		s.SpawnBeam(float64(s.rng.IntN(s.spawnRange(s.cfg.BeamSize))), -s.cfg.BeamSize)
	}
	s.updateBeams()

	s.fireTimers()
}

func (s *Session) steer(c Control) {
	if !c.Tracking || math.IsNaN(c.X) || math.IsNaN(c.Y) || math.IsInf(c.X, 0) || math.IsInf(c.Y, 0) {
		return
	}
	s.player.X = Clamp(c.X, 0, float64(s.cfg.Width)-s.player.Size)
	s.player.Y = Clamp(c.Y, 0, float64(s.cfg.Height)-s.player.Size)
}

func (s *Session) shoot() {
	if s.hasShot && s.now-s.lastShot < s.cooldown {
		return
	}
	s.SpawnBullet(s.player.X+s.cfg.BulletOffsetX, s.player.Y)
	s.lastShot = s.now
	s.hasShot = true
	s.emit(SoundShoot)
}

func (s *Session) updateBullets() {
	dead := marks{}
	for i := range s.bullets {
		b := &s.bullets[i]
		b.Y -= s.cfg.BulletSpeed
		if b.Y < 0 {
			dead.mark(b.ID)
			continue
		}
		box := b.Bounds()
		for j := range s.enemies {
			e := &s.enemies[j]
			if dead.has(e.ID) || !box.Intersects(e.Bounds()) {
				continue
			}
			dead.mark(b.ID)
			dead.mark(e.ID)
			s.score += s.cfg.ScorePerKill
			s.emit(SoundExplosion)
			break
		}
	}
	s.bullets = sweep(s.bullets, dead)
	s.enemies = sweep(s.enemies, dead)
}

func (s *Session) updateEnemies() {
	dead := marks{}
	player := s.player.Bounds()
	bottom := float64(s.cfg.Height)
	for i := range s.enemies {
		e := &s.enemies[i]
		e.Y += s.cfg.EnemySpeed
		e.X += s.jitter()
		// Overlap wins over leaving the screen.
		if e.Bounds().Intersects(player) {
			dead.mark(e.ID)
			s.lives--
			s.emit(SoundExplosion)
			if s.lives <= 0 {
				s.lives = 0
				s.gameOver()
				break
			}
			continue
		}
		if e.Y > bottom {
			dead.mark(e.ID)
		}
	}
	s.enemies = sweep(s.enemies, dead)
}

func (s *Session) updateBeams() {
	dead := marks{}
	player := s.player.Bounds()
	bottom := float64(s.cfg.Height)
	pickups := 0
	for i := range s.beams {
		b := &s.beams[i]
		b.Y += s.cfg.BeamSpeed
		if b.Bounds().Intersects(player) {
			dead.mark(b.ID)
			pickups++
			continue
		}
		if b.Y > bottom {
			dead.mark(b.ID)
		}
	}
	s.beams = sweep(s.beams, dead)
	for range pickups {
		s.ActivateBuff()
		s.emit(SoundBeam)
	}
}

// roll reports true with probability p.
func (s *Session) roll(p float64) bool {
	return p > 0 && s.rng.Float64() < p
}

// spawnRange returns the number of integer x positions at which an entity of
// the given size fits fully on screen.
func (s *Session) spawnRange(size float64) int {
	n := s.cfg.Width - int(math.Ceil(size)) + 1
	if n < 1 {
		return 1
	}
	return n
}

func (s *Session) jitter() float64 {
	if s.cfg.EnemyJitter == 0 {
		return 0
	}
	return float64(s.rng.IntN(2*s.cfg.EnemyJitter+1) - s.cfg.EnemyJitter)
}
