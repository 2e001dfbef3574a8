package game

import "time"

// Buff is the power-bullet state.
type Buff struct {
	Active    bool
	ExpiresAt time.Duration // simulation time; zero when inactive
}

// ActivateBuff enters (or re-enters) the power-bullet state. Every call adds
// the speed bonus, so repeated pickups stack speed. The expiry timer is
// re-armed, never duplicated.
func (s *Session) ActivateBuff() {
	s.player.Speed += s.cfg.SpeedBonus
	s.cooldown = s.cfg.BuffCooldown
	s.buff.Active = true
	s.buff.ExpiresAt = s.now + s.cfg.BuffDuration
	s.timers.Arm(EventBuffExpiry, s.buff.ExpiresAt)
}

// expireBuff leaves the power-bullet state. Only the cooldown is restored;
// accumulated speed is kept.
func (s *Session) expireBuff() {
	s.buff = Buff{}
	s.cooldown = s.cfg.BaseCooldown
}

func (s *Session) fireTimers() {
	for _, kind := range s.timers.Due(s.now) {
		switch kind {
		case EventBuffExpiry:
			s.expireBuff()
		}
	}
}
