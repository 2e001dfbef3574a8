package game

import "github.com/google/uuid"

// Player is the ship steered by the tracked hand.
type Player struct {
	X, Y  float64
	Size  float64
	Speed float64
}

// Bounds returns the player's bounding box.
func (p Player) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.Size, H: p.Size}
}

// Bullet travels straight up until it leaves the screen or hits an enemy.
type Bullet struct {
	ID   uuid.UUID
	X, Y float64
	W, H float64
}

// Bounds returns the bullet's bounding box.
func (b Bullet) Bounds() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

func (b Bullet) ident() uuid.UUID { return b.ID }

// Enemy falls from above the screen with a small random horizontal drift.
type Enemy struct {
	ID   uuid.UUID
	X, Y float64
	Size float64
}

// Bounds returns the enemy's bounding box.
func (e Enemy) Bounds() Rect {
	return Rect{X: e.X, Y: e.Y, W: e.Size, H: e.Size}
}

func (e Enemy) ident() uuid.UUID { return e.ID }

// Beam is the falling power-up pickup.
type Beam struct {
	ID   uuid.UUID
	X, Y float64
	Size float64
}

// Bounds returns the beam's bounding box.
func (b Beam) Bounds() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Size, H: b.Size}
}

func (b Beam) ident() uuid.UUID { return b.ID }

type identified interface {
	ident() uuid.UUID
}

// marks collects the ids of entities removed during a scan. Removal is applied
// afterwards by sweep so no store is modified while it is being iterated.
type marks map[uuid.UUID]struct{}

func (m marks) mark(id uuid.UUID) { m[id] = struct{}{} }

func (m marks) has(id uuid.UUID) bool {
	_, ok := m[id]
	return ok
}

// sweep drops every marked entity, preserving the order of the survivors.
func sweep[E identified](items []E, dead marks) []E {
	if len(dead) == 0 {
		return items
	}
	kept := items[:0]
	for _, it := range items {
		if !dead.has(it.ident()) {
			kept = append(kept, it)
		}
	}
	return kept
}
