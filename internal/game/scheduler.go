package game

import (
	"slices"
	"time"
)

// EventKind names a scheduled event. At most one event of each kind can be
// pending at a time.
type EventKind int

const (
	// EventBuffExpiry ends the power-bullet buff.
	EventBuffExpiry EventKind = iota
)

type timer struct {
	kind EventKind
	at   time.Duration
}

// Scheduler is an ordered queue of (deadline, event) pairs measured on the
// simulation clock. It is drained at a fixed point of every tick, so timed
// events are serialized with the rest of the simulation.
type Scheduler struct {
	timers []timer
}

// Arm schedules kind to fire at the given time, replacing any pending event
// of the same kind.
func (s *Scheduler) Arm(kind EventKind, at time.Duration) {
	s.Cancel(kind)
	i, _ := slices.BinarySearchFunc(s.timers, at, func(t timer, at time.Duration) int {
		if t.at <= at {
			return -1
		}
		return 1
	})
	s.timers = slices.Insert(s.timers, i, timer{kind: kind, at: at})
}

// Cancel drops the pending event of the given kind and reports whether there was one.
func (s *Scheduler) Cancel(kind EventKind) bool {
	n := len(s.timers)
	s.timers = slices.DeleteFunc(s.timers, func(t timer) bool { return t.kind == kind })
	return len(s.timers) != n
}

// Deadline returns when the pending event of the given kind fires.
func (s *Scheduler) Deadline(kind EventKind) (time.Duration, bool) {
	for _, t := range s.timers {
		if t.kind == kind {
			return t.at, true
		}
	}
	return 0, false
}

// Pending returns the number of scheduled events.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Due removes and returns, in deadline order, every event whose deadline is
// at or before now.
func (s *Scheduler) Due(now time.Duration) []EventKind {
	n := 0
	for n < len(s.timers) && s.timers[n].at <= now {
		n++
	}
	if n == 0 {
		return nil
	}
	due := make([]EventKind, n)
	for i := range n {
		due[i] = s.timers[i].kind
	}
	s.timers = slices.Delete(s.timers, 0, n)
	return due
}

// Clear drops every pending event.
func (s *Scheduler) Clear() {
	s.timers = s.timers[:0]
}
