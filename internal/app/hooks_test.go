package app

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/ayusman/handshot/internal/game"
	"github.com/ayusman/handshot/internal/hooks"
)

type eventLog struct {
	mu     sync.Mutex
	events []hooks.Event
}

func (l *eventLog) Notify(ev hooks.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) kinds() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Kind
	}
	return out
}

func TestLifecycleEvent(t *testing.T) {
	tests := []struct {
		from, to game.State
		want     string
		ok       bool
	}{
		{game.StateStartMenu, game.StatePlaying, hooks.EventRunStarted, true},
		{game.StateGameOver, game.StatePlaying, hooks.EventRunStarted, true},
		{game.StatePlaying, game.StatePaused, hooks.EventPaused, true},
		{game.StatePaused, game.StatePlaying, hooks.EventResumed, true},
		{game.StatePlaying, game.StateGameOver, hooks.EventGameOver, true},
		{game.StatePaused, game.StateTerminated, hooks.EventQuit, true},
		{game.StatePlaying, game.StateStartMenu, "", false},
	}
	for _, tt := range tests {
		got, ok := lifecycleEvent(tt.from, tt.to)
		if got != tt.want || ok != tt.ok {
			t.Errorf("lifecycleEvent(%v, %v) = %q, %v; want %q, %v", tt.from, tt.to, got, ok, tt.want, tt.ok)
		}
	}
}

func TestApp_Hooks(t *testing.T) {
	events := &eventLog{}
	r := newRig(t, func(c *Config) {
		c.Hooks = events
		c.Game.StartingLives = 1
		c.Game.EnemyJitter = 0
	})

	if err := r.app.SelectCamera(1); err != nil {
		t.Fatalf("SelectCamera() error = %v", err)
	}
	r.start(t)
	run := r.app.Session().ID().String()

	frames := []UIInput{{PauseHeld: true}, {}, {PauseHeld: true}, {}}
	for _, ui := range frames {
		if err := r.app.Frame(ui); err != nil {
			t.Fatalf("Frame() error = %v", err)
		}
	}

	r.app.Session().SpawnEnemy(375, 500)
	if err := r.app.Frame(UIInput{}); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if err := r.app.Frame(UIInput{Quit: true}); !errors.Is(err, ErrTerminated) {
		t.Fatalf("Frame(quit) error = %v, want %v", err, ErrTerminated)
	}

	want := []string{
		hooks.EventCameraSelected,
		hooks.EventRunStarted,
		hooks.EventPaused,
		hooks.EventResumed,
		hooks.EventGameOver,
		hooks.EventQuit,
	}
	if got := events.kinds(); !slices.Equal(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}

	over := events.events[4]
	if over.Run != run || over.Lives != 0 || over.Camera != 1 || over.At.IsZero() {
		t.Errorf("game over event = %+v", over)
	}
}
