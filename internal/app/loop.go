package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayusman/handshot/internal/detector"
	"github.com/ayusman/handshot/internal/game"
	"github.com/ayusman/handshot/internal/hooks"
)

// UIInput is what the window (or nothing, when headless) reports for one frame.
type UIInput struct {
	// PauseHeld is the current level of the pause key.
	PauseHeld bool
	// Quit is set by the exit key or the window close button.
	Quit bool
	// Click is set when the primary mouse button went down this frame.
	Click          bool
	ClickX, ClickY float64
}

// Frame runs one loop iteration:
//  1. apply queued commands, then quit and click input
//  2. poll the hand source if a game is running
//  3. step the session
//  4. play emitted sounds and publish the new view
//
// It returns ErrTerminated after a quit and an error wrapping
// ErrInputUnavailable when the camera or detector fails mid-game.
func (a *App) Frame(ui UIInput) error {
	if a.session.State() == game.StateTerminated {
		return ErrTerminated
	}

	for drained := false; !drained; {
		select {
		case action := <-a.actions:
			a.apply(action)
		default:
			drained = true
		}
	}
	if ui.Quit {
		a.apply(game.Action{Kind: game.ActionQuit})
	}
	if ui.Click {
		if action, ok := game.ButtonAt(a.session.Config(), a.session.State(), ui.ClickX, ui.ClickY); ok {
			a.apply(action)
		}
	}

	var inputErr error
	control := a.adapter.Last()
	if a.session.State() == game.StatePlaying {
		hands, err := a.observe()
		if err != nil {
			inputErr = fmt.Errorf("%w: %w", ErrInputUnavailable, err)
			a.session.Apply(game.Action{Kind: game.ActionQuit})
		} else {
			if len(hands) == 0 {
				a.log.Debugw("no hand detected", "tick", a.session.Tick())
			}
			control = a.adapter.Update(hands)
		}
	}

	if inputErr == nil {
		a.session.Step(game.Input{Control: control, PauseHeld: ui.PauseHeld}, a.dt)
	}

	for _, snd := range a.session.DrainSounds() {
		a.audio.Play(snd)
	}
	a.transition()
	a.publish()

	if inputErr != nil {
		a.log.Errorw("input failed, stopping", "error", inputErr)
		return inputErr
	}
	if a.session.State() == game.StateTerminated {
		return ErrTerminated
	}
	return nil
}

func (a *App) observe() ([]detector.HandLandmarks, error) {
	a.mu.Lock()
	src := a.src
	a.mu.Unlock()
	if src == nil {
		return nil, errors.New("no input source")
	}
	return src.Observe()
}

func (a *App) apply(action game.Action) {
	switch action.Kind {
	case game.ActionSelectCamera:
		if err := a.SelectCamera(action.Camera); err != nil {
			a.log.Warnw("camera switch failed, keeping current camera", "device", action.Camera, "error", err)
		}
		return
	case game.ActionStart, game.ActionPlayAgain:
		if a.session.Apply(action) {
			a.adapter.Reset()
			a.log.Infow("run started", "run", a.session.ID())
		}
		return
	}
	a.session.Apply(action)
}

// transition reacts to state changes since the previous frame.
func (a *App) transition() {
	state := a.session.State()
	if state == a.prev {
		return
	}
	a.log.Infow("state changed", "from", a.prev, "to", state, "score", a.session.Score())

	a.audio.SetPaused(state == game.StatePaused || state == game.StateTerminated)
	if kind, ok := lifecycleEvent(a.prev, state); ok {
		a.notify(kind)
	}
	a.prev = state
}

// lifecycleEvent names the hook event for a state change, if any.
func lifecycleEvent(from, to game.State) (string, bool) {
	switch {
	case to == game.StatePlaying && from == game.StatePaused:
		return hooks.EventResumed, true
	case to == game.StatePlaying:
		return hooks.EventRunStarted, true
	case to == game.StatePaused:
		return hooks.EventPaused, true
	case to == game.StateGameOver:
		return hooks.EventGameOver, true
	case to == game.StateTerminated:
		return hooks.EventQuit, true
	}
	return "", false
}

// Run drives Frame from a ticker until the user quits, the input fails or
// ctx is cancelled. It is the loop used without a window.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.dt)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.Enqueue(game.Action{Kind: game.ActionQuit})
			if err := a.Frame(UIInput{}); err != nil && !errors.Is(err, ErrTerminated) {
				a.log.Warnw("final frame after cancel", "error", err)
			}
			return nil
		case <-ticker.C:
			if err := a.Frame(UIInput{}); err != nil {
				if errors.Is(err, ErrTerminated) {
					return nil
				}
				return err
			}
		}
	}
}
