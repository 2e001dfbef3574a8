// Package app runs the game loop: it polls the hand source, applies menu,
// keyboard and tray commands, steps the session and forwards sound cues.
package app

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ayusman/handshot/internal/audio"
	"github.com/ayusman/handshot/internal/capture"
	"github.com/ayusman/handshot/internal/detector"
	"github.com/ayusman/handshot/internal/game"
	"github.com/ayusman/handshot/internal/gesture"
	"github.com/ayusman/handshot/internal/hooks"
	"github.com/ayusman/handshot/internal/store"
)

var (
	// ErrInputUnavailable wraps camera and detector failures. The loop stops
	// on it; there is no retry.
	ErrInputUnavailable = errors.New("hand input unavailable")
	// ErrTerminated is returned once the user quits.
	ErrTerminated = errors.New("terminated")
)

// DefaultTPS is the loop rate.
const DefaultTPS = 60

// actionQueueSize bounds commands queued between two frames.
const actionQueueSize = 16

// Settings persists small values across runs.
type Settings interface {
	SetInt(key string, value int) error
}

// Notifier receives lifecycle events. It must not block.
type Notifier interface {
	Notify(ev hooks.Event)
}

// Config holds configuration options for the application.
type Config struct {
	Game game.Config
	TPS  int
	Rand *rand.Rand

	// Detector turns frames into hands. Required.
	Detector detector.Detector
	// OpenCamera opens a capture device. Nil runs without a camera, which
	// only makes sense with a detector that ignores frames (replay).
	OpenCamera func(device int) (capture.Camera, error)
	Camera     int
	// Preview shows the camera feed. It is only used in synchronous mode.
	Preview *capture.Preview
	// Async moves capture and detection to a producer goroutine. It needs
	// a camera to pace the producer and is ignored without one.
	Async bool

	Audio    audio.Player
	Settings Settings
	Hooks    Notifier
	Logger   *zap.SugaredLogger
}

// View is what the loop publishes after each frame for other goroutines.
type View struct {
	Snapshot game.Snapshot
	Draw     []game.DrawCmd
}

// App owns the session and every collaborator it talks to.
type App struct {
	config  Config
	log     *zap.SugaredLogger
	session *game.Session
	adapter *gesture.Adapter
	audio   audio.Player
	dt      time.Duration

	mu     sync.Mutex // guards cam and src against Close from another goroutine
	cam    capture.Camera
	src    source
	closed bool

	actions chan game.Action
	view    atomic.Pointer[View]
	prev    game.State
}

// New creates the session and opens the initial camera.
func New(config Config) (*App, error) {
	if config.Detector == nil {
		return nil, fmt.Errorf("%w: no detector", ErrInputUnavailable)
	}
	if config.TPS <= 0 {
		config.TPS = DefaultTPS
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	player := config.Audio
	if player == nil {
		player = audio.Nop{}
	}

	session, err := game.NewSession(config.Game, config.Rand)
	if err != nil {
		return nil, err
	}
	if err := session.SetCamera(config.Camera); err != nil {
		return nil, err
	}

	a := &App{
		config:  config,
		log:     log,
		session: session,
		adapter: gesture.NewAdapter(gesture.ConfigFrom(config.Game)),
		audio:   player,
		dt:      time.Second / time.Duration(config.TPS),
		actions: make(chan game.Action, actionQueueSize),
		prev:    session.State(),
	}

	if config.Async && config.OpenCamera == nil {
		log.Warnw("async capture needs a camera, detecting on the game loop")
	}
	if err := a.openSource(config.Camera); err != nil {
		return nil, err
	}
	a.publish()
	player.SetPaused(false)

	log.Infow("game ready", "camera", config.Camera, "tps", config.TPS, "async", config.Async)
	return a, nil
}

// openSource opens device and swaps it in for the current camera. On
// failure the current camera is left untouched.
func (a *App) openSource(device int) error {
	var cam capture.Camera
	if a.config.OpenCamera != nil {
		c, err := a.config.OpenCamera(device)
		if err != nil {
			return fmt.Errorf("%w: camera %d: %w", ErrInputUnavailable, device, err)
		}
		if err := c.Open(); err != nil {
			return fmt.Errorf("%w: camera %d: %w", ErrInputUnavailable, device, err)
		}
		cam = c
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.releaseLocked()

	var src source = &syncSource{cam: cam, det: a.config.Detector, preview: a.config.Preview}
	if a.config.Async && cam != nil {
		src = newAsyncSource(&syncSource{cam: cam, det: a.config.Detector}, a.log)
	}
	a.cam = cam
	a.src = src
	return nil
}

func (a *App) releaseLocked() {
	if a.src != nil {
		a.src.Close()
		a.src = nil
	}
	if a.cam != nil {
		if err := a.cam.Close(); err != nil {
			a.log.Warnw("closing camera", "device", a.cam.Device(), "error", err)
		}
		a.cam = nil
	}
}

// Enqueue schedules a command for the next frame. It is safe to call from
// any goroutine; commands beyond the queue capacity are dropped.
func (a *App) Enqueue(action game.Action) {
	select {
	case a.actions <- action:
	default:
		a.log.Warnw("action queue full, dropping", "action", action.Kind)
	}
}

// SelectCamera switches to another capture device and persists the choice.
// It only has an effect on the start menu.
func (a *App) SelectCamera(device int) error {
	if a.session.State() != game.StateStartMenu || device == a.session.Camera() {
		return nil
	}
	if err := a.openSource(device); err != nil {
		return err
	}
	a.session.Apply(game.Action{Kind: game.ActionSelectCamera, Camera: device})
	a.log.Infow("camera selected", "device", device)
	a.notify(hooks.EventCameraSelected)

	if a.config.Settings != nil {
		if err := a.config.Settings.SetInt(store.KeyCamera, device); err != nil {
			a.log.Warnw("saving camera setting", "error", err)
		}
	}
	return nil
}

// Session returns the live session. Only the loop goroutine may use it.
func (a *App) Session() *game.Session {
	return a.session
}

// View returns the state published by the most recent frame. It is safe to
// call from any goroutine.
func (a *App) View() *View {
	return a.view.Load()
}

// Close releases the camera, the detector and the audio device.
func (a *App) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.releaseLocked()
	a.mu.Unlock()

	var errs []error
	if err := a.config.Detector.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close detector: %w", err))
	}
	if err := a.audio.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close audio: %w", err))
	}
	a.log.Infow("game closed", "score", a.session.Score())
	return errors.Join(errs...)
}

func (a *App) notify(kind string) {
	if a.config.Hooks == nil {
		return
	}
	snap := a.session.Snapshot()
	a.config.Hooks.Notify(hooks.Event{
		Kind:   kind,
		Run:    snap.ID.String(),
		Score:  snap.Score,
		Lives:  snap.Lives,
		Camera: snap.Camera,
		At:     time.Now(),
	})
}

func (a *App) publish() {
	a.view.Store(&View{
		Snapshot: a.session.Snapshot(),
		Draw:     a.session.DrawList(),
	})
}
