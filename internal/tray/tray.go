// Package tray provides a system tray control surface for headless runs.
package tray

import (
	"fmt"
	"sync"
	"time"

	"github.com/getlantern/systray"

	"github.com/ayusman/handshot/internal/app"
	"github.com/ayusman/handshot/internal/game"
)

// refreshInterval is how often the status line is redrawn.
const refreshInterval = 500 * time.Millisecond

// Controller is the part of the application the tray talks to.
type Controller interface {
	Enqueue(action game.Action)
	View() *app.View
}

// Tray represents the system tray application.
type Tray struct {
	ctrl Controller
	mu   sync.Mutex
	done chan struct{}
	once sync.Once

	// Menu items stored for later updates
	menuStatus    *systray.MenuItem
	menuStart     *systray.MenuItem
	menuPause     *systray.MenuItem
	menuPlayAgain *systray.MenuItem
	menuCameras   []*systray.MenuItem
}

// New creates a tray that sends its commands to ctrl.
func New(ctrl Controller) *Tray {
	return &Tray{ctrl: ctrl, done: make(chan struct{})}
}

// Run starts the system tray application.
// This function blocks until Quit is called or the Quit item is clicked.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit closes the tray from any goroutine.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("Handshot")
	systray.SetTooltip("Handshot gesture shooter")

	t.mu.Lock()
	t.menuStatus = systray.AddMenuItem(StatusTitle(nil), "Current state and score")
	t.menuStatus.Disable()
	systray.AddSeparator()

	t.menuStart = systray.AddMenuItem("Start Game", "Leave the start menu")
	t.menuPause = systray.AddMenuItem("Pause", "Pause or resume the game")
	t.menuPlayAgain = systray.AddMenuItem("Play Again", "Start a new run after game over")
	systray.AddSeparator()

	t.menuCameras = []*systray.MenuItem{
		systray.AddMenuItemCheckbox("Camera 0", "Use capture device 0", false),
		systray.AddMenuItemCheckbox("Camera 1", "Use capture device 1", false),
	}
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Handshot")
	t.mu.Unlock()

	t.refresh()

	go func() {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-t.menuStart.ClickedCh:
				t.ctrl.Enqueue(game.Action{Kind: game.ActionStart})
			case <-t.menuPause.ClickedCh:
				t.ctrl.Enqueue(game.Action{Kind: game.ActionTogglePause})
			case <-t.menuPlayAgain.ClickedCh:
				t.ctrl.Enqueue(game.Action{Kind: game.ActionPlayAgain})
			case <-t.menuCameras[0].ClickedCh:
				t.ctrl.Enqueue(game.Action{Kind: game.ActionSelectCamera, Camera: 0})
			case <-t.menuCameras[1].ClickedCh:
				t.ctrl.Enqueue(game.Action{Kind: game.ActionSelectCamera, Camera: 1})
			case <-menuQuit.ClickedCh:
				t.ctrl.Enqueue(game.Action{Kind: game.ActionQuit})
				systray.Quit()
				return
			case <-ticker.C:
				t.refresh()
			case <-t.done:
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
	t.once.Do(func() { close(t.done) })
}

// refresh updates titles and enabled items from the latest view.
func (t *Tray) refresh() {
	t.mu.Lock()
	defer t.mu.Unlock()

	v := t.ctrl.View()
	t.menuStatus.SetTitle(StatusTitle(v))

	m := MenuFor(v)
	setEnabled(t.menuStart, m.Start)
	setEnabled(t.menuPause, m.Pause)
	setEnabled(t.menuPlayAgain, m.PlayAgain)
	t.menuPause.SetTitle(m.PauseTitle)
	for i, item := range t.menuCameras {
		setEnabled(item, m.Cameras)
		if i == m.Camera {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

func setEnabled(item *systray.MenuItem, enabled bool) {
	if enabled {
		item.Enable()
	} else {
		item.Disable()
	}
}

// Menu is the enabled state of each tray item for one view.
type Menu struct {
	Start      bool
	Pause      bool
	PauseTitle string
	PlayAgain  bool
	Cameras    bool
	Camera     int
}

// MenuFor derives which commands make sense in the state shown by v.
func MenuFor(v *app.View) Menu {
	m := Menu{PauseTitle: "Pause", Camera: -1}
	if v == nil {
		return m
	}
	switch v.Snapshot.State {
	case game.StateStartMenu:
		m.Start, m.Cameras = true, true
	case game.StatePlaying:
		m.Pause = true
	case game.StatePaused:
		m.Pause, m.PauseTitle = true, "Resume"
	case game.StateGameOver:
		m.PlayAgain = true
	}
	m.Camera = v.Snapshot.Camera
	return m
}

// StatusTitle is the text of the disabled status item.
func StatusTitle(v *app.View) string {
	if v == nil {
		return "Starting..."
	}
	s := v.Snapshot
	switch s.State {
	case game.StatePlaying, game.StatePaused:
		return fmt.Sprintf("%s | Score: %d | Lives: %d", s.State, s.Score, s.Lives)
	case game.StateGameOver:
		return fmt.Sprintf("%s | Score: %d", s.State, s.Score)
	default:
		return s.State.String()
	}
}
