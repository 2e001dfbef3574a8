// Package render draws the game in an ebiten window and turns keyboard,
// mouse and window events into loop input.
package render

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/ayusman/handshot/internal/app"
	"github.com/ayusman/handshot/internal/game"
)

// Loop is the part of the application the window drives.
type Loop interface {
	Frame(ui app.UIInput) error
	View() *app.View
}

// Config holds configuration options for the window.
type Config struct {
	Title    string
	Width    int
	Height   int
	TPS      int
	AssetDir string
	Logger   *zap.SugaredLogger
}

// Window implements ebiten.Game on top of a Loop.
type Window struct {
	config  Config
	loop    Loop
	log     *zap.SugaredLogger
	sprites map[game.Sprite]*ebiten.Image
	faces   *faces

	lastState game.State
	fade      *Fade
	err       error
}

// NewWindow loads sprites and fonts. It does not open the window.
func NewWindow(config Config, loop Loop) (*Window, error) {
	if config.Title == "" {
		config.Title = "Gesture Game"
	}
	if config.TPS <= 0 {
		config.TPS = app.DefaultTPS
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	f, err := newFaces()
	if err != nil {
		return nil, err
	}
	return &Window{
		config:  config,
		loop:    loop,
		log:     log,
		sprites: loadSprites(config.AssetDir, log),
		faces:   f,
	}, nil
}

// Run opens the window and blocks until the loop terminates or fails.
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.config.Width, w.config.Height)
	ebiten.SetWindowTitle(w.config.Title)
	ebiten.SetTPS(w.config.TPS)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return w.err
}

// Update polls input and runs one loop frame.
func (w *Window) Update() error {
	ui := app.UIInput{
		PauseHeld: ebiten.IsKeyPressed(ebiten.KeySpace),
		Quit:      inpututil.IsKeyJustPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed(),
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !w.fading() {
		x, y := ebiten.CursorPosition()
		ui.Click, ui.ClickX, ui.ClickY = true, float64(x), float64(y)
	}

	err := w.loop.Frame(ui)
	switch {
	case errors.Is(err, app.ErrTerminated):
		return ebiten.Termination
	case err != nil:
		w.err = err
		return ebiten.Termination
	}

	if v := w.loop.View(); v != nil {
		state := v.Snapshot.State
		if state == game.StateGameOver && w.lastState != game.StateGameOver {
			w.fade = NewFade()
		}
		w.lastState = state
	}
	if w.fade != nil {
		w.fade.Advance(1 / float32(w.config.TPS))
	}
	return nil
}

func (w *Window) fading() bool {
	return w.lastState == game.StateGameOver && w.fade != nil && !w.fade.Done()
}

// Draw renders the last published view.
func (w *Window) Draw(screen *ebiten.Image) {
	v := w.loop.View()
	if v == nil {
		return
	}
	for _, cmd := range v.Draw {
		w.drawCmd(screen, cmd)
	}
	if w.fading() {
		a := uint8(w.fade.Alpha() * 255)
		vector.FillRect(screen, 0, 0, float32(w.config.Width), float32(w.config.Height), color.RGBA{0, 0, 0, a}, false)
	}
}

// Layout keeps the logical screen at the configured size.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.config.Width, w.config.Height
}

func (w *Window) drawCmd(screen *ebiten.Image, cmd game.DrawCmd) {
	r := cmd.Rect
	switch cmd.Sprite {
	case game.SpriteText:
		w.drawText(screen, cmd.Text, cmd.TextSize, r.X, r.Y, ToneColor(cmd.Tone))
	case game.SpriteButton:
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), ToneColor(cmd.Tone), false)
		w.drawText(screen, cmd.Text, cmd.TextSize, r.X+10, r.Y+10, ToneColor(game.ToneWhite))
	default:
		img, ok := w.sprites[cmd.Sprite]
		if !ok {
			vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), fallbackColors[cmd.Sprite], false)
			return
		}
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
		op.GeoM.Translate(r.X, r.Y)
		screen.DrawImage(img, op)
	}
}

// drawText places the top-left corner of the text at (x, y).
func (w *Window) drawText(screen *ebiten.Image, s string, size int, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, w.faces.get(size), op)
}
