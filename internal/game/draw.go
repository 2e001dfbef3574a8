package game

import "fmt"

// Layer orders draw commands back to front.
type Layer int

const (
	LayerBackground Layer = iota
	LayerPlayer
	LayerBullets
	LayerEnemies
	LayerBeams
	LayerLives
	LayerHUD
)

// Sprite selects what the renderer draws for a command.
type Sprite int

const (
	SpriteBackground Sprite = iota
	SpritePlayer
	SpriteBullet
	SpritePowerBullet
	SpriteEnemy
	SpriteBeam
	SpriteLife
	SpriteButton
	SpriteText
)

// Tone is a named colour for text and buttons.
type Tone int

const (
	ToneWhite Tone = iota
	ToneRed
	ToneGreen
	ToneBlue
	ToneSelected
)

// DrawCmd is one entry of the per-frame draw list.
type DrawCmd struct {
	Layer    Layer
	Sprite   Sprite
	Rect     Rect
	Text     string
	TextSize int
	Tone     Tone
}

// DrawList returns the draw commands for the current state, already sorted
// back to front: background, player, bullets, enemies, beams, lives, HUD.
func (s *Session) DrawList() []DrawCmd {
	w, h := float64(s.cfg.Width), float64(s.cfg.Height)
	switch s.state {
	case StateTerminated:
		return nil
	case StateStartMenu:
		cmds := []DrawCmd{background(w, h), text("Gesture Game", w/4, h/3, 54, ToneWhite)}
		for _, b := range MenuButtons(s.cfg) {
			tone := ToneGreen
			if b.Action.Kind == ActionSelectCamera {
				tone = ToneBlue
				if b.Action.Camera == s.camera {
					tone = ToneSelected
				}
			}
			cmds = append(cmds, button(b, tone))
		}
		return cmds
	case StatePaused:
		return []DrawCmd{
			background(w, h),
			text("Paused", w/2.7, h/3, 70, ToneRed),
			text("Press SPACE to Continue", w/4, h/2, 36, ToneWhite),
			text("Press ESC to Exit", w/4, h/1.5, 36, ToneWhite),
		}
	case StateGameOver:
		return []DrawCmd{
			background(w, h),
			text("GAME OVER", w/2.8, h/3, 72, ToneRed),
			text(fmt.Sprintf("Score: %d", s.score), w/2.5, h/2, 36, ToneWhite),
			button(PlayAgainButton(s.cfg), ToneGreen),
		}
	}

	cmds := make([]DrawCmd, 0, 3+len(s.bullets)+len(s.enemies)+len(s.beams)+s.lives)
	cmds = append(cmds, background(w, h))
	cmds = append(cmds, DrawCmd{Layer: LayerPlayer, Sprite: SpritePlayer, Rect: s.player.Bounds()})
	bullet := SpriteBullet
	if s.buff.Active {
		bullet = SpritePowerBullet
	}
	for _, b := range s.bullets {
		cmds = append(cmds, DrawCmd{Layer: LayerBullets, Sprite: bullet, Rect: b.Bounds()})
	}
	for _, e := range s.enemies {
		cmds = append(cmds, DrawCmd{Layer: LayerEnemies, Sprite: SpriteEnemy, Rect: e.Bounds()})
	}
	for _, b := range s.beams {
		cmds = append(cmds, DrawCmd{Layer: LayerBeams, Sprite: SpriteBeam, Rect: b.Bounds()})
	}
	for i := range s.lives {
		cmds = append(cmds, DrawCmd{
			Layer:  LayerLives,
			Sprite: SpriteLife,
			Rect:   Rect{X: w - 40 - float64(i)*40, Y: 10, W: 30, H: 30},
		})
	}
	cmds = append(cmds, text(fmt.Sprintf("Score: %d", s.score), 10, 10, 36, ToneWhite))
	return cmds
}

func background(w, h float64) DrawCmd {
	return DrawCmd{Layer: LayerBackground, Sprite: SpriteBackground, Rect: Rect{W: w, H: h}}
}

func text(s string, x, y float64, size int, tone Tone) DrawCmd {
	return DrawCmd{Layer: LayerHUD, Sprite: SpriteText, Rect: Rect{X: x, Y: y}, Text: s, TextSize: size, Tone: tone}
}

func button(b Button, tone Tone) DrawCmd {
	return DrawCmd{Layer: LayerHUD, Sprite: SpriteButton, Rect: b.Rect, Text: b.Label, TextSize: 28, Tone: tone}
}
