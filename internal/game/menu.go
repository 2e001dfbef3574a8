package game

// Button is a clickable menu rectangle.
type Button struct {
	Label  string
	Rect   Rect
	Action Action
}

// MenuButtons returns the start menu buttons, top to bottom.
func MenuButtons(cfg Config) []Button {
	w, h := float64(cfg.Width), float64(cfg.Height)
	at := func(row int) Rect {
		return Rect{X: w / 3, Y: h/2 + float64(row)*70, W: w / 3, H: 50}
	}
	return []Button{
		{Label: "Start Game", Rect: at(0), Action: Action{Kind: ActionStart}},
		{Label: "Camera 0", Rect: at(1), Action: Action{Kind: ActionSelectCamera, Camera: 0}},
		{Label: "Camera 1", Rect: at(2), Action: Action{Kind: ActionSelectCamera, Camera: 1}},
	}
}

// PlayAgainButton returns the button shown on the game over screen.
func PlayAgainButton(cfg Config) Button {
	w, h := float64(cfg.Width), float64(cfg.Height)
	return Button{
		Label:  "Play Again",
		Rect:   Rect{X: w / 2.5, Y: h / 1.5, W: 200, H: 50},
		Action: Action{Kind: ActionPlayAgain},
	}
}

// ButtonAt resolves a click at (x, y) to the action of the button under it.
func ButtonAt(cfg Config, state State, x, y float64) (Action, bool) {
	var buttons []Button
	switch state {
	case StateStartMenu:
		buttons = MenuButtons(cfg)
	case StateGameOver:
		buttons = []Button{PlayAgainButton(cfg)}
	}
	for _, b := range buttons {
		if b.Rect.Contains(x, y) {
			return b.Action, true
		}
	}
	return Action{}, false
}
