package game

// State is the top-level mode of a session.
type State int

const (
	StateStartMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
	// StateTerminated is entered on quit. Nothing leaves it.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateStartMenu:
		return "start_menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ActionKind identifies a discrete user command.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionStart
	ActionTogglePause
	ActionPlayAgain
	ActionQuit
	ActionSelectCamera
)

func (k ActionKind) String() string {
	switch k {
	case ActionStart:
		return "start"
	case ActionTogglePause:
		return "toggle_pause"
	case ActionPlayAgain:
		return "play_again"
	case ActionQuit:
		return "quit"
	case ActionSelectCamera:
		return "select_camera"
	default:
		return "none"
	}
}

// Action is a discrete command from a menu button, the keyboard or the tray.
type Action struct {
	Kind   ActionKind
	Camera int // only meaningful for ActionSelectCamera
}

// Sound is an audio cue emitted by the simulation.
type Sound int

const (
	SoundShoot Sound = iota
	SoundExplosion
	SoundBeam
	SoundGameOver
)

func (s Sound) String() string {
	switch s {
	case SoundShoot:
		return "shoot"
	case SoundExplosion:
		return "explosion"
	case SoundBeam:
		return "beam"
	case SoundGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Control is the per-tick output of the gesture adapter.
type Control struct {
	// Tracking is false until a hand has been seen at least once; the
	// player stays at its spawn point until then.
	Tracking bool
	X, Y     float64
	Shoot    bool
}

// Input is everything the simulation consumes in one loop iteration.
type Input struct {
	Control Control
	// PauseHeld is the raw level of the pause key. The session toggles
	// pause on its rising edge only.
	PauseHeld bool
}

// edge turns a level signal into a rising-edge pulse.
type edge struct {
	prev bool
}

func (e *edge) rising(level bool) bool {
	fired := level && !e.prev
	e.prev = level
	return fired
}
