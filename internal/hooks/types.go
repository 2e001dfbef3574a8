// Package hooks runs user-provided executables when the game changes state,
// for example to post a notification when a run ends.
//
// Each hook lives in its own directory under the hooks directory with a
// hook.json manifest. The event is written to the executable's stdin as
// JSON and a JSON Response is read back from stdout.
package hooks

import (
	"slices"
	"time"
)

// Event kinds.
const (
	EventRunStarted     = "run_started"
	EventPaused         = "paused"
	EventResumed        = "resumed"
	EventGameOver       = "game_over"
	EventQuit           = "quit"
	EventCameraSelected = "camera_selected"
)

// Manifest describes a hook and the events it subscribes to.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Executable  string   `json:"executable"`
	Events      []string `json:"events"`
}

// Event is sent to a hook on stdin.
type Event struct {
	Kind   string    `json:"event"`
	Run    string    `json:"run"`
	Score  int       `json:"score"`
	Lives  int       `json:"lives"`
	Camera int       `json:"camera"`
	At     time.Time `json:"at"`
}

// Response is what a hook writes to stdout.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Hook is a discovered hook with its manifest and location.
type Hook struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Wants reports whether the hook subscribed to kind. A manifest without
// events receives all of them.
func (h *Hook) Wants(kind string) bool {
	return len(h.Manifest.Events) == 0 || slices.Contains(h.Manifest.Events, kind)
}
