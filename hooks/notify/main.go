// Command notify is an example event hook that shows a desktop notification
// when a run ends. Build it into the hook directory next to hook.json:
//
//	go build -o ~/.handshot/hooks/notify/notify ./hooks/notify
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

// Event is the payload written to stdin by the game.
type Event struct {
	Kind   string    `json:"event"`
	Run    string    `json:"run"`
	Score  int       `json:"score"`
	Lives  int       `json:"lives"`
	Camera int       `json:"camera"`
	At     time.Time `json:"at"`
}

// Response is written to stdout.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func main() {
	var ev Event
	if err := json.NewDecoder(os.Stdin).Decode(&ev); err != nil {
		writeResponse(fmt.Errorf("failed to decode event: %w", err))
		return
	}

	title, body, ok := message(ev)
	if !ok {
		writeResponse(nil)
		return
	}
	writeResponse(notify(title, body))
}

// message returns the notification text for ev, or false for events this
// hook ignores.
func message(ev Event) (string, string, bool) {
	switch ev.Kind {
	case "game_over":
		return "Game Over", fmt.Sprintf("Score: %d", ev.Score), true
	case "run_started":
		return "Gesture Game", "New run started. Pinch to shoot!", true
	default:
		return "", "", false
	}
}

func notify(title, body string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		cmd = exec.Command("osascript", "-e", script)
	case "linux":
		cmd = exec.Command("notify-send", title, body)
	default:
		return fmt.Errorf("notifications not supported on %s", runtime.GOOS)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", err, out)
	}
	return nil
}

func writeResponse(err error) {
	resp := Response{Success: err == nil}
	if err != nil {
		resp.Error = err.Error()
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}
