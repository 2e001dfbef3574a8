package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, sync, err := New(Options{Level: "info", Console: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Debugw("hidden")
	log.Infow("camera opened", "device", 1)
	sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "camera opened") || !strings.Contains(out, `"device": 1`) {
		t.Errorf("output = %q, want message and field", out)
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handshot.log")
	var buf bytes.Buffer
	log, sync, err := New(Options{Level: "debug", File: path, Console: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Debugw("tick", "n", 3)
	sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"msg":"tick"`) {
		t.Errorf("file = %q, want JSON tick line", data)
	}
	if !strings.Contains(buf.String(), "tick") {
		t.Errorf("console = %q, want tick line", buf.String())
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatal("New() with unknown level succeeded")
	}
}
