package render

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/ayusman/handshot/internal/game"
)

func TestToneColor(t *testing.T) {
	tests := []struct {
		tone game.Tone
		want color.RGBA
	}{
		{game.ToneWhite, color.RGBA{255, 255, 255, 255}},
		{game.ToneRed, color.RGBA{255, 0, 0, 255}},
		{game.ToneGreen, color.RGBA{0, 255, 0, 255}},
		{game.ToneBlue, color.RGBA{0, 0, 255, 255}},
		{game.ToneSelected, color.RGBA{0, 200, 0, 255}},
	}
	for _, tt := range tests {
		if got := ToneColor(tt.tone); got != tt.want {
			t.Errorf("ToneColor(%d) = %v, want %v", tt.tone, got, tt.want)
		}
	}
}

func TestSpritePath(t *testing.T) {
	tests := []struct {
		sprite game.Sprite
		want   string
	}{
		{game.SpritePlayer, filepath.Join("assets", "images", "player_ship.png")},
		{game.SpritePowerBullet, filepath.Join("assets", "images", "power.png")},
		{game.SpriteBackground, filepath.Join("assets", "images", "background.png")},
		{game.SpriteText, ""},
		{game.SpriteButton, ""},
	}
	for _, tt := range tests {
		if got := SpritePath("assets", tt.sprite); got != tt.want {
			t.Errorf("SpritePath(%d) = %q, want %q", tt.sprite, got, tt.want)
		}
	}
}

func TestEverySpriteHasFallback(t *testing.T) {
	for s := range spriteFiles {
		if _, ok := fallbackColors[s]; !ok {
			t.Errorf("sprite %d has no fallback colour", s)
		}
	}
}

func TestFade(t *testing.T) {
	f := NewFade()
	if f.Alpha() != 1 || f.Done() {
		t.Fatalf("new fade: alpha %v done %v", f.Alpha(), f.Done())
	}

	a := f.Advance(0.9)
	if a < 0.49 || a > 0.51 {
		t.Errorf("alpha at half time = %v, want about 0.5", a)
	}
	if f.Done() {
		t.Error("fade done at half time")
	}

	if a := f.Advance(1); a != 0 || !f.Done() {
		t.Errorf("after full duration: alpha %v done %v", a, f.Done())
	}
	if a := f.Advance(1); a != 0 {
		t.Errorf("advance after done = %v", a)
	}
}

func TestFaceCache(t *testing.T) {
	f, err := newFaces()
	if err != nil {
		t.Fatalf("newFaces() error = %v", err)
	}
	a := f.get(36)
	if b := f.get(36); a != b {
		t.Error("same size returned a different face")
	}
	if f.get(72) == a {
		t.Error("different sizes share a face")
	}
	if len(f.cache) != 2 {
		t.Errorf("cache size = %d, want 2", len(f.cache))
	}
}
