// Package testdata provides hand scripts and frames shared by integration tests.
package testdata

import (
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/handshot/internal/detector"
	"github.com/ayusman/handshot/internal/store"
)

// BlankFrame returns a black BGR frame. The caller closes it.
func BlankFrame(width, height int) *gocv.Mat {
	m := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
	return &m
}

// WristFor returns the normalized wrist position that steers the player's
// top-left corner to (x, y) on a width x height screen.
func WristFor(x, y float64, width, height int) (float64, float64) {
	return (float64(width) - x) / float64(width), y / float64(height)
}

// Sweep returns n hands moving in a straight line from (x0, y0) to (x1, y1)
// in normalized camera coordinates.
func Sweep(x0, y0, x1, y1 float64, n int, pinch bool) []detector.HandLandmarks {
	pose := detector.HandAt
	if pinch {
		pose = detector.PinchAt
	}
	hands := make([]detector.HandLandmarks, n)
	for i := range hands {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		hands[i] = pose(x0+(x1-x0)*t, y0+(y1-y0)*t)
	}
	return hands
}

// Frames turns one hand per tick into recording frames spaced by step.
// Ticks listed in gaps carry no hand.
func Frames(hands []detector.HandLandmarks, step time.Duration, gaps map[int]bool) []store.Frame {
	frames := make([]store.Frame, len(hands))
	for i, h := range hands {
		frames[i] = store.Frame{Seq: i, Offset: time.Duration(i) * step}
		if !gaps[i] {
			frames[i].Hands = []detector.HandLandmarks{h}
		}
	}
	return frames
}
