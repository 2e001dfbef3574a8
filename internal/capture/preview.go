package capture

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/handshot/internal/detector"
)

// PreviewTitle is the title of the camera preview window.
const PreviewTitle = "Hand Tracking"

var (
	landmarkColor   = color.RGBA{R: 0, G: 255, B: 255, A: 0}
	connectionColor = color.RGBA{R: 0, G: 255, B: 0, A: 0}
)

// Preview shows camera frames with the detected hand skeleton drawn on top,
// mirrored so the user sees themselves as in a mirror.
type Preview struct {
	window *gocv.Window
	flip   gocv.Mat
}

// NewPreview opens the preview window.
func NewPreview() *Preview {
	return &Preview{
		window: gocv.NewWindow(PreviewTitle),
		flip:   gocv.NewMat(),
	}
}

// Show draws hands onto frame in place, mirrors it and displays it.
func (p *Preview) Show(frame *gocv.Mat, hands []detector.HandLandmarks) {
	if frame == nil || frame.Empty() {
		return
	}
	DrawHands(frame, hands)
	gocv.Flip(*frame, &p.flip, 1)
	p.window.IMShow(p.flip)
	p.window.WaitKey(1)
}

// Close destroys the window.
func (p *Preview) Close() error {
	p.flip.Close()
	return p.window.Close()
}

// DrawHands paints the skeleton connections as lines and the landmarks as
// dots on top of them.
func DrawHands(img *gocv.Mat, hands []detector.HandLandmarks) {
	w, h := img.Cols(), img.Rows()
	for i := range hands {
		hand := &hands[i]
		if !hand.Valid() {
			continue
		}
		for _, c := range detector.Connections {
			gocv.Line(img, Pixel(hand.Points[c[0]], w, h), Pixel(hand.Points[c[1]], w, h), connectionColor, 2)
		}
		for _, pt := range hand.Points {
			gocv.Circle(img, Pixel(pt, w, h), 5, landmarkColor, -1)
		}
	}
}

// Pixel converts a normalized landmark to image coordinates.
func Pixel(p detector.Point3D, w, h int) image.Point {
	return image.Pt(int(p.X*float64(w)), int(p.Y*float64(h)))
}
