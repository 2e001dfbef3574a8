package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results. It is safe for use
// from a producer goroutine.
type MockDetector struct {
	mu     sync.Mutex
	hands  []HandLandmarks
	queue  [][]HandLandmarks
	err    error
	calls  int
	closed bool
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect once the queue is empty.
func (m *MockDetector) SetHands(hands ...HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// Enqueue adds one detection result to be returned before falling back to
// the hands given to SetHands.
func (m *MockDetector) Enqueue(hands ...HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, hands)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the next queued result, the pre-configured hands, or the error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return next, nil
	}
	return m.hands, nil
}

// Calls returns how many times Detect was called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Closed reports whether Close was called.
func (m *MockDetector) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Close marks the mock closed.
func (m *MockDetector) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// HandAt returns an open right hand with its wrist at normalized (x, y).
// The index and middle fingertips are spread apart, so it does not shoot.
func HandAt(x, y float64) HandLandmarks {
	h := HandLandmarks{Handedness: "Right", Score: 0.95}

	h.Points[Wrist] = Point3D{X: x, Y: y}

	h.Points[ThumbCMC] = Point3D{X: x + 0.05, Y: y - 0.05, Z: 0.02}
	h.Points[ThumbMCP] = Point3D{X: x + 0.12, Y: y - 0.10, Z: 0.03}
	h.Points[ThumbIP] = Point3D{X: x + 0.18, Y: y - 0.15, Z: 0.03}
	h.Points[ThumbTip] = Point3D{X: x + 0.23, Y: y - 0.20, Z: 0.03}

	h.Points[IndexMCP] = Point3D{X: x + 0.05, Y: y - 0.12}
	h.Points[IndexPIP] = Point3D{X: x + 0.07, Y: y - 0.25}
	h.Points[IndexDIP] = Point3D{X: x + 0.08, Y: y - 0.35}
	h.Points[IndexTip] = Point3D{X: x + 0.08, Y: y - 0.45}

	h.Points[MiddleMCP] = Point3D{X: x, Y: y - 0.14}
	h.Points[MiddlePIP] = Point3D{X: x, Y: y - 0.28}
	h.Points[MiddleDIP] = Point3D{X: x, Y: y - 0.40}
	h.Points[MiddleTip] = Point3D{X: x, Y: y - 0.52}

	h.Points[RingMCP] = Point3D{X: x - 0.05, Y: y - 0.12}
	h.Points[RingPIP] = Point3D{X: x - 0.07, Y: y - 0.25}
	h.Points[RingDIP] = Point3D{X: x - 0.08, Y: y - 0.35}
	h.Points[RingTip] = Point3D{X: x - 0.08, Y: y - 0.45}

	h.Points[PinkyMCP] = Point3D{X: x - 0.10, Y: y - 0.10}
	h.Points[PinkyPIP] = Point3D{X: x - 0.13, Y: y - 0.20}
	h.Points[PinkyDIP] = Point3D{X: x - 0.15, Y: y - 0.30}
	h.Points[PinkyTip] = Point3D{X: x - 0.16, Y: y - 0.38}

	return h
}

// PinchAt returns the HandAt pose with the index and middle fingertips
// pressed together, which reads as a shoot gesture.
func PinchAt(x, y float64) HandLandmarks {
	h := HandAt(x, y)
	h.Points[IndexPIP] = Point3D{X: x + 0.02, Y: y - 0.26}
	h.Points[IndexDIP] = Point3D{X: x + 0.015, Y: y - 0.38}
	h.Points[IndexTip] = Point3D{X: x + 0.01, Y: y - 0.50}
	return h
}
