// Package replay records detector output to the store and plays it back in
// place of a live detector.
package replay

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/ayusman/handshot/internal/detector"
	"github.com/ayusman/handshot/internal/store"
)

// ErrEndOfRecording is returned by Player once every frame has been replayed.
var ErrEndOfRecording = errors.New("end of recording")

// flushEvery is the number of buffered frames written per transaction.
const flushEvery = 60

// Repository is the subset of store.RecordingRepository the recorder needs.
type Repository interface {
	Create(rec *store.Recording) error
	AppendFrames(id string, frames []store.Frame) error
}

// Recorder is a detector.Detector that forwards to another detector and
// persists every result.
type Recorder struct {
	det  detector.Detector
	repo Repository
	rec  store.Recording
	log  *zap.SugaredLogger
	now  func() time.Time

	mu      sync.Mutex
	start   time.Time
	seq     int
	pending []store.Frame
}

// NewRecorder creates a recording named name and returns a detector that
// writes into it.
func NewRecorder(d detector.Detector, repo Repository, name string, camera int, log *zap.SugaredLogger) (*Recorder, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r := &Recorder{
		det:  d,
		repo: repo,
		rec:  store.Recording{ID: uuid.NewString(), Name: name, Camera: camera},
		log:  log,
		now:  time.Now,
	}
	if err := repo.Create(&r.rec); err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	log.Infow("recording landmarks", "id", r.rec.ID, "name", name)
	return r, nil
}

// ID returns the recording id.
func (r *Recorder) ID() string {
	return r.rec.ID
}

// Detect runs the wrapped detector and buffers its result. Detection errors
// are passed through and not recorded.
func (r *Recorder) Detect(frame *gocv.Mat) ([]detector.HandLandmarks, error) {
	hands, err := r.det.Detect(frame)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if r.seq == 0 {
		r.start = now
	}
	r.pending = append(r.pending, store.Frame{Seq: r.seq, Offset: now.Sub(r.start), Hands: hands})
	r.seq++

	if len(r.pending) >= flushEvery {
		if err := r.flush(); err != nil {
			return nil, err
		}
	}
	return hands, nil
}

func (r *Recorder) flush() error {
	if len(r.pending) == 0 {
		return nil
	}
	if err := r.repo.AppendFrames(r.rec.ID, r.pending); err != nil {
		return fmt.Errorf("write recording %s: %w", r.rec.ID, err)
	}
	r.pending = r.pending[:0]
	return nil
}

// Close writes any buffered frames and closes the wrapped detector.
func (r *Recorder) Close() error {
	r.mu.Lock()
	flushErr := r.flush()
	frames := r.seq
	r.mu.Unlock()

	r.log.Infow("recording closed", "id", r.rec.ID, "frames", frames)
	return errors.Join(flushErr, r.det.Close())
}

// Player replays recorded frames, one per Detect call. The frame argument
// is ignored, so a player can run without a camera.
type Player struct {
	mu     sync.Mutex
	frames []store.Frame
	next   int
}

// NewPlayer returns a detector that yields frames in order.
func NewPlayer(frames []store.Frame) *Player {
	return &Player{frames: frames}
}

// Detect returns the hands of the next recorded frame.
func (p *Player) Detect(*gocv.Mat) ([]detector.HandLandmarks, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.next >= len(p.frames) {
		return nil, ErrEndOfRecording
	}
	f := p.frames[p.next]
	p.next++
	return f.Hands, nil
}

// Remaining returns how many frames are left.
func (p *Player) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames) - p.next
}

// Close is a no-op.
func (p *Player) Close() error {
	return nil
}
