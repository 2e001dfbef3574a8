package app

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ayusman/handshot/internal/capture"
	"github.com/ayusman/handshot/internal/detector"
)

// source yields the hands seen in the current camera frame.
type source interface {
	Observe() ([]detector.HandLandmarks, error)
	Close() error
}

// syncSource reads and detects on the caller's goroutine, so a slow
// detector throttles the loop.
type syncSource struct {
	cam     capture.Camera // nil when replaying
	det     detector.Detector
	preview *capture.Preview
}

func (s *syncSource) Observe() ([]detector.HandLandmarks, error) {
	if s.cam == nil {
		return s.det.Detect(nil)
	}

	frame, err := s.cam.ReadFrame()
	if err != nil {
		return nil, err
	}
	defer frame.Close()

	hands, err := s.det.Detect(frame)
	if err != nil {
		return nil, err
	}
	if s.preview != nil {
		s.preview.Show(frame, hands)
	}
	return hands, nil
}

func (s *syncSource) Close() error { return nil }

// observation is one complete detector result.
type observation struct {
	hands []detector.HandLandmarks
	err   error
	seq   uint64
}

// asyncSource runs an inner source on a producer goroutine and keeps only
// the latest result. Observe never blocks.
type asyncSource struct {
	latest atomic.Pointer[observation]
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newAsyncSource(inner source, log *zap.SugaredLogger) *asyncSource {
	ctx, cancel := context.WithCancel(context.Background())
	s := &asyncSource{cancel: cancel}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		var seq uint64
		for ctx.Err() == nil {
			hands, err := inner.Observe()
			seq++
			s.latest.Store(&observation{hands: hands, err: err, seq: seq})
			if err != nil {
				log.Debugw("capture producer stopped", "error", err)
				return
			}
		}
	}()
	return s
}

// Observe returns the newest result. Before the first frame arrives it
// reports no hands.
func (s *asyncSource) Observe() ([]detector.HandLandmarks, error) {
	obs := s.latest.Load()
	if obs == nil {
		return nil, nil
	}
	return obs.hands, obs.err
}

// Close stops the producer and waits for its current frame to finish.
func (s *asyncSource) Close() error {
	s.cancel()
	s.wg.Wait()
	return nil
}
