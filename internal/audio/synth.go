package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/ayusman/handshot/internal/game"
)

// Options configures the speaker-backed player.
type Options struct {
	// AssetDir is searched for audio/<cue>.wav. Missing files are replaced
	// by synthesized tones.
	AssetDir string
	// Volume scales every sound, 0..1. Zero means 1.
	Volume float64
	Music  bool
	Logger *zap.SugaredLogger
}

// Synth plays cues through the default audio device.
type Synth struct {
	log   *zap.SugaredLogger
	cues  map[game.Sound]*beep.Buffer
	vol   float64
	mixer *beep.Mixer
	music *beep.Ctrl

	mu     sync.Mutex
	closed bool
}

// NewSynth loads every cue and opens the speaker. The background loop, if
// enabled, starts immediately in the paused state.
func NewSynth(opts Options) (*Synth, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	vol := opts.Volume
	if vol <= 0 || vol > 1 {
		vol = 1
	}

	s := &Synth{
		log:   log,
		cues:  make(map[game.Sound]*beep.Buffer, len(cueFiles)),
		vol:   vol,
		mixer: &beep.Mixer{},
	}

	for snd := range cueFiles {
		buf, err := loadCue(opts.AssetDir, snd)
		if err != nil {
			log.Warnw("sound asset missing, using synthesized cue", "sound", snd, "error", err)
		}
		s.cues[snd] = buf
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	if opts.Music {
		buf, err := loadMusic(opts.AssetDir)
		if err != nil {
			log.Warnw("music asset missing, using synthesized loop", "error", err)
		}
		loop := beep.Loop(-1, buf.Streamer(0, buf.Len()))
		s.music = &beep.Ctrl{Streamer: volume(loop, vol), Paused: true}
		s.mixer.Add(s.music)
	}

	speaker.Play(s.mixer)
	return s, nil
}

// Play starts snd on top of whatever is already playing.
func (s *Synth) Play(snd game.Sound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	buf, ok := s.cues[snd]
	if !ok || buf.Len() == 0 {
		return
	}
	speaker.Lock()
	s.mixer.Add(volume(buf.Streamer(0, buf.Len()), s.vol))
	speaker.Unlock()
}

// SetPaused pauses or resumes the background loop.
func (s *Synth) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.music == nil {
		return
	}
	speaker.Lock()
	s.music.Paused = paused
	speaker.Unlock()
}

// Close stops all sound and releases the device.
func (s *Synth) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
	return nil
}
