package audio

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"

	"github.com/ayusman/handshot/internal/game"
)

const sampleRate = beep.SampleRate(44100)

var format = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// cueFiles maps each sound to its file under <assets>/audio.
var cueFiles = map[game.Sound]string{
	game.SoundShoot:     "shoot.wav",
	game.SoundExplosion: "explosion.wav",
	game.SoundBeam:      "beam.wav",
	game.SoundGameOver:  "game_over.wav",
}

const musicFile = "background_music.wav"

// loadWAV decodes a WAV file fully into memory at the package sample rate.
func loadWAV(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	streamer, fileFormat, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if fileFormat.SampleRate != sampleRate {
		s = beep.Resample(4, fileFormat.SampleRate, sampleRate, streamer)
	}

	buf := beep.NewBuffer(format)
	buf.Append(s)
	if buf.Len() == 0 {
		return nil, fmt.Errorf("decode %s: no samples", path)
	}
	return buf, nil
}

// loadCue returns the asset for snd, or a synthesized stand-in when assetDir
// has no usable file. The error reports why the asset was skipped.
func loadCue(assetDir string, snd game.Sound) (*beep.Buffer, error) {
	name, ok := cueFiles[snd]
	if !ok {
		return nil, fmt.Errorf("no cue for sound %v", snd)
	}
	if assetDir != "" {
		buf, err := loadWAV(filepath.Join(assetDir, "audio", name))
		if err == nil {
			return buf, nil
		}
		return synthCue(snd), err
	}
	return synthCue(snd), nil
}

func synthCue(snd game.Sound) *beep.Buffer {
	buf := beep.NewBuffer(format)
	switch snd {
	case game.SoundShoot:
		buf.Append(shaped(tone(880, 60*time.Millisecond), 60*time.Millisecond, 0.4))
	case game.SoundExplosion:
		buf.Append(shaped(noise(250*time.Millisecond), 250*time.Millisecond, 0.5))
	case game.SoundBeam:
		buf.Append(beep.Seq(
			shaped(tone(660, 80*time.Millisecond), 80*time.Millisecond, 0.35),
			shaped(tone(990, 120*time.Millisecond), 120*time.Millisecond, 0.35),
		))
	case game.SoundGameOver:
		buf.Append(beep.Seq(
			shaped(tone(440, 250*time.Millisecond), 250*time.Millisecond, 0.4),
			shaped(tone(330, 250*time.Millisecond), 250*time.Millisecond, 0.4),
			shaped(tone(220, 500*time.Millisecond), 500*time.Millisecond, 0.4),
		))
	}
	return buf
}

// loadMusic returns the background loop, synthesizing a slow bass pulse
// when the asset is missing.
func loadMusic(assetDir string) (*beep.Buffer, error) {
	if assetDir != "" {
		buf, err := loadWAV(filepath.Join(assetDir, "audio", musicFile))
		if err == nil {
			return buf, nil
		}
		return synthMusic(), err
	}
	return synthMusic(), nil
}

func synthMusic() *beep.Buffer {
	buf := beep.NewBuffer(format)
	beat := 500 * time.Millisecond
	for _, freq := range []float64{110, 110, 147, 131} {
		buf.Append(shaped(tone(freq, beat), beat, 0.15))
	}
	return buf
}

func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(sampleRate.N(d))
	}
	return beep.Take(sampleRate.N(d), sine)
}

func noise(d time.Duration) beep.Streamer {
	rng := rand.New(rand.NewPCG(1, 1))
	return beep.Take(sampleRate.N(d), beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rng.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	}))
}

// shaped applies a linear fade-out over d and scales by vol.
func shaped(s beep.Streamer, d time.Duration, vol float64) beep.Streamer {
	total := sampleRate.N(d)
	pos := 0
	fade := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			env := 1 - float64(pos)/float64(total)
			if env < 0 {
				env = 0
			}
			samples[i][0] *= env
			samples[i][1] *= env
			pos++
		}
		return n, ok
	})
	return volume(fade, vol)
}

// volume scales s linearly; effects.Volume works in log space.
func volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
