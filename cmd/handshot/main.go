package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/ayusman/handshot/internal/app"
	"github.com/ayusman/handshot/internal/audio"
	"github.com/ayusman/handshot/internal/capture"
	"github.com/ayusman/handshot/internal/config"
	"github.com/ayusman/handshot/internal/detector"
	"github.com/ayusman/handshot/internal/game"
	"github.com/ayusman/handshot/internal/hooks"
	"github.com/ayusman/handshot/internal/logging"
	"github.com/ayusman/handshot/internal/render"
	"github.com/ayusman/handshot/internal/replay"
	"github.com/ayusman/handshot/internal/store"
	"github.com/ayusman/handshot/internal/tray"
)

var quit = game.Action{Kind: game.ActionQuit}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args)
	if errors.Is(err, flag.ErrHelp) {
		config.Usage(os.Stderr)
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "handshot: %v\n", err)
		return 2
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "handshot: create data directory: %v\n", err)
		return 1
	}

	log, syncLog, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "handshot: %v\n", err)
		return 2
	}
	defer syncLog()

	st, err := store.New(cfg.DBPath())
	if err != nil {
		log.Errorw("Failed to initialize store", "path", cfg.DBPath(), "error", err)
		return 1
	}
	defer st.Close()
	log.Debugw("store opened", "path", st.Path())

	if cfg.DeleteRecording != "" {
		if err := deleteRecording(os.Stdout, st.Recordings(), cfg.DeleteRecording); err != nil {
			log.Errorw("Failed to delete recording", "id", cfg.DeleteRecording, "error", err)
			return 1
		}
		return 0
	}

	if cfg.ListRecordings {
		if err := listRecordings(os.Stdout, st.Recordings()); err != nil {
			log.Errorw("Failed to list recordings", "error", err)
			return 1
		}
		return 0
	}

	if !cfg.CameraSet {
		cam, err := st.Settings().GetInt(store.KeyCamera, 0)
		if err != nil {
			log.Warnw("Stored camera setting unreadable, using 0", "error", err)
		}
		cfg.Camera = cam
	}

	det, openCamera, err := buildInput(cfg, st, log)
	if err != nil {
		log.Errorw("Hand input unavailable", "error", err)
		return 1
	}

	var preview *capture.Preview
	if cfg.Preview && !cfg.Async {
		preview = capture.NewPreview()
	}

	dispatcher, err := hooks.NewDispatcher(hooks.Config{Dir: cfg.HookPath(), Logger: log})
	if err != nil {
		log.Warnw("Hooks unavailable", "dir", cfg.HookPath(), "error", err)
	} else {
		defer dispatcher.Close(hooks.DefaultTimeout)
	}

	player := buildAudio(cfg, log)

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	a, err := app.New(app.Config{
		Game:       cfg.Game,
		TPS:        cfg.TPS,
		Rand:       rng,
		Detector:   det,
		OpenCamera: openCamera,
		Camera:     cfg.Camera,
		Preview:    preview,
		Async:      cfg.Async,
		Audio:      player,
		Settings:   st.Settings(),
		Hooks:      notifier(dispatcher),
		Logger:     log,
	})
	if err != nil {
		det.Close()
		player.Close()
		if preview != nil {
			preview.Close()
		}
		log.Errorw("Failed to start game", "error", err)
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warnw("Shutdown", "error", err)
		}
		if preview != nil {
			preview.Close()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Headless {
		err = runHeadless(ctx, a)
	} else {
		err = runWindow(ctx, a, cfg, log)
	}

	switch {
	case err == nil:
		log.Infow("Bye", "score", a.Session().Score())
		return 0
	case errors.Is(err, app.ErrInputUnavailable):
		log.Errorw("Hand input lost, stopping", "error", err)
		return 1
	default:
		log.Errorw("Game failed", "error", err)
		return 1
	}
}

// buildInput returns the detector and camera factory for the configured
// input: a recording, or the camera with MediaPipe, optionally recorded.
func buildInput(cfg config.Config, st *store.Store, log *zap.SugaredLogger) (detector.Detector, func(int) (capture.Camera, error), error) {
	if cfg.Replay != "" {
		rec, err := st.Recordings().Get(cfg.Replay)
		if err != nil {
			return nil, nil, fmt.Errorf("recording %s: %w", cfg.Replay, err)
		}
		frames, err := st.Recordings().Frames(rec.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("recording %s: %w", rec.ID, err)
		}
		log.Infow("Replaying recording", "id", rec.ID, "name", rec.Name, "frames", len(frames))
		return replay.NewPlayer(frames), nil, nil
	}

	dc := detector.DefaultConfig()
	dc.ScriptPath = cfg.ScriptPath
	dc.DataDir = cfg.DataDir
	dc.Logger = log
	mp, err := detector.NewMediaPipeDetector(dc)
	if err != nil {
		return nil, nil, err
	}

	var det detector.Detector = mp
	if cfg.Record != "" {
		rec, err := replay.NewRecorder(mp, st.Recordings(), cfg.Record, cfg.Camera, log)
		if err != nil {
			mp.Close()
			return nil, nil, err
		}
		det = rec
	}

	openCamera := func(device int) (capture.Camera, error) {
		return capture.NewCamera(capture.Config{Device: device, Logger: log}), nil
	}
	return det, openCamera, nil
}

// buildAudio opens the speaker. The game keeps running silently when there
// is no usable audio device.
func buildAudio(cfg config.Config, log *zap.SugaredLogger) audio.Player {
	if cfg.Muted {
		return audio.Nop{}
	}
	synth, err := audio.NewSynth(audio.Options{
		AssetDir: cfg.AssetDir,
		Volume:   cfg.Volume,
		Music:    true,
		Logger:   log,
	})
	if err != nil {
		log.Warnw("Audio unavailable, continuing without sound", "error", err)
		return audio.Nop{}
	}
	return synth
}

func runWindow(ctx context.Context, a *app.App, cfg config.Config, log *zap.SugaredLogger) error {
	w, err := render.NewWindow(render.Config{
		Title:    "Gesture Game",
		Width:    cfg.Game.Width,
		Height:   cfg.Game.Height,
		TPS:      cfg.TPS,
		AssetDir: cfg.AssetDir,
		Logger:   log,
	}, a)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		a.Enqueue(quit)
	}()
	return w.Run()
}

// runHeadless drives the loop from a ticker and hands the main goroutine
// to the system tray.
func runHeadless(ctx context.Context, a *app.App) error {
	t := tray.New(a)
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run(ctx)
		t.Quit()
	}()
	t.Run()
	a.Enqueue(quit)
	return <-errCh
}

// notifier keeps a missing dispatcher a nil interface.
func notifier(d *hooks.Dispatcher) app.Notifier {
	if d == nil {
		return nil
	}
	return d
}

func listRecordings(w io.Writer, repo *store.RecordingRepository) error {
	recs, err := repo.List()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCAMERA\tFRAMES\tCREATED")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", r.ID, r.Name, r.Camera, r.Frames, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func deleteRecording(w io.Writer, repo *store.RecordingRepository, id string) error {
	if err := repo.Delete(id); err != nil {
		return fmt.Errorf("delete recording %s: %w", id, err)
	}
	fmt.Fprintf(w, "deleted %s\n", id)
	return nil
}
