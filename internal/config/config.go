// Package config assembles the runtime configuration from defaults, an
// optional .env file, HANDSHOT_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ayusman/handshot/internal/app"
	"github.com/ayusman/handshot/internal/game"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HANDSHOT_"

// Config is the full runtime configuration.
type Config struct {
	Game game.Config
	TPS  int

	// Camera is the capture device index. CameraSet reports whether it was
	// given explicitly; otherwise the persisted choice is used.
	Camera    int
	CameraSet bool

	DataDir    string
	AssetDir   string
	ScriptPath string
	// HooksDir holds event hooks. Empty means <DataDir>/hooks.
	HooksDir string

	LogFile  string
	LogLevel string

	Headless bool
	Preview  bool
	Async    bool
	Muted    bool
	Volume   float64

	// Record names a new recording of every detection.
	Record string
	// Replay is the id of a recording to play back instead of the camera.
	Replay string
	// ListRecordings prints stored recordings and exits.
	ListRecordings bool
	// DeleteRecording is the id of a recording to remove before exiting.
	DeleteRecording string

	// Seed fixes the spawn rng. Zero means time-seeded.
	Seed uint64
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	dataDir := ".handshot"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".handshot")
	}
	return Config{
		Game:     game.DefaultConfig(),
		TPS:      app.DefaultTPS,
		DataDir:  dataDir,
		AssetDir: "assets",
		LogLevel: "info",
	}
}

// HookPath returns the directory searched for event hooks.
func (c Config) HookPath() string {
	if c.HooksDir != "" {
		return c.HooksDir
	}
	return filepath.Join(c.DataDir, "hooks")
}

// DBPath is the SQLite file inside the data directory.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "handshot.db")
}

// Load builds a Config from args (without the program name).
func Load(args []string) (Config, error) {
	envFile := ".env"
	for i, a := range args {
		if (a == "-env" || a == "--env") && i+1 < len(args) {
			envFile = args[i+1]
		}
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Default()
	if err := cfg.overlayEnv(os.Getenv); err != nil {
		return Config{}, err
	}

	set := flag.NewFlagSet("handshot", flag.ContinueOnError)
	set.SetOutput(io.Discard)
	set.String("env", envFile, "dotenv file to load before the environment")
	cfg.bindFlags(set)
	if err := set.Parse(args); err != nil {
		return Config{}, err
	}
	set.Visit(func(f *flag.Flag) {
		if f.Name == "camera" {
			cfg.CameraSet = true
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Usage writes the flag help to w.
func Usage(w io.Writer) {
	cfg := Default()
	set := flag.NewFlagSet("handshot", flag.ContinueOnError)
	set.SetOutput(w)
	set.String("env", ".env", "dotenv file to load before the environment")
	cfg.bindFlags(set)
	set.PrintDefaults()
}

func (c *Config) bindFlags(fs *flag.FlagSet) {
	g := &c.Game
	fs.IntVar(&g.Width, "width", g.Width, "screen width in pixels")
	fs.IntVar(&g.Height, "height", g.Height, "screen height in pixels")
	fs.Float64Var(&g.PlayerSpeed, "speed", g.PlayerSpeed, "player speed")
	fs.DurationVar(&g.BaseCooldown, "cooldown", g.BaseCooldown, "shot cooldown")
	fs.DurationVar(&g.BuffCooldown, "buff-cooldown", g.BuffCooldown, "shot cooldown while powered up")
	fs.DurationVar(&g.BuffDuration, "buff-duration", g.BuffDuration, "power-up duration")
	fs.Float64Var(&g.EnemySpawnChance, "enemy-chance", g.EnemySpawnChance, "enemy spawn probability per tick")
	fs.Float64Var(&g.BeamSpawnChance, "beam-chance", g.BeamSpawnChance, "power beam spawn probability per tick")
	fs.Float64Var(&g.ShootThreshold, "threshold", g.ShootThreshold, "fingertip distance that fires")
	fs.IntVar(&g.StartingLives, "lives", g.StartingLives, "lives per run")
	fs.IntVar(&c.TPS, "tps", c.TPS, "loop iterations per second")

	fs.IntVar(&c.Camera, "camera", c.Camera, "capture device index")
	fs.StringVar(&c.DataDir, "data", c.DataDir, "directory for the database and logs")
	fs.StringVar(&c.AssetDir, "assets", c.AssetDir, "directory holding images/ and audio/")
	fs.StringVar(&c.ScriptPath, "script", c.ScriptPath, "path to mediapipe_service.py")
	fs.StringVar(&c.HooksDir, "hooks", c.HooksDir, "directory of event hooks, default <data>/hooks")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "rotating log file, empty for console only")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")

	fs.BoolVar(&c.Headless, "headless", c.Headless, "run without a window, controlled from the tray")
	fs.BoolVar(&c.Preview, "preview", c.Preview, "show the camera preview with landmarks")
	fs.BoolVar(&c.Async, "async", c.Async, "capture and detect on a separate goroutine")
	fs.BoolVar(&c.Muted, "mute", c.Muted, "disable sound")
	fs.Float64Var(&c.Volume, "volume", c.Volume, "master volume 0..1, 0 for full")

	fs.StringVar(&c.Record, "record", c.Record, "record detections under this name")
	fs.StringVar(&c.Replay, "replay", c.Replay, "replay the recording with this id instead of the camera")
	fs.BoolVar(&c.ListRecordings, "recordings", c.ListRecordings, "list recordings and exit")
	fs.StringVar(&c.DeleteRecording, "delete-recording", c.DeleteRecording, "delete the recording with this id and exit")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "spawn rng seed, 0 for random")
}

// overlayEnv applies HANDSHOT_* variables read through getenv.
func (c *Config) overlayEnv(getenv func(string) string) error {
	e := envReader{getenv: getenv}
	g := &c.Game
	e.asInt("WIDTH", &g.Width)
	e.asInt("HEIGHT", &g.Height)
	e.asFloat("SPEED", &g.PlayerSpeed)
	e.asDuration("COOLDOWN", &g.BaseCooldown)
	e.asDuration("BUFF_COOLDOWN", &g.BuffCooldown)
	e.asDuration("BUFF_DURATION", &g.BuffDuration)
	e.asFloat("ENEMY_CHANCE", &g.EnemySpawnChance)
	e.asFloat("BEAM_CHANCE", &g.BeamSpawnChance)
	e.asFloat("THRESHOLD", &g.ShootThreshold)
	e.asInt("LIVES", &g.StartingLives)
	e.asInt("TPS", &c.TPS)

	if e.asInt("CAMERA", &c.Camera) {
		c.CameraSet = true
	}
	e.asString("DATA_DIR", &c.DataDir)
	e.asString("ASSET_DIR", &c.AssetDir)
	e.asString("SCRIPT", &c.ScriptPath)
	e.asString("HOOKS_DIR", &c.HooksDir)
	e.asString("LOG_FILE", &c.LogFile)
	e.asString("LOG_LEVEL", &c.LogLevel)

	e.asBool("HEADLESS", &c.Headless)
	e.asBool("PREVIEW", &c.Preview)
	e.asBool("ASYNC", &c.Async)
	e.asBool("MUTE", &c.Muted)
	e.asFloat("VOLUME", &c.Volume)

	e.asString("RECORD", &c.Record)
	e.asString("REPLAY", &c.Replay)
	e.asUint("SEED", &c.Seed)
	return e.err
}

// Validate checks the combined configuration.
func (c Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	switch {
	case c.TPS <= 0:
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	case c.Camera < 0:
		return fmt.Errorf("camera index must not be negative, got %d", c.Camera)
	case c.DataDir == "":
		return errors.New("data directory must be set")
	case c.Record != "" && c.Replay != "":
		return errors.New("-record and -replay cannot be combined")
	case c.Async && (c.Record != "" || c.Replay != ""):
		return errors.New("-async cannot be combined with -record or -replay")
	}
	return nil
}

// envReader reads typed HANDSHOT_* values and keeps the first parse error.
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) lookup(key string) (string, bool) {
	v := e.getenv(EnvPrefix + key)
	return v, v != ""
}

func (e *envReader) fail(key, v string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("%s%s=%q: %w", EnvPrefix, key, v, err)
	}
}

func (e *envReader) asString(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e *envReader) asInt(key string, dst *int) bool {
	v, ok := e.lookup(key)
	if !ok {
		return false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return false
	}
	*dst = n
	return true
}

func (e *envReader) asUint(key string, dst *uint64) {
	if v, ok := e.lookup(key); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) asFloat(key string, dst *float64) {
	if v, ok := e.lookup(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = f
	}
}

func (e *envReader) asBool(key string, dst *bool) {
	if v, ok := e.lookup(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (e *envReader) asDuration(key string, dst *time.Duration) {
	if v, ok := e.lookup(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = d
	}
}
