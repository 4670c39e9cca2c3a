// Package config resolves runtime settings from defaults, an optional
// boilsim.yaml, a .env file, BOILSIM_* environment variables and flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"boilsim/internal/sims/boiling"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BOILSIM_SERVER_URL.
const EnvPrefix = "BOILSIM"

// Config holds the resolved application settings.
type Config struct {
	ServerURL    string
	Offline      bool
	PushInterval time.Duration

	Width    int
	Height   int
	HUDWidth int
	TPS      int
	FPS      int

	Seed      int64
	Particles int
	Sim       map[string]string

	AudioEnabled bool

	LogLevel string
	LogJSON  bool
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"server":        "server.url",
	"offline":       "server.offline",
	"push-interval": "server.push_interval",
	"width":         "window.width",
	"height":        "window.height",
	"hud-width":     "hud.width",
	"tps":           "tps",
	"fps":           "fps",
	"seed":          "seed",
	"particles":     "particles",
	"audio":         "audio.enabled",
	"log-level":     "log.level",
	"log-json":      "log.json",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.url", "")
	v.SetDefault("server.offline", false)
	v.SetDefault("server.push_interval", "50ms")
	v.SetDefault("window.width", 1200)
	v.SetDefault("window.height", 600)
	v.SetDefault("hud.width", 280)
	v.SetDefault("tps", 60)
	v.SetDefault("fps", 60)
	v.SetDefault("seed", 1337)
	v.SetDefault("particles", 100)
	v.SetDefault("audio.enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// Bind registers the command-line flags on flags. Flag defaults mirror the
// config defaults but only explicitly set flags override other sources.
func Bind(flags *pflag.FlagSet) {
	flags.String("server", "", "simulation server websocket URL (empty runs offline)")
	flags.Bool("offline", false, "ignore the server and answer events locally")
	flags.Duration("push-interval", 50*time.Millisecond, "offline push interval while heating")
	flags.Int("width", 1200, "initial window width in pixels")
	flags.Int("height", 600, "initial window height in pixels")
	flags.Int("hud-width", 280, "width of the control panel in pixels")
	flags.Int("tps", 60, "ticks per second")
	flags.Int("fps", 60, "simulation frame rate")
	flags.Int64("seed", 1337, "seed for offline particle placement")
	flags.Int("particles", 100, "particle count for offline mode")
	flags.Bool("audio", true, "enable sound")
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error, off)")
	flags.Bool("log-json", false, "emit JSON logs instead of console output")
	flags.StringToString("sim", nil, "model overrides, e.g. heat_step=0.2,level_smoothing=0.02")
}

// Load resolves the configuration. dir is searched for .env and
// boilsim.{yaml,json,toml}; both are optional. flags may be nil.
func Load(flags *pflag.FlagSet, dir string) (Config, error) {
	if dir == "" {
		dir = "."
	}
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("boilsim")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	sim := map[string]string{}
	for k, val := range v.GetStringMapString("sim") {
		sim[k] = val
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if f := flags.Lookup("sim"); f != nil && f.Changed {
			overrides, err := flags.GetStringToString("sim")
			if err != nil {
				return Config{}, fmt.Errorf("parse --sim: %w", err)
			}
			for k, val := range overrides {
				sim[k] = val
			}
		}
	}

	cfg := Config{
		ServerURL:    strings.TrimSpace(v.GetString("server.url")),
		Offline:      v.GetBool("server.offline"),
		PushInterval: v.GetDuration("server.push_interval"),
		Width:        v.GetInt("window.width"),
		Height:       v.GetInt("window.height"),
		HUDWidth:     v.GetInt("hud.width"),
		TPS:          v.GetInt("tps"),
		FPS:          v.GetInt("fps"),
		Seed:         v.GetInt64("seed"),
		Particles:    v.GetInt("particles"),
		Sim:          sim,
		AudioEnabled: v.GetBool("audio.enabled"),
		LogLevel:     v.GetString("log.level"),
		LogJSON:      v.GetBool("log.json"),
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the client cannot run with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.HUDWidth < 0 || c.HUDWidth >= c.Width {
		return fmt.Errorf("hud width %d must be in [0,%d)", c.HUDWidth, c.Width)
	}
	if c.TPS <= 0 || c.FPS <= 0 {
		return fmt.Errorf("tps and fps must be positive, got %d/%d", c.TPS, c.FPS)
	}
	if c.Particles < 0 {
		return fmt.Errorf("particle count must not be negative, got %d", c.Particles)
	}
	return nil
}

// UseServer reports whether a websocket server should be dialled.
func (c Config) UseServer() bool {
	return c.ServerURL != "" && !c.Offline
}

// SimConfig builds the model configuration from the sim overrides and the
// top-level seed and particle count.
func (c Config) SimConfig() boiling.Config {
	sc := boiling.FromMap(c.Sim)
	sc.Seed = c.Seed
	sc.Particles = c.Particles
	return sc
}
