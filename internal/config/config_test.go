package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("boilsim", pflag.ContinueOnError)
	Bind(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newFlags(t), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", cfg.ServerURL)
	assert.False(t, cfg.UseServer())
	assert.Equal(t, 50*time.Millisecond, cfg.PushInterval)
	assert.Equal(t, 1200, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, 280, cfg.HUDWidth)
	assert.Equal(t, 60, cfg.TPS)
	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, int64(1337), cfg.Seed)
	assert.Equal(t, 100, cfg.Particles)
	assert.True(t, cfg.AudioEnabled)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Sim)
}

func TestLoad_ConfigFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  url: ws://localhost:5000/ws
window:
  width: 1000
log:
  level: debug
sim:
  heat_step: "0.2"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boilsim.yaml"), []byte(yaml), 0644))

	cfg, err := Load(newFlags(t, "--width=900", "--sim=level_smoothing=0.02"), dir)
	require.NoError(t, err)

	assert.Equal(t, "ws://localhost:5000/ws", cfg.ServerURL)
	assert.True(t, cfg.UseServer())
	assert.Equal(t, 900, cfg.Width, "flags win over the config file")
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, map[string]string{"heat_step": "0.2", "level_smoothing": "0.02"}, cfg.Sim)

	sc := cfg.SimConfig()
	assert.Equal(t, 0.2, sc.Params.HeatStep)
	assert.Equal(t, 0.02, sc.Params.LevelSmoothing)
	assert.Equal(t, int64(1337), sc.Seed)
}

func TestLoad_DotEnvAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BOILSIM_HUD_WIDTH=320\n"), 0644))
	t.Setenv("BOILSIM_HUD_WIDTH", "")
	os.Unsetenv("BOILSIM_HUD_WIDTH")
	t.Setenv("BOILSIM_SERVER_OFFLINE", "true")
	t.Setenv("BOILSIM_SERVER_URL", "ws://example.invalid/ws")

	cfg, err := Load(nil, dir)
	require.NoError(t, err)

	assert.Equal(t, 320, cfg.HUDWidth)
	assert.True(t, cfg.Offline)
	assert.False(t, cfg.UseServer())
}

func TestLoad_RejectsInvalid(t *testing.T) {
	_, err := Load(newFlags(t, "--hud-width=5000"), t.TempDir())
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boilsim.yaml"), []byte("window: [unclosed"), 0644))
	_, err = Load(nil, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
