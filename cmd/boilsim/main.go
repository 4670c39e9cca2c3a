//go:build ebiten

package main

import (
	"errors"
	"os"
	"time"

	"boilsim/internal/app"
	"boilsim/internal/audio"
	"boilsim/internal/config"
	"boilsim/internal/control"
	"boilsim/internal/logging"
	"boilsim/internal/remote"
	"boilsim/internal/sims/boiling"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("boilsim", pflag.ExitOnError)
	config.Bind(flags)
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags, ".")
	if err != nil {
		logging.New(logging.Options{}).Fatal().Err(err).Msg("invalid configuration")
	}
	log := logging.New(logging.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON})

	sim := cfg.SimConfig()
	sim.Width = cfg.Width - cfg.HUDWidth
	sim.Height = cfg.Height

	sounds := newSounds(cfg, sim.Params.BoilingPoint, log)
	transport := newTransport(cfg, sim, log)

	ctrl := control.New(control.Options{Sim: sim, FPS: cfg.FPS}, transport, sounds, log)
	if err := transport.Start(ctrl.Inbox()); err != nil {
		log.Warn().Err(err).Msg("server unreachable, falling back to offline mode")
		_ = transport.Close()
		transport = remote.NewLoopback(remote.LoopbackConfig{Sim: sim, PushInterval: cfg.PushInterval}, log)
		ctrl = control.New(control.Options{Sim: sim, FPS: cfg.FPS}, transport, sounds, log)
		if err := transport.Start(ctrl.Inbox()); err != nil {
			log.Fatal().Err(err).Msg("start loopback")
		}
	}

	game := app.New(ctrl, app.Options{
		HUDWidth:      cfg.HUDWidth,
		OnFirstUpdate: sounds.PlayIntro,
	})

	ebiten.SetWindowTitle("boilsim")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(game)

	sounds.PlayOutro()
	if p, ok := sounds.player.(*audio.SpeakerPlayer); ok {
		p.WaitIdle(2 * time.Second)
	}
	if err := transport.Close(); err != nil {
		log.Warn().Err(err).Msg("close transport")
	}
	if err := sounds.Close(); err != nil {
		log.Warn().Err(err).Msg("close audio")
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal().Err(runErr).Msg("run game")
	}
}

type soundSystem struct {
	*audio.Controller
	player audio.Player
}

func newSounds(cfg config.Config, boilingPoint float64, log zerolog.Logger) soundSystem {
	var player audio.Player
	if cfg.AudioEnabled {
		sp, err := audio.NewSpeakerPlayer()
		if err != nil {
			log.Warn().Err(err).Msg("audio unavailable")
		} else {
			player = sp
		}
	}
	return soundSystem{Controller: audio.NewController(player, boilingPoint, log), player: player}
}

func newTransport(cfg config.Config, sim boiling.Config, log zerolog.Logger) remote.Transport {
	if !cfg.UseServer() {
		return remote.NewLoopback(remote.LoopbackConfig{Sim: sim, PushInterval: cfg.PushInterval}, log)
	}
	return remote.NewClient(remote.ClientConfig{URL: cfg.ServerURL}, log)
}
