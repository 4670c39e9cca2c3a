// Package audio drives the simulation's sound cues: bubbling while the water
// boils, a transition cue on heating changes, and intro and outro jingles.
package audio

import (
	"math"

	"github.com/rs/zerolog"
)

// Channel identifies one of the fixed sound sources.
type Channel int

const (
	Bubbling Channel = iota
	Transition
	Intro
	Outro
)

// Channels lists every channel in a stable order.
var Channels = []Channel{Bubbling, Transition, Intro, Outro}

func (c Channel) String() string {
	switch c {
	case Bubbling:
		return "bubbling"
	case Transition:
		return "transition"
	case Intro:
		return "intro"
	case Outro:
		return "outro"
	default:
		return "unknown"
	}
}

// DefaultVolumes are the initial linear volumes per channel.
var DefaultVolumes = map[Channel]float64{
	Bubbling:   0.3,
	Transition: 0.4,
	Intro:      0.5,
	Outro:      0.5,
}

// Player is a sound backend. Start resumes a channel, or restarts it when
// fromStart is set or it already finished. Stop pauses it, rewinding when
// asked. Volumes are linear in [0,1].
type Player interface {
	Start(ch Channel, fromStart bool) error
	Stop(ch Channel, rewind bool)
	SetVolume(ch Channel, v float64)
	Close() error
}

// Controller applies the cue rules on top of a Player. Playback failures are
// logged and swallowed.
type Controller struct {
	player  Player
	logger  zerolog.Logger
	boiling float64

	muted       bool
	isBoiling   bool
	introPlayed bool

	volumes map[Channel]float64
	saved   map[Channel]float64
}

// NewController sets the initial channel volumes on player. A nil player
// yields a silent controller.
func NewController(player Player, boilingPoint float64, logger zerolog.Logger) *Controller {
	if player == nil {
		player = NopPlayer{}
	}
	c := &Controller{
		player:  player,
		logger:  logger.With().Str("component", "audio").Logger(),
		boiling: boilingPoint,
		volumes: map[Channel]float64{},
		saved:   map[Channel]float64{},
	}
	for _, ch := range Channels {
		c.volumes[ch] = DefaultVolumes[ch]
		c.saved[ch] = DefaultVolumes[ch]
		player.SetVolume(ch, DefaultVolumes[ch])
	}
	return c
}

// Muted reports the mute state.
func (c *Controller) Muted() bool { return c.muted }

// Boiling reports whether the bubbling loop is considered active.
func (c *Controller) Boiling() bool { return c.isBoiling }

// Volume returns the current applied volume of a channel.
func (c *Controller) Volume(ch Channel) float64 { return c.volumes[ch] }

// ToggleMute silences every channel, remembering its volume, or restores the
// remembered volumes. Muting also pauses bubbling and stops the intro.
func (c *Controller) ToggleMute() bool {
	c.muted = !c.muted
	for _, ch := range Channels {
		if c.muted {
			c.saved[ch] = c.volumes[ch]
			c.setVolume(ch, 0)
		} else {
			c.setVolume(ch, c.saved[ch])
		}
	}
	if c.muted {
		if c.isBoiling {
			c.player.Stop(Bubbling, false)
		}
		c.StopIntro()
	} else if c.isBoiling {
		c.start(Bubbling, false)
	}
	return c.muted
}

// PlayIntro plays the intro once per session.
func (c *Controller) PlayIntro() {
	if c.muted || c.introPlayed {
		return
	}
	c.start(Intro, true)
	c.introPlayed = true
}

// StopIntro halts and rewinds the intro.
func (c *Controller) StopIntro() {
	c.player.Stop(Intro, true)
}

// PlayTransition restarts the transition cue.
func (c *Controller) PlayTransition() {
	if c.muted {
		return
	}
	c.start(Transition, true)
}

// PlayOutro restarts the outro cue.
func (c *Controller) PlayOutro() {
	if c.muted {
		return
	}
	c.start(Outro, true)
}

// UpdateBubbling starts the bubbling loop on reaching the boiling point and
// stops it below. Loudness ramps in from 70°C and peaks 30 degrees later.
func (c *Controller) UpdateBubbling(temperature float64) {
	nowBoiling := temperature >= c.boiling
	switch {
	case nowBoiling && !c.isBoiling && !c.muted:
		c.start(Bubbling, false)
		c.isBoiling = true
	case !nowBoiling && c.isBoiling:
		c.player.Stop(Bubbling, true)
		c.isBoiling = false
	}

	if temperature > 70 {
		c.setBubblingVolume(math.Min((temperature-70)/30, 1) * DefaultVolumes[Bubbling])
		return
	}
	c.setBubblingVolume(0)
	c.player.Stop(Bubbling, true)
	c.isBoiling = false
}

// Close releases the backend.
func (c *Controller) Close() error {
	return c.player.Close()
}

// setBubblingVolume applies v, or only remembers it while muted.
func (c *Controller) setBubblingVolume(v float64) {
	if c.muted {
		c.saved[Bubbling] = v
		return
	}
	c.setVolume(Bubbling, v)
}

func (c *Controller) setVolume(ch Channel, v float64) {
	c.volumes[ch] = v
	c.player.SetVolume(ch, v)
}

func (c *Controller) start(ch Channel, fromStart bool) {
	if err := c.player.Start(ch, fromStart); err != nil {
		c.logger.Warn().Err(err).Stringer("channel", ch).Msg("audio playback prevented")
	}
}

// NopPlayer discards everything.
type NopPlayer struct{}

func (NopPlayer) Start(Channel, bool) error  { return nil }
func (NopPlayer) Stop(Channel, bool)         {}
func (NopPlayer) SetVolume(Channel, float64) {}
func (NopPlayer) Close() error               { return nil }
