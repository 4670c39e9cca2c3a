// Package control owns the client-side simulation state. It reconciles
// server pushes, extrapolates the local model between them and turns user
// intents into outbound events.
package control

import (
	"fmt"
	"time"

	"boilsim/internal/core"
	"boilsim/internal/remote"
	"boilsim/internal/sims/boiling"

	"github.com/rs/zerolog"
)

// AutoStopMessage is shown when the ramp hits the maximum temperature.
const AutoStopMessage = "Heating automatically stopped - maximum temperature reached"

const defaultInboxSize = 256

// Emitter sends outbound events. remote.Transport satisfies it.
type Emitter interface {
	Emit(eventType string, payload any) error
}

// Sounds is the subset of the audio controller the simulation drives.
type Sounds interface {
	PlayTransition()
	StopIntro()
	UpdateBubbling(temperature float64)
	ToggleMute() bool
	Muted() bool
}

// State is everything the display needs. The controller is its only writer.
type State struct {
	Thermal   boiling.Thermal
	Levels    boiling.Levels
	Particles []boiling.Particle
	Condenser *remote.Condenser

	// Slider is the whole-degree temperature control value; SliderActive is
	// set while the user holds it.
	Slider       int
	SliderActive bool
	Readout      string

	Info    []string
	Message string

	Mass   int
	Energy string

	LabelsVisible  bool
	CollectedWater int
	HasCollected   bool

	// AutoStopped latches once the ramp has asked the server to stop at the
	// maximum temperature. It clears on the next heating transition.
	AutoStopped bool
}

// Options configures a Controller.
type Options struct {
	Sim       boiling.Config
	FPS       int
	InboxSize int
}

// Controller runs on the frame loop goroutine. Transports only touch it
// through Inbox.
type Controller struct {
	params boiling.Params
	state  State
	canvas core.Size

	out    Emitter
	sounds Sounds
	logger zerolog.Logger

	inbox chan remote.Event
	gate  *core.FrameGate
	ramp  *core.Interval
}

// New builds a controller in the idle baseline state.
func New(opts Options, out Emitter, sounds Sounds, logger zerolog.Logger) *Controller {
	if sounds == nil {
		sounds = nopSounds{}
	}
	size := opts.InboxSize
	if size <= 0 {
		size = defaultInboxSize
	}
	p := opts.Sim.Params
	c := &Controller{
		params: p,
		canvas: core.Size{W: opts.Sim.Width, H: opts.Sim.Height},
		out:    out,
		sounds: sounds,
		logger: logger.With().Str("component", "control").Logger(),
		inbox:  make(chan remote.Event, size),
		gate:   core.NewFrameGate(opts.FPS),
		ramp:   core.NewInterval(p.HeatInterval),
	}
	c.state.Thermal = p.NewThermal()
	c.state.Levels = p.BaselineLevels()
	c.showTemperature(c.state.Thermal.Temperature)
	c.rebuildInfo(c.state.Thermal.Temperature)
	return c
}

// Inbox is where transports deliver inbound events.
func (c *Controller) Inbox() chan<- remote.Event { return c.inbox }

// Params returns the model constants in use.
func (c *Controller) Params() boiling.Params { return c.params }

// State returns a view of the current state. The particle slice is shared
// and must not be retained across steps.
func (c *Controller) State() State { return c.state }

// SetCanvas sets the drawing surface size used for particle reclassification.
func (c *Controller) SetCanvas(size core.Size) {
	if size.Empty() {
		return
	}
	c.canvas = size
}

// Canvas returns the drawing surface size.
func (c *Controller) Canvas() core.Size { return c.canvas }

// RampRunning reports whether the heating ramp is scheduled.
func (c *Controller) RampRunning() bool { return c.ramp.Running() }

// Step drains the inbox, runs due heating-ramp ticks and, when the frame
// gate allows, advances the local model by one frame. It reports whether a
// frame ran.
func (c *Controller) Step(now time.Time) bool {
	c.drain(now)
	for n := c.ramp.Due(now); n > 0; n-- {
		c.rampTick()
	}
	if !c.gate.Ready(now) {
		return false
	}
	c.frame()
	return true
}

func (c *Controller) drain(now time.Time) {
	for {
		select {
		case ev := <-c.inbox:
			c.Reconcile(ev, now)
		default:
			return
		}
	}
}

// Reconcile applies one inbound event.
func (c *Controller) Reconcile(ev remote.Event, now time.Time) {
	switch msg := ev.Payload.(type) {
	case remote.HeatingStatus:
		c.applyHeatingStatus(msg, now)
	case remote.SimulationUpdate:
		c.applyUpdate(msg)
	case remote.EnergyResult:
		c.state.Energy = fmt.Sprintf("%s Joules", msg.Energy.Scientific)
	case remote.ErrorMessage:
		c.logger.Warn().Str("message", msg.Message).Msg("server rejected request")
		c.setMessage(msg.Message)
	default:
		c.logger.Debug().Str("event", ev.Type).Msg("ignoring event")
	}
}

func (c *Controller) applyHeatingStatus(msg remote.HeatingStatus, now time.Time) {
	s := &c.state
	was := s.Thermal.Heating
	s.Thermal.Heating = msg.IsHeating
	if was != msg.IsHeating {
		c.sounds.PlayTransition()
		if msg.IsHeating {
			c.sounds.StopIntro()
		}
		s.AutoStopped = false
	}
	if !msg.IsHeating {
		s.Thermal.Temperature = c.params.MinTemperature
		c.ramp.Stop()
		c.showTemperature(c.params.MinTemperature)
		c.sounds.UpdateBubbling(c.params.MinTemperature)
		return
	}
	c.ramp.Start(now)
}

func (c *Controller) applyUpdate(msg remote.SimulationUpdate) {
	s := &c.state
	s.Particles = msg.Particles
	if msg.Condenser != nil {
		s.Condenser = msg.Condenser
	}
	if msg.CollectedWater != nil {
		s.CollectedWater = *msg.CollectedWater
		s.HasCollected = true
	}
	t := c.params.ClampTemperature(msg.Temperature)
	rounded := float64(boiling.RoundHalfUp(t))
	if !s.SliderActive {
		s.Thermal.Temperature = t
		c.showTemperature(rounded)
	}
	c.sounds.UpdateBubbling(rounded)
	s.Message = ""
	c.rebuildInfo(t)
}

// rampTick is one heating-ramp interval callback.
func (c *Controller) rampTick() {
	s := &c.state
	if !s.Thermal.Heating || s.Thermal.Temperature >= c.params.MaxTemperature {
		return
	}
	c.params.AdvanceHeating(&s.Thermal)
	if s.SliderActive {
		return
	}
	c.showTemperature(s.Thermal.Temperature)
	c.emit(remote.EventUpdateTemperature, remote.UpdateTemperature{Temperature: remote.Number(s.Thermal.Temperature)})
}

// frame is one render-rate model update.
func (c *Controller) frame() {
	s := &c.state
	p := c.params
	p.AdvanceCooling(&s.Thermal)
	p.StepLevels(&s.Levels, s.Thermal)
	if s.Thermal.Heating {
		p.Reclassify(s.Particles, s.Thermal.Temperature, s.Levels.Left, float64(c.canvas.H))
		if s.Thermal.Temperature >= p.MaxTemperature && !s.AutoStopped {
			s.AutoStopped = true
			c.emit(remote.EventStartHeating, remote.StartHeating{})
			c.rebuildInfo(s.Thermal.Temperature)
			c.setMessage(AutoStopMessage)
		}
	}
	if !s.SliderActive {
		c.showTemperature(s.Thermal.Temperature)
	}
}

// ToggleHeating asks the server to flip heating. The local state changes
// only when heating_status arrives.
func (c *Controller) ToggleHeating() {
	c.sounds.PlayTransition()
	c.emit(remote.EventStartHeating, remote.StartHeating{})
}

// SetTemperature applies a temperature chosen by the user and forwards it.
func (c *Controller) SetTemperature(t float64) {
	t = c.params.ClampTemperature(t)
	c.state.Thermal.Temperature = t
	c.showTemperature(t)
	c.emit(remote.EventUpdateTemperature, remote.UpdateTemperature{Temperature: remote.Number(t)})
	c.sounds.UpdateBubbling(t)
}

// SetMass stores the mass in grams and requests its rest energy.
func (c *Controller) SetMass(grams int) {
	if grams < 0 {
		grams = 0
	}
	c.state.Mass = grams
	c.RequestEnergy()
}

// RequestEnergy asks for the rest energy of the current mass.
func (c *Controller) RequestEnergy() {
	c.emit(remote.EventCalculateEnergy, remote.CalculateEnergy{Mass: remote.Number(c.state.Mass)})
}

// BeginGesture marks the temperature control as held. While held, server
// echoes and the ramp do not overwrite the displayed value.
func (c *Controller) BeginGesture(key string) {
	if key == keyTemperature {
		c.state.SliderActive = true
	}
}

// EndGesture releases the temperature control.
func (c *Controller) EndGesture(key string) {
	if key == keyTemperature {
		c.state.SliderActive = false
	}
}

// ToggleLabels flips the labels overlay and returns the new visibility.
func (c *Controller) ToggleLabels() bool {
	c.state.LabelsVisible = !c.state.LabelsVisible
	return c.state.LabelsVisible
}

// ToggleMute flips the audio mute state.
func (c *Controller) ToggleMute() bool { return c.sounds.ToggleMute() }

// Muted reports the audio mute state.
func (c *Controller) Muted() bool { return c.sounds.Muted() }

// InfoLines returns the info panel text, message last.
func (c *Controller) InfoLines() []string {
	lines := append([]string(nil), c.state.Info...)
	if c.state.Message != "" {
		lines = append(lines, "", c.state.Message)
	}
	return lines
}

func (c *Controller) showTemperature(t float64) {
	c.state.Slider = boiling.RoundHalfUp(t)
	c.state.Readout = boiling.FormatTemperature(t)
}

func (c *Controller) rebuildInfo(t float64) {
	s := &c.state
	lines := c.params.Summary(t, s.Levels)
	lines = append(lines, fmt.Sprintf("Evaporation rate: %.4f", c.params.TransferRate(t)))
	if s.HasCollected {
		lines = append(lines, fmt.Sprintf("Collected water: %d", s.CollectedWater))
	}
	s.Info = lines
}

func (c *Controller) setMessage(msg string) {
	c.state.Message = msg
}

func (c *Controller) emit(eventType string, payload any) {
	if c.out == nil {
		return
	}
	if err := c.out.Emit(eventType, payload); err != nil {
		c.logger.Warn().Err(err).Str("event", eventType).Msg("emit failed")
	}
}

type nopSounds struct{}

func (nopSounds) PlayTransition()        {}
func (nopSounds) StopIntro()             {}
func (nopSounds) UpdateBubbling(float64) {}
func (nopSounds) ToggleMute() bool       { return false }
func (nopSounds) Muted() bool            { return false }
