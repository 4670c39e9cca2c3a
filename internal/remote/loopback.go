package remote

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"boilsim/internal/sims/boiling"
	"boilsim/pkg/core"

	"github.com/rs/zerolog"
)

// LoopbackConfig configures the offline stand-in server.
type LoopbackConfig struct {
	Sim boiling.Config
	// PushInterval is the spacing of unsolicited simulation_update pushes
	// while heating. Zero disables them.
	PushInterval time.Duration
}

// Loopback answers outbound events locally so the client runs without a
// server. It keeps its own heating flag, temperature and a seeded particle
// set; it does not move particles.
type Loopback struct {
	cfg    LoopbackConfig
	logger zerolog.Logger

	mu          sync.Mutex
	inbox       chan<- Event
	heating     bool
	temperature float64
	particles   []boiling.Particle
	started     bool
	closed      bool

	done chan struct{}
	wg   sync.WaitGroup
}

var _ Transport = (*Loopback)(nil)

// NewLoopback seeds the particle set from cfg.Sim.
func NewLoopback(cfg LoopbackConfig, logger zerolog.Logger) *Loopback {
	return &Loopback{
		cfg:         cfg,
		logger:      logger.With().Str("component", "loopback").Logger(),
		temperature: cfg.Sim.Params.MinTemperature,
		particles:   SeedParticles(cfg.Sim),
		done:        make(chan struct{}),
	}
}

// SeedParticles places cfg.Particles particles in the lower half of the
// source vessel with normally distributed velocities.
func SeedParticles(cfg boiling.Config) []boiling.Particle {
	rng := core.NewRNG(cfg.Seed)
	w := float64(cfg.Width)
	h := float64(cfg.Height)
	vesselX := 50.0
	vesselW := w/3 - 50
	vesselY := h/2 - 100
	vesselH := 200.0

	out := make([]boiling.Particle, cfg.Particles)
	for i := range out {
		out[i] = boiling.Particle{
			X:  rng.Uniform(vesselX+10, vesselX+vesselW-10),
			Y:  rng.Uniform(vesselY+vesselH/2, vesselY+vesselH-10),
			VX: rng.Normal(0, 1),
			VY: rng.Normal(0, 1),
		}
	}
	return out
}

// Start records the inbox and begins periodic pushes if configured.
func (l *Loopback) Start(inbox chan<- Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	if l.started {
		return fmt.Errorf("loopback already started")
	}
	l.started = true
	l.inbox = inbox
	if l.cfg.PushInterval > 0 {
		l.wg.Add(1)
		go l.pushLoop(l.cfg.PushInterval)
	}
	l.logger.Info().Int("particles", len(l.particles)).Msg("running without a server")
	return nil
}

// Emit handles an outbound event as the server would.
func (l *Loopback) Emit(eventType string, payload any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	env, err := roundTrip(eventType, payload)
	if err != nil {
		return err
	}
	switch eventType {
	case EventStartHeating:
		l.heating = !l.heating
		l.send(Event{Type: EventHeatingStatus, Payload: HeatingStatus{IsHeating: l.heating}})
	case EventUpdateTemperature:
		msg, err := DecodePayload[UpdateTemperature](env)
		if err != nil || !hasField(env, "temperature") {
			l.logger.Warn().Err(err).Msg("rejecting temperature update")
			l.send(Event{Type: EventError, Payload: ErrorMessage{Message: "Invalid temperature value"}})
			return nil
		}
		p := l.cfg.Sim.Params
		l.temperature = p.ClampTemperature(float64(msg.Temperature))
		l.send(Event{Type: EventSimulationUpdate, Payload: l.snapshot()})
	case EventCalculateEnergy:
		msg, err := DecodePayload[CalculateEnergy](env)
		if err != nil || !hasField(env, "mass") {
			l.logger.Warn().Err(err).Msg("rejecting energy request")
			l.send(Event{Type: EventError, Payload: ErrorMessage{Message: "Invalid mass value"}})
			return nil
		}
		mass := float64(msg.Mass)
		l.send(Event{Type: EventEnergyResult, Payload: EnergyResult{Energy: MassEnergy(mass), Mass: mass, Units: "joules"}})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, eventType)
	}
	return nil
}

// Close stops periodic pushes.
func (l *Loopback) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	close(l.done)
	l.mu.Unlock()
	l.wg.Wait()
	return nil
}

func (l *Loopback) pushLoop(every time.Duration) {
	defer l.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.mu.Lock()
			if l.heating && !l.closed {
				l.send(Event{Type: EventSimulationUpdate, Payload: l.snapshot()})
			}
			l.mu.Unlock()
		}
	}
}

// snapshot copies the state so the receiver may mutate its particles.
func (l *Loopback) snapshot() SimulationUpdate {
	heating := l.heating
	w := float64(l.cfg.Sim.Width)
	h := float64(l.cfg.Sim.Height)
	particles := make([]boiling.Particle, len(l.particles))
	copy(particles, l.particles)
	return SimulationUpdate{
		Temperature: l.temperature,
		IsHeating:   &heating,
		Particles:   particles,
		Condenser: &Condenser{
			StartX: w * 0.3,
			StartY: h * 0.2,
			Length: w * 0.4,
			Angle:  math.Pi / 6,
		},
	}
}

func (l *Loopback) send(ev Event) {
	deliver(l.inbox, ev, l.logger)
}

// roundTrip passes payload through the wire encoding so the loopback sees
// exactly what a server would.
func roundTrip(eventType string, payload any) (Envelope, error) {
	data, err := Encode(eventType, payload)
	if err != nil {
		return Envelope{}, err
	}
	return DecodeEnvelope(data)
}

func hasField(env Envelope, name string) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(env.Payload, &fields); err != nil {
		return false
	}
	_, ok := fields[name]
	return ok
}
