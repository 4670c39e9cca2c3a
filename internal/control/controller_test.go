package control

import (
	"testing"
	"time"

	"boilsim/internal/remote"
	"boilsim/internal/sims/boiling"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	Type    string
	Payload any
}

type recordingEmitter struct {
	events []sent
}

func (r *recordingEmitter) Emit(eventType string, payload any) error {
	r.events = append(r.events, sent{Type: eventType, Payload: payload})
	return nil
}

func (r *recordingEmitter) count(eventType string) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}

type fakeSounds struct {
	transitions int
	introStops  int
	bubbling    []float64
	muted       bool
}

func (f *fakeSounds) PlayTransition()          { f.transitions++ }
func (f *fakeSounds) StopIntro()               { f.introStops++ }
func (f *fakeSounds) UpdateBubbling(t float64) { f.bubbling = append(f.bubbling, t) }
func (f *fakeSounds) ToggleMute() bool         { f.muted = !f.muted; return f.muted }
func (f *fakeSounds) Muted() bool              { return f.muted }

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestController(t *testing.T) (*Controller, *recordingEmitter, *fakeSounds) {
	t.Helper()
	out := &recordingEmitter{}
	sounds := &fakeSounds{}
	cfg := boiling.DefaultConfig()
	c := New(Options{Sim: cfg, FPS: 60}, out, sounds, zerolog.Nop())
	return c, out, sounds
}

func heating(on bool) remote.Event {
	return remote.Event{Type: remote.EventHeatingStatus, Payload: remote.HeatingStatus{IsHeating: on}}
}

func update(temp float64, particles ...boiling.Particle) remote.Event {
	return remote.Event{Type: remote.EventSimulationUpdate, Payload: remote.SimulationUpdate{Temperature: temp, Particles: particles}}
}

func TestNewStartsAtBaseline(t *testing.T) {
	c, _, _ := newTestController(t)
	s := c.State()

	assert.Equal(t, 25.0, s.Thermal.Temperature)
	assert.False(t, s.Thermal.Heating)
	assert.Equal(t, boiling.Levels{Left: 0.7, Right: 0}, s.Levels)
	assert.Equal(t, "25°C / 77°F", s.Readout)
	assert.Equal(t, 25, s.Slider)
	assert.Equal(t, "Pre-boiling phase", s.Info[1])
	assert.False(t, c.RampRunning())
}

func TestUpperHalfTurnsToVaporAtBoiling(t *testing.T) {
	c, _, _ := newTestController(t)
	h := float64(c.Canvas().H)

	c.Inbox() <- heating(true)
	c.Inbox() <- update(100,
		boiling.Particle{X: 100, Y: h/2 - 20, VX: 1, VY: -1},
		boiling.Particle{X: 100, Y: h - 5, VX: 1, VY: 1, IsVapor: true},
	)
	require.True(t, c.Step(t0))

	s := c.State()
	assert.True(t, s.Particles[0].IsVapor)
	assert.False(t, s.Particles[0].IsCondensed)
	assert.False(t, s.Particles[1].IsVapor, "submerged particle returns to liquid")

	target := c.Params().TargetLevels(100)
	assert.InDelta(t, 0.7*(1-75.0/125.0), target.Left, 1e-12)
	assert.Less(t, s.Levels.Left, 0.7)
	assert.Greater(t, s.Levels.Left, target.Left)
}

func TestHeatingOffResetsTemperature(t *testing.T) {
	c, _, sounds := newTestController(t)

	c.Reconcile(heating(true), t0)
	c.Reconcile(update(80), t0)
	require.Equal(t, 80.0, c.State().Thermal.Temperature)
	require.True(t, c.RampRunning())

	c.Reconcile(heating(false), t0)

	s := c.State()
	assert.Equal(t, 25.0, s.Thermal.Temperature)
	assert.Equal(t, 25, s.Slider)
	assert.Equal(t, "25°C / 77°F", s.Readout)
	assert.False(t, c.RampRunning())
	assert.Equal(t, 2, sounds.transitions)
	assert.Equal(t, 1, sounds.introStops)
	assert.Equal(t, 25.0, sounds.bubbling[len(sounds.bubbling)-1])
}

func TestRepeatedHeatingStatusIsIdempotent(t *testing.T) {
	c, _, sounds := newTestController(t)

	c.Reconcile(heating(true), t0)
	c.Reconcile(heating(true), t0.Add(30*time.Millisecond))

	assert.Equal(t, 1, sounds.transitions)
	assert.Equal(t, 1, c.ramp.Due(t0.Add(50*time.Millisecond)), "second start must not reschedule")
}

func TestRampEmitsTemperature(t *testing.T) {
	c, out, _ := newTestController(t)
	c.Reconcile(heating(true), t0)

	c.Step(t0.Add(50 * time.Millisecond))
	c.Step(t0.Add(100 * time.Millisecond))

	require.Equal(t, 2, out.count(remote.EventUpdateTemperature))
	last := out.events[len(out.events)-1].Payload.(remote.UpdateTemperature)
	assert.InDelta(t, 25.2, float64(last.Temperature), 1e-9)
	assert.InDelta(t, 25.2, c.State().Thermal.Temperature, 1e-9)
}

func TestAutoStopAtMaximumFiresOnce(t *testing.T) {
	c, out, _ := newTestController(t)
	c.Reconcile(heating(true), t0)
	c.Reconcile(update(149.9), t0)

	now := t0
	for i := 0; i < 10; i++ {
		now = now.Add(50 * time.Millisecond)
		c.Step(now)
	}

	assert.Equal(t, 150.0, c.State().Thermal.Temperature)
	assert.Equal(t, 1, out.count(remote.EventStartHeating))
	assert.True(t, c.State().AutoStopped)
	assert.Contains(t, c.InfoLines(), AutoStopMessage)

	c.Reconcile(heating(false), now)
	assert.False(t, c.State().AutoStopped)
}

func TestGestureHoldsLocalTemperature(t *testing.T) {
	c, out, _ := newTestController(t)
	c.Reconcile(heating(true), t0)

	c.BeginGesture("temperature")
	c.SetTemperature(120)
	require.Equal(t, 1, out.count(remote.EventUpdateTemperature))

	c.Reconcile(update(60), t0)
	assert.Equal(t, 120.0, c.State().Thermal.Temperature)
	assert.Equal(t, 120, c.State().Slider)

	c.Step(t0.Add(50 * time.Millisecond))
	assert.Equal(t, 1, out.count(remote.EventUpdateTemperature), "ramp stays quiet during a gesture")

	c.EndGesture("temperature")
	c.Reconcile(update(60), t0)
	assert.Equal(t, 60.0, c.State().Thermal.Temperature)
	assert.Equal(t, "60°C / 140°F", c.State().Readout)
}

func TestCoolingNeverBelowMinimum(t *testing.T) {
	c, _, _ := newTestController(t)
	c.SetTemperature(90)

	now := t0
	prev := c.State().Thermal.Temperature
	for i := 0; i < 500; i++ {
		now = now.Add(20 * time.Millisecond)
		c.Step(now)
		cur := c.State().Thermal.Temperature
		require.LessOrEqual(t, cur, prev)
		require.GreaterOrEqual(t, cur, 25.0)
		prev = cur
	}
	assert.Equal(t, 25.0, prev)
	assert.Equal(t, "25°C / 77°F", c.State().Readout)
}

func TestFrameGateSkipsEarlyCalls(t *testing.T) {
	c, _, _ := newTestController(t)

	assert.True(t, c.Step(t0))
	assert.False(t, c.Step(t0.Add(5*time.Millisecond)))
	assert.True(t, c.Step(t0.Add(17*time.Millisecond)))
}

func TestEnergyAndErrorEvents(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Reconcile(update(40), t0)

	c.Reconcile(remote.Event{Type: remote.EventEnergyResult, Payload: remote.EnergyResult{Energy: remote.MassEnergy(1)}}, t0)
	assert.Equal(t, "8.99e+13 Joules", c.State().Energy)
	assert.NotEmpty(t, c.State().Info, "energy results leave the info panel alone")

	c.Reconcile(remote.Event{Type: remote.EventError, Payload: remote.ErrorMessage{Message: "Invalid mass value"}}, t0)
	lines := c.InfoLines()
	assert.Equal(t, "Invalid mass value", lines[len(lines)-1])

	c.Reconcile(update(40), t0)
	assert.NotContains(t, c.InfoLines(), "Invalid mass value")
}

func TestCollectedWaterShownWhenReported(t *testing.T) {
	c, _, _ := newTestController(t)
	n := 12
	c.Reconcile(remote.Event{Type: remote.EventSimulationUpdate, Payload: remote.SimulationUpdate{Temperature: 105, CollectedWater: &n}}, t0)

	lines := c.InfoLines()
	assert.Equal(t, "Boiling at 105°C / 221°F!", lines[0])
	assert.Contains(t, lines, "Collected water: 12")
}

func TestIntentsEmitEvents(t *testing.T) {
	c, out, sounds := newTestController(t)

	c.ToggleHeating()
	assert.Equal(t, 1, sounds.transitions)
	assert.False(t, c.State().Thermal.Heating, "heating waits for the server")

	assert.True(t, c.SetIntParameter("mass", 5))
	assert.False(t, c.SetIntParameter("mass", -1))
	assert.False(t, c.SetIntParameter("nope", 1))

	require.Len(t, out.events, 2)
	assert.Equal(t, remote.EventStartHeating, out.events[0].Type)
	assert.Equal(t, remote.CalculateEnergy{Mass: 5}, out.events[1].Payload)
}

func TestActionsReflectState(t *testing.T) {
	c, _, _ := newTestController(t)

	assert.Equal(t, "Start Heating", c.Actions()[0].Label)
	c.Reconcile(heating(true), t0)
	assert.Equal(t, "Stop Heating", c.Actions()[0].Label)

	assert.True(t, c.TriggerAction(ActionLabels))
	assert.True(t, c.State().LabelsVisible)
	assert.Equal(t, "Hide Labels", c.Actions()[2].Label)

	assert.True(t, c.TriggerAction(ActionMute))
	assert.Equal(t, "Unmute", c.Actions()[3].Label)
	assert.False(t, c.TriggerAction("bogus"))
}

func TestLoopbackRoundTrip(t *testing.T) {
	cfg := boiling.DefaultConfig()
	cfg.Particles = 16
	lb := remote.NewLoopback(remote.LoopbackConfig{Sim: cfg}, zerolog.Nop())
	c := New(Options{Sim: cfg, FPS: 60}, lb, nil, zerolog.Nop())
	require.NoError(t, lb.Start(c.Inbox()))
	t.Cleanup(func() { _ = lb.Close() })

	c.ToggleHeating()
	c.Step(t0)
	require.True(t, c.State().Thermal.Heating)

	now := t0
	for i := 0; i < 20; i++ {
		now = now.Add(50 * time.Millisecond)
		c.Step(now)
	}
	s := c.State()
	assert.Len(t, s.Particles, 16)
	assert.InDelta(t, 27.0, s.Thermal.Temperature, 0.11)
	assert.NotNil(t, s.Condenser)
	assert.False(t, s.HasCollected)
	for _, line := range s.Info {
		assert.NotContains(t, line, "Collected water")
	}

	c.SetMass(2)
	c.Step(now.Add(time.Millisecond))
	assert.Equal(t, "1.80e+14 Joules", c.State().Energy)

	c.ToggleHeating()
	c.Step(now.Add(2 * time.Millisecond))
	assert.False(t, c.State().Thermal.Heating)
	assert.Equal(t, 25.0, c.State().Thermal.Temperature)
}
