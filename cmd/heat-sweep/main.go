package main

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"boilsim/internal/control"
	"boilsim/internal/core"
	"boilsim/internal/logging"
	"boilsim/internal/remote"
	"boilsim/internal/sims/boiling"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

type paramSet struct {
	heatStep       float64
	levelSmoothing float64
	relaxThreshold float64
	vaporBoostSpan float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("heatStep=%.2f smoothing=%.3f relax=%.0f boostSpan=%.0f",
		p.heatStep, p.levelSmoothing, p.relaxThreshold, p.vaporBoostSpan)
}

type scenarioResult struct {
	params        paramSet
	boilFrame     int
	stopFrame     int
	transferred   float64
	rightPercent  float64
	vaporPeak     int
	updates       int
	relaxedFrames int
}

func main() {
	seconds := pflag.Float64("seconds", 120, "simulated seconds per scenario")
	cooldown := pflag.Float64("cooldown", 30, "simulated seconds after auto-stop")
	workers := pflag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	particles := pflag.Int("particles", 100, "particles seeded per scenario")
	logLevel := pflag.String("log-level", "warn", "log level")
	pflag.Parse()

	logger := logging.New(logging.Options{Level: *logLevel})

	base := boiling.DefaultConfig()
	base.Particles = *particles

	heatOptions := []float64{0.05, 0.1, 0.2}
	smoothingOptions := []float64{0.005, 0.01, 0.02}
	relaxOptions := []float64{26, 30}
	boostOptions := []float64{25, 50, 100}

	var sets []paramSet
	for _, heat := range heatOptions {
		for _, smoothing := range smoothingOptions {
			for _, relax := range relaxOptions {
				for _, boost := range boostOptions {
					sets = append(sets, paramSet{
						heatStep:       heat,
						levelSmoothing: smoothing,
						relaxThreshold: relax,
						vaporBoostSpan: boost,
					})
				}
			}
		}
	}

	frames := int(*seconds * 60)
	cool := int(*cooldown * 60)
	fmt.Printf("Sweeping %d parameter sets (%d workers, %d frames)\n", len(sets), *workers, frames)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params, frames, cool, logger)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.stopFrame < 0 {
			fmt.Printf("Never reached the maximum in %d frames with %s\n", frames, res.params)
		}
		all = append(all, res)
	}
	if len(all) == 0 {
		fmt.Fprintln(os.Stderr, "no scenarios ran")
		os.Exit(1)
	}

	sort.Slice(all, func(i, j int) bool { return better(all[i], all[j]) })
	elapsed := time.Since(start)

	fmt.Printf("\nTop 5 results (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		fmt.Printf("%2d) %s\n", i+1, describe(all[i]))
	}
	fmt.Printf("\nBest overall: %s\n", describe(all[0]))
}

func describe(res scenarioResult) string {
	return fmt.Sprintf("boil=%s stop=%s transferred=%.1f%% right=%.1f%% vaporPeak=%d updates=%d relaxed=%s params=%s",
		frameTime(res.boilFrame), frameTime(res.stopFrame), res.transferred, res.rightPercent,
		res.vaporPeak, res.updates, frameTime(res.relaxedFrames), res.params)
}

func frameTime(frame int) string {
	if frame < 0 {
		return "never"
	}
	return (time.Duration(frame) * time.Second / 60).Round(10 * time.Millisecond).String()
}

// better ranks scenarios that moved the most water before the auto-stop,
// breaking ties by the earlier stop.
func better(a, b scenarioResult) bool {
	if (a.stopFrame < 0) != (b.stopFrame < 0) {
		return a.stopFrame >= 0
	}
	if a.transferred != b.transferred {
		return a.transferred > b.transferred
	}
	return a.stopFrame < b.stopFrame
}

// echoServer answers start_heating the way the simulation server does so the
// controller sees authoritative heating_status events.
type echoServer struct {
	inbox   chan<- remote.Event
	heating bool
	updates int
}

func (e *echoServer) Emit(eventType string, payload any) error {
	switch eventType {
	case remote.EventStartHeating:
		e.heating = !e.heating
		e.inbox <- remote.Event{Type: remote.EventHeatingStatus, Payload: remote.HeatingStatus{IsHeating: e.heating}}
	case remote.EventUpdateTemperature:
		e.updates++
	}
	return nil
}

func runScenario(base boiling.Config, params paramSet, frames, cooldown int, logger zerolog.Logger) scenarioResult {
	cfg := base
	cfg.Params.HeatStep = params.heatStep
	cfg.Params.LevelSmoothing = params.levelSmoothing
	cfg.Params.RelaxThreshold = params.relaxThreshold
	cfg.Params.VaporBoostSpan = params.vaporBoostSpan

	server := &echoServer{}
	ctrl := control.New(control.Options{Sim: cfg, FPS: 60}, server, nil, logger)
	server.inbox = ctrl.Inbox()

	clock := core.NewManualClock(time.Unix(0, 0))
	tick := time.Second / 60
	ctrl.Reconcile(remote.Event{
		Type: remote.EventSimulationUpdate,
		Payload: remote.SimulationUpdate{
			Temperature: cfg.Params.MinTemperature,
			Particles:   remote.SeedParticles(cfg),
		},
	}, clock.Now())
	ctrl.ToggleHeating()

	res := scenarioResult{params: params, boilFrame: -1, stopFrame: -1, relaxedFrames: -1}
	p := cfg.Params
	for frame := 0; frame < frames; frame++ {
		clock.Advance(tick)
		ctrl.Step(clock.Now())
		s := ctrl.State()
		if res.boilFrame < 0 && p.Boiling(s.Thermal.Temperature) {
			res.boilFrame = frame
		}
		if _, vapor, _ := boiling.CountPhases(s.Particles); vapor > res.vaporPeak {
			res.vaporPeak = vapor
		}
		if s.AutoStopped {
			res.stopFrame = frame
			res.transferred = p.Transferred(s.Levels)
			res.rightPercent = p.Percent(s.Levels.Right)
			break
		}
	}
	res.updates = server.updates
	if res.stopFrame < 0 {
		return res
	}

	for frame := 0; frame < cooldown; frame++ {
		clock.Advance(tick)
		ctrl.Step(clock.Now())
		if p.Transferred(ctrl.State().Levels) < 1 {
			res.relaxedFrames = frame
			break
		}
	}
	return res
}
