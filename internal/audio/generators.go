package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

// SampleRate is the output rate of every generated sound.
const SampleRate = beep.SampleRate(44100)

// Synth streams a mono voice function to both channels. A zero length loops
// forever.
type Synth struct {
	sr     beep.SampleRate
	pos    int
	length int
	voice  func(t float64) float64
}

func (s *Synth) Stream(samples [][2]float64) (int, bool) {
	if s.length > 0 && s.pos >= s.length {
		return 0, false
	}
	n := 0
	for i := range samples {
		if s.length > 0 && s.pos >= s.length {
			break
		}
		v := s.voice(float64(s.pos) / float64(s.sr))
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *Synth) Err() error { return nil }

// Len returns the sample count, zero for looping voices.
func (s *Synth) Len() int { return s.length }

// Position returns the next sample index.
func (s *Synth) Position() int { return s.pos }

// Seek jumps to sample p.
func (s *Synth) Seek(p int) error {
	if p < 0 {
		p = 0
	}
	s.pos = p
	return nil
}

// Finished reports whether a finite voice has run out.
func (s *Synth) Finished() bool {
	return s.length > 0 && s.pos >= s.length
}

type bubble struct {
	start float64
	dur   float64
	freq  float64
	amp   float64
}

const bubbleCycle = 2.0

// NewBubblingGenerator returns an endless simmer: short rising chirps
// scattered over a repeating two-second cycle.
func NewBubblingGenerator(sr beep.SampleRate, seed uint64) *Synth {
	rng := rand.New(rand.NewPCG(seed, 0))
	bubbles := make([]bubble, 48)
	for i := range bubbles {
		bubbles[i] = bubble{
			start: rng.Float64() * bubbleCycle,
			dur:   0.02 + rng.Float64()*0.06,
			freq:  300 + rng.Float64()*900,
			amp:   0.15 + rng.Float64()*0.25,
		}
	}
	return &Synth{sr: sr, voice: func(t float64) float64 {
		t = math.Mod(t, bubbleCycle)
		sum := 0.0
		for _, b := range bubbles {
			local := t - b.start
			if local < 0 {
				local += bubbleCycle
			}
			if local > b.dur {
				continue
			}
			// Bubbles pop with a short upward chirp.
			f := b.freq * (1 + 2*local/b.dur)
			env := math.Exp(-local / (b.dur / 4))
			sum += b.amp * env * math.Sin(2*math.Pi*f*local)
		}
		return clampSample(sum)
	}}
}

// NewTransitionGenerator returns a short rising whoosh.
func NewTransitionGenerator(sr beep.SampleRate) *Synth {
	const dur = 0.6
	return &Synth{sr: sr, length: sr.N(600 * time.Millisecond), voice: func(t float64) float64 {
		p := t / dur
		// Instantaneous frequency sweeps 180Hz to 700Hz quadratically.
		phase := 2 * math.Pi * (180*t + 520*p*p*t/3)
		env := math.Sin(math.Pi * p)
		return 0.4 * env * math.Sin(phase)
	}}
}

// NewIntroGenerator plays a rising major arpeggio.
func NewIntroGenerator(sr beep.SampleRate) *Synth {
	return arpeggio(sr, []float64{261.63, 329.63, 392.00, 523.25}, 0.3)
}

// NewOutroGenerator plays the same arpeggio descending.
func NewOutroGenerator(sr beep.SampleRate) *Synth {
	return arpeggio(sr, []float64{523.25, 392.00, 329.63, 261.63}, 0.35)
}

func arpeggio(sr beep.SampleRate, notes []float64, step float64) *Synth {
	tail := 0.6
	total := step*float64(len(notes)) + tail
	return &Synth{sr: sr, length: sr.N(time.Duration(total * float64(time.Second))), voice: func(t float64) float64 {
		sum := 0.0
		for i, f := range notes {
			local := t - float64(i)*step
			if local < 0 {
				break
			}
			attack := math.Min(local/0.01, 1)
			env := attack * math.Exp(-local*3)
			sum += 0.25 * env * (math.Sin(2*math.Pi*f*local) + 0.3*math.Sin(4*math.Pi*f*local))
		}
		return clampSample(sum)
	}}
}

// NewGenerator returns a fresh stream for ch.
func NewGenerator(ch Channel, sr beep.SampleRate) *Synth {
	switch ch {
	case Bubbling:
		return NewBubblingGenerator(sr, 1337)
	case Transition:
		return NewTransitionGenerator(sr)
	case Intro:
		return NewIntroGenerator(sr)
	default:
		return NewOutroGenerator(sr)
	}
}

func clampSample(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
