//go:build ebiten

package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

type track struct {
	synth *Synth
	ctrl  *beep.Ctrl
	vol   *effects.Volume
}

// SpeakerPlayer plays the generated voices through the system speaker. Every
// channel feeds one shared mixer.
type SpeakerPlayer struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	tracks  map[Channel]*track
	volumes map[Channel]float64
	closed  bool
}

// NewSpeakerPlayer initialises the speaker with a 100ms buffer.
func NewSpeakerPlayer() (*SpeakerPlayer, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	p := &SpeakerPlayer{
		mixer:   &beep.Mixer{},
		tracks:  map[Channel]*track{},
		volumes: map[Channel]float64{},
	}
	speaker.Play(p.mixer)
	return p, nil
}

func (p *SpeakerPlayer) Start(ch Channel, fromStart bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}

	speaker.Lock()
	defer speaker.Unlock()

	t := p.tracks[ch]
	if t != nil && !fromStart && !t.synth.Finished() {
		t.ctrl.Paused = false
		return nil
	}
	if t != nil {
		// Detach the old voice; the mixer drops it on its next pass.
		t.ctrl.Streamer = nil
	}
	synth := NewGenerator(ch, SampleRate)
	ctrl := &beep.Ctrl{Streamer: synth}
	t = &track{synth: synth, ctrl: ctrl, vol: newVolume(ctrl, p.volumes[ch])}
	p.tracks[ch] = t
	p.mixer.Add(t.vol)
	return nil
}

func (p *SpeakerPlayer) Stop(ch Channel, rewind bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t := p.tracks[ch]
	if t == nil {
		return
	}
	speaker.Lock()
	t.ctrl.Paused = true
	if rewind {
		t.ctrl.Streamer = nil
		delete(p.tracks, ch)
	}
	speaker.Unlock()
}

func (p *SpeakerPlayer) SetVolume(ch Channel, v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volumes[ch] = v
	t := p.tracks[ch]
	if t == nil {
		return
	}
	speaker.Lock()
	applyVolume(t.vol, v)
	speaker.Unlock()
}

// Close silences every channel. The speaker itself stays initialised for the
// life of the process.
func (p *SpeakerPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	speaker.Lock()
	for _, t := range p.tracks {
		t.ctrl.Paused = true
	}
	p.mixer.Clear()
	speaker.Unlock()
	return nil
}

// WaitIdle blocks until no finite voice is still sounding, or d elapses.
func (p *SpeakerPlayer) WaitIdle(d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if !p.busy() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func (p *SpeakerPlayer) busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	speaker.Lock()
	defer speaker.Unlock()
	for _, t := range p.tracks {
		if t.synth.Len() > 0 && !t.ctrl.Paused && !t.synth.Finished() {
			return true
		}
	}
	return false
}

func newVolume(s beep.Streamer, v float64) *effects.Volume {
	vol := &effects.Volume{Streamer: s, Base: 2}
	applyVolume(vol, v)
	return vol
}

func applyVolume(vol *effects.Volume, v float64) {
	if v <= 0 {
		vol.Silent = true
		vol.Volume = 0
		return
	}
	vol.Silent = false
	vol.Volume = math.Log2(v)
}
