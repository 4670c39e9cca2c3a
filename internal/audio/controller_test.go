package audio

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type recordingPlayer struct {
	calls   []string
	volumes map[Channel]float64
	playing map[Channel]bool
	failOn  Channel
	fail    bool
}

func newRecordingPlayer() *recordingPlayer {
	return &recordingPlayer{volumes: map[Channel]float64{}, playing: map[Channel]bool{}}
}

func (p *recordingPlayer) Start(ch Channel, fromStart bool) error {
	p.calls = append(p.calls, fmt.Sprintf("start %s %v", ch, fromStart))
	if p.fail && ch == p.failOn {
		return errors.New("autoplay blocked")
	}
	p.playing[ch] = true
	return nil
}

func (p *recordingPlayer) Stop(ch Channel, rewind bool) {
	p.calls = append(p.calls, fmt.Sprintf("stop %s %v", ch, rewind))
	p.playing[ch] = false
}

func (p *recordingPlayer) SetVolume(ch Channel, v float64) { p.volumes[ch] = v }
func (p *recordingPlayer) Close() error                    { return nil }

func newTestController() (*Controller, *recordingPlayer) {
	p := newRecordingPlayer()
	return NewController(p, 100, zerolog.Nop()), p
}

func TestInitialVolumes(t *testing.T) {
	_, p := newTestController()

	assert.Equal(t, 0.3, p.volumes[Bubbling])
	assert.Equal(t, 0.4, p.volumes[Transition])
	assert.Equal(t, 0.5, p.volumes[Intro])
	assert.Equal(t, 0.5, p.volumes[Outro])
}

func TestIntroPlaysOnce(t *testing.T) {
	c, p := newTestController()

	c.PlayIntro()
	c.PlayIntro()

	assert.Equal(t, []string{"start intro true"}, p.calls)
}

func TestBubblingFollowsBoilingPoint(t *testing.T) {
	c, p := newTestController()

	c.UpdateBubbling(85)
	assert.False(t, c.Boiling())
	assert.InDelta(t, 0.15, p.volumes[Bubbling], 1e-9)
	assert.False(t, p.playing[Bubbling])

	c.UpdateBubbling(100)
	assert.True(t, c.Boiling())
	assert.True(t, p.playing[Bubbling])
	assert.InDelta(t, 0.3, p.volumes[Bubbling], 1e-9)

	c.UpdateBubbling(130)
	assert.InDelta(t, 0.3, p.volumes[Bubbling], 1e-9, "volume caps at the channel default")

	c.UpdateBubbling(95)
	assert.False(t, c.Boiling())
	assert.False(t, p.playing[Bubbling])
	assert.Contains(t, p.calls, "stop bubbling true")

	c.UpdateBubbling(25)
	assert.Equal(t, 0.0, p.volumes[Bubbling])
}

func TestMuteSilencesAndRestores(t *testing.T) {
	c, p := newTestController()
	c.UpdateBubbling(110)
	p.calls = nil

	assert.True(t, c.ToggleMute())
	for _, ch := range Channels {
		assert.Equal(t, 0.0, p.volumes[ch], ch.String())
	}
	assert.Equal(t, []string{"stop bubbling false", "stop intro true"}, p.calls)

	c.PlayTransition()
	c.PlayOutro()
	assert.Len(t, p.calls, 2, "muted cues do not play")

	assert.False(t, c.ToggleMute())
	assert.Equal(t, 0.3, p.volumes[Bubbling])
	assert.Equal(t, 0.4, p.volumes[Transition])
	assert.Equal(t, "start bubbling false", p.calls[len(p.calls)-1])
}

func TestBubblingVolumeWhileMutedIsDeferred(t *testing.T) {
	c, p := newTestController()
	c.ToggleMute()

	c.UpdateBubbling(85)
	assert.Equal(t, 0.0, p.volumes[Bubbling])
	assert.False(t, c.Boiling(), "muted controller does not start bubbling")

	c.ToggleMute()
	assert.InDelta(t, 0.15, p.volumes[Bubbling], 1e-9)
}

func TestPlaybackFailureIsNotFatal(t *testing.T) {
	c, p := newTestController()
	p.fail = true
	p.failOn = Transition

	assert.NotPanics(t, c.PlayTransition)
	assert.Equal(t, []string{"start transition true"}, p.calls)
}

func TestNilPlayerIsSilent(t *testing.T) {
	c := NewController(nil, 100, zerolog.Nop())
	c.UpdateBubbling(120)
	c.PlayIntro()
	assert.True(t, c.Boiling())
	assert.NoError(t, c.Close())
}
