//go:build !ebiten

package audio

import (
	"errors"
	"time"
)

// SpeakerPlayer is unavailable without the ebiten build tag.
type SpeakerPlayer struct{ NopPlayer }

func NewSpeakerPlayer() (*SpeakerPlayer, error) {
	return nil, errors.New("audio output requires the ebiten build tag")
}

func (p *SpeakerPlayer) WaitIdle(time.Duration) {}
