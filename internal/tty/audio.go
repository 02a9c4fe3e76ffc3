package tty

import (
	"time"

	"chickenescape/pkg/logger"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

type tone struct {
	freq float64
	dur  time.Duration
}

// Beep tunes per event; a zero frequency is a rest.
var (
	toneJump = []tone{{523, 40 * time.Millisecond}, {784, 60 * time.Millisecond}}
	toneHit  = []tone{{220, 80 * time.Millisecond}, {147, 140 * time.Millisecond}}
	toneFire = []tone{{1318, 25 * time.Millisecond}}
	toneWin  = []tone{
		{523, 90 * time.Millisecond}, {659, 90 * time.Millisecond},
		{784, 90 * time.Millisecond}, {0, 30 * time.Millisecond},
		{1046, 220 * time.Millisecond},
	}
)

// tune builds a streamer playing the tones back to back.
func tune(sr beep.SampleRate, tones []tone) beep.Streamer {
	var parts []beep.Streamer
	for _, t := range tones {
		n := sr.N(t.dur)
		if t.freq <= 0 {
			parts = append(parts, beep.Silence(n))
			continue
		}
		sine, err := generators.SineTone(sr, t.freq)
		if err != nil {
			parts = append(parts, beep.Silence(n))
			continue
		}
		parts = append(parts, beep.Take(n, sine))
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: -2}
}

// beeper plays short tunes through the speaker. A zero beeper is silent.
// It is used from the frame loop only.
type beeper struct {
	mixer *beep.Mixer
}

func newBeeper(mute bool) *beeper {
	b := &beeper{}
	if mute {
		return b
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		logger.Component("tty").WithError(err).Warn("audio init failed, continuing without sound")
		return b
	}
	b.mixer = &beep.Mixer{}
	speaker.Play(b.mixer)
	return b
}

func (b *beeper) play(tones []tone) {
	if b == nil || b.mixer == nil {
		return
	}
	s := tune(sampleRate, tones)
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
}

func (b *beeper) close() {
	if b == nil || b.mixer == nil {
		return
	}
	speaker.Clear()
	speaker.Close()
	b.mixer = nil
}
