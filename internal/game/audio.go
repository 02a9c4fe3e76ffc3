package game

import (
	"io"
	"math"
	"sync"
	"time"

	"chickenescape/pkg/logger"

	"github.com/hajimehoshi/oto/v2"
	"github.com/sirupsen/logrus"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundJump SoundKind = iota
	SoundHurt
	SoundGameOver
	SoundWin
	SoundStart
	SoundShot
	SoundBossHit
	SoundVolley
	soundKinds
)

const (
	sfxVolume   = 0.58
	musicVolume = 0.14
)

// Audio plays procedural effects and a looping chase tune through oto.
// A nil or muted Audio is silent.
type Audio struct {
	ctx   *oto.Context
	ready chan struct{}

	mu    sync.Mutex
	music oto.Player
	bank  [soundKinds][]byte

	log *logrus.Entry
}

// NewAudio opens the output device unless mute is set. Effects are
// synthesised once up front.
func NewAudio(mute bool) (*Audio, error) {
	a := &Audio{log: logger.Component("audio")}
	if mute {
		a.log.Info("audio muted")
		return a, nil
	}
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return a, err
	}
	a.ctx = ctx
	a.ready = ready
	for k := SoundKind(0); k < soundKinds; k++ {
		a.bank[k] = generateSound(k)
	}
	return a, nil
}

func (a *Audio) isReady() bool {
	if a == nil || a.ctx == nil {
		return false
	}
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

// Play starts an effect and returns immediately.
func (a *Audio) Play(kind SoundKind) {
	if !a.isReady() || kind < 0 || kind >= soundKinds {
		return
	}
	samples := a.bank[kind]
	if len(samples) == 0 {
		return
	}
	go func() {
		reader := &soundReader{data: samples}
		player := a.ctx.NewPlayer(reader)
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// StartMusic loops the chase tune; calling it while playing is a no-op.
func (a *Audio) StartMusic(seed uint64) {
	if !a.isReady() {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.music != nil {
		return
	}
	player := a.ctx.NewPlayer(&musicReader{seed: seed | 1})
	player.SetVolume(musicVolume)
	player.Play()
	a.music = player
}

func (a *Audio) StopMusic() {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.music != nil {
		a.music.Close()
		a.music = nil
	}
}

func (a *Audio) Close() {
	a.StopMusic()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	putStereoF32LR(buf, i, sample, sample)
}

// putStereoF32LR writes independent left/right samples in [-1,1].
func putStereoF32LR(buf []byte, i int, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	buf[i*8] = byte(lv)
	buf[i*8+1] = byte(lv >> 8)
	buf[i*8+2] = byte(lv >> 16)
	buf[i*8+3] = byte(lv >> 24)
	buf[i*8+4] = byte(rv)
	buf[i*8+5] = byte(rv >> 8)
	buf[i*8+6] = byte(rv >> 16)
	buf[i*8+7] = byte(rv >> 24)
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// ---- Sound effects -------------------------------------------------------

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundJump:
		return genJump()
	case SoundHurt:
		return genHurt()
	case SoundGameOver:
		return genGameOver()
	case SoundWin:
		return genWin()
	case SoundStart:
		return genStart()
	case SoundShot:
		return genShot()
	case SoundBossHit:
		return genBossHit()
	case SoundVolley:
		return genVolley()
	}
	return nil
}

// genJump: quick rising FM chirp, a wing flap.
func genJump() []byte {
	n := int(0.12 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.5, 0.1, 0.2)
		freq := 420 + 900*p*p
		s := fm(t, freq, 2.0, 2.6*env) * env * 0.46
		s += math.Sin(2*math.Pi*freq*3*t) * env * 0.05
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genHurt: descending FM tone.
func genHurt() []byte {
	n := int(0.16 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.015, 0.55, 0.1, 0.25)
		freq := 320 - 220*p
		s := fm(t, freq, 1.5, 2.8*(1-p)) * env * 0.52
		s += math.Sin(2*math.Pi*freq*2*t) * env * 0.1
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genWin: ascending FM bell staircase, each note rings over the next.
func genWin() []byte {
	notes := []float64{440, 554.37, 659.25, 880, 1108.73}
	noteStep := int(0.09 * SampleRate)
	total := len(notes)*noteStep + int(0.25*SampleRate)
	mix := make([]float64, total)

	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.003, 0.65, 0.04, 0.28)
			s := fm(t, freq, 3.5, 5.5*env) * env * 0.28
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.07
			mix[start+j] += s
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genGameOver: slow descending minor chord, staggered.
func genGameOver() []byte {
	dur := 0.75
	n := int(dur * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.14}, // C4
		{220.00, 0.28}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025)
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.32
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1
			mix[i] += s
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genStart: crisp click + brief high tone.
func genStart() []byte {
	n := SampleRate * 65 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 1400 - 700*p
		s := fm(t, freq, 1.0, 0.6) * env * 0.38
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genShot: a light egg-launcher pop, a softer cousin of a gunshot.
func genShot() []byte {
	n := int(0.08 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(77777)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		crack := 0.0
		if p < 0.02 {
			crack = lcg(&seed) * (1 - p/0.02) * 0.5
		}
		thumpFreq := 420 * math.Pow(0.2, p*3)
		thump := math.Sin(2*math.Pi*thumpFreq*t) * math.Exp(-p*18) * 0.5
		ring := math.Sin(2*math.Pi*2600*t) * math.Exp(-p*35) * 0.06
		putStereoF32(buf, i, softSat((crack+thump+ring)*0.8))
	}
	return buf
}

// genBossHit: short sub thump with a bandpassed noise splash.
func genBossHit() []byte {
	n := int(0.22 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0xB055)
	lp1, lp2 := 0.0, 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		subFreq := 140 * math.Pow(40.0/140.0, p*1.6)
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*7) * 0.44

		raw := lcg(&seed)
		lp1 = lp1*0.76 + raw*0.24
		lp2 = lp2*0.975 + raw*0.025
		body := (lp1 - lp2) * math.Exp(-p*6.2) * 0.30

		putStereoF32(buf, i, softSat((sub+body)*0.86))
	}
	return buf
}

// genVolley: crackling noise with low-frequency amplitude modulation.
func genVolley() []byte {
	n := int(0.18 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(33333)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		raw := lcg(&seed)
		lp = lp*0.65 + raw*0.35
		mod := 0.5 + 0.5*math.Sin(2*math.Pi*16*t)
		env := (1 - p) * 0.38
		s := (raw*0.3 + lp*0.55) * mod * env
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// ---- Music ---------------------------------------------------------------

// musicReader streams an endless chase loop: four-on-the-floor kick, FM
// bass on the chord root and a soft pad.
type musicReader struct {
	t    float64
	seed uint64
}

var chaseChords = [][]float64{
	{220.0, 261.6, 329.6}, // Am
	{174.6, 220.0, 261.6}, // F
	{196.0, 246.9, 293.7}, // G
	{164.8, 207.7, 246.9}, // E
}

func (m *musicReader) Read(p []byte) (int, error) {
	const tempo = 2.4 // 144 BPM
	const beatsPerChord = 4
	samples := len(p) / 8
	for i := 0; i < samples; i++ {
		m.t += 1.0 / SampleRate
		beat := int(m.t * tempo)
		beatTrig := math.Mod(m.t, 1/tempo)
		eighthTrig := math.Mod(m.t, 1/(tempo*2))
		chord := chaseChords[(beat/beatsPerChord)%len(chaseChords)]

		s := kick(beatTrig)
		bassEnv := adsr(math.Mod(m.t*tempo*2, 1.0), 0.02, 0.5, 0.3, 0.2)
		s += fmBass(m.t, chord[0]/2, bassEnv) * 0.8
		s += fmPad(m.t, chord, 0.6) * 0.6
		if beat%2 == 1 {
			s += lcg(&m.seed) * math.Exp(-eighthTrig*40) * 0.05
		}
		putStereoF32(p, i, softSat(s*0.8))
	}
	return samples * 8, nil
}

// kick returns a kick drum sample given time-since-trigger (trig) in seconds.
// Uses a pitch-swept sine with a transient click and short air tail.
func kick(trig float64) float64 {
	if trig > 0.25 {
		return 0
	}
	phase := 2 * math.Pi * 185 / 12.5 * (1 - math.Exp(-trig*12.5))
	body := math.Sin(phase) * math.Exp(-trig*18.0) * 0.80
	click := math.Sin(2*math.Pi*2100*trig) * math.Exp(-trig*250.0) * 0.24
	air := math.Sin(2*math.Pi*330*trig) * math.Exp(-trig*38.0) * 0.12
	return softSat(body + click + air)
}

// fmBass returns a warm FM bass sample; a low modRatio gives a smooth tone.
func fmBass(t, freq, env float64) float64 {
	b := fm(t, freq, 0.5, 1.25*env) * env * 0.48
	b += math.Sin(2*math.Pi*freq*t) * env * 0.26
	b += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.10
	return softSat(b)
}

// fmPad returns a pad sample from a chord, detuned FM oscillators per note.
func fmPad(t float64, chord []float64, env float64) float64 {
	s := 0.0
	detunes := [4]float64{-0.004, -0.001, 0.002, 0.005}
	for _, freq := range chord {
		for _, d := range detunes {
			f := freq * (1 + d)
			vib := 1 + 0.003*math.Sin(2*math.Pi*(0.23+f*0.0007)*t)
			s += fm(t, f*vib, 1.45, 0.75*env) * 0.048
		}
	}
	return softSat(s)
}
