package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// fade applies a short attack and a linear release over a known length to avoid clicks
type fade struct {
	src    beep.Streamer
	pos    int
	length int
	attack int
}

func newFade(src beep.Streamer, length int) *fade {
	return &fade{
		src:    src,
		length: length,
		attack: min(sampleRate.N(5*time.Millisecond), length/4),
	}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.src.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if f.attack > 0 && f.pos < f.attack {
			gain = float64(f.pos) / float64(f.attack)
		}
		if f.length > 0 {
			gain *= math.Max(0, 1-float64(f.pos)/float64(f.length))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error {
	return f.src.Err()
}

// buzz is a low harmonic-rich tone used for mistypes
type buzz struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newBuzz(sr beep.SampleRate, freq float64) *buzz {
	return &buzz{sr: sr, freq: freq}
}

func (g *buzz) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3*math.Sin(2*math.Pi*g.freq*t) +
			0.15*math.Sin(4*math.Pi*g.freq*t) +
			0.075*math.Sin(6*math.Pi*g.freq*t)

		// 20ms attack
		sample *= math.Min(t/0.02, 1.0) * 0.6

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *buzz) Err() error {
	return nil
}

// noiseBurst is decaying noise over a low rumble, used for bomb words
type noiseBurst struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

func newNoiseBurst(sr beep.SampleRate, seed int64) *noiseBurst {
	return &noiseBurst{sr: sr, seed: seed & 0x7fffffff}
}

func (g *noiseBurst) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 8)

		// LCG noise
		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		rumble := 0.3 * math.Sin(2*math.Pi*80*t)

		sample := envelope * (0.25*noise + rumble)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *noiseBurst) Err() error {
	return nil
}

// pulse is the action theme: a kick on every beat over a steady bass
type pulse struct {
	sr   beep.SampleRate
	pos  int
	beat int
	kick int
}

func newPulse(sr beep.SampleRate) *pulse {
	return &pulse{
		sr:   sr,
		beat: sr.N(500 * time.Millisecond), // 120 BPM
		kick: sr.N(100 * time.Millisecond),
	}
}

func (g *pulse) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		beatPos := g.pos % g.beat
		t := float64(beatPos) / float64(g.sr)

		kick := 0.0
		if beatPos < g.kick {
			env := 1.0 - float64(beatPos)/float64(g.kick)
			kick = 0.3 * env * math.Sin(2*math.Pi*60*(1+2*env)*t)
		}
		bass := 0.08 * math.Sin(2*math.Pi*110*float64(g.pos)/float64(g.sr))

		sample := kick + bass
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *pulse) Err() error {
	return nil
}

// swell is the tranquility theme: a slow pad drifting between two low pitches
type swell struct {
	sr    beep.SampleRate
	pos   int
	cycle int
	phase float64
}

func newSwell(sr beep.SampleRate) *swell {
	return &swell{sr: sr, cycle: sr.N(8 * time.Second)}
}

func (g *swell) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		cyclePos := float64(g.pos%g.cycle) / float64(g.cycle)

		// Phase accumulation keeps the sweep free of discontinuities
		freq := 110 + 55*math.Sin(cyclePos*math.Pi)
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}

		amplitude := 0.06 * (0.6 + 0.4*math.Sin(cyclePos*2*math.Pi))
		sample := amplitude * (math.Sin(g.phase) + 0.3*math.Sin(2*g.phase))
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *swell) Err() error {
	return nil
}
