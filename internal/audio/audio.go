// Package audio drives playback of a running VM's sound state: XO-Chip's
// 16-byte pattern buffer and pitch register when the dialect exposes them,
// or a fixed beep sample otherwise (spec.md's Non-goal on sound wave
// synthesis — the core exposes the buffer/pitch, a host renders them).
package audio

import (
	"math"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"

	"github.com/brhamilton/chippy/internal/chip8"
)

const sampleRate = beep.SampleRate(44100)

// patternStreamer turns a VM's 128-bit XO-Chip pattern buffer into audio:
// bit i (MSB-first within each byte) selects a high or low sample, held for
// as many device samples as the pitch-derived playback rate implies, and
// looped.
type patternStreamer struct {
	vm    *chip8.VM
	phase float64
}

func newPatternStreamer(vm *chip8.VM) *patternStreamer {
	return &patternStreamer{vm: vm}
}

func (p *patternStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	pattern := p.vm.GetAudioBuffer()
	hz := math.Exp2(float64(p.vm.GetAudioBitRateLog2Hz()))
	samplesPerBit := float64(sampleRate) / hz
	totalBits := len(pattern) * 8

	for i := range samples {
		bitIndex := int(p.phase/samplesPerBit) % totalBits
		byteIdx := bitIndex / 8
		bitInByte := 7 - bitIndex%8
		v := 0.0
		if pattern[byteIdx]&(1<<uint(bitInByte)) != 0 {
			v = 0.25
		}
		samples[i] = [2]float64{v, v}
		p.phase++
	}
	return len(samples), true
}

func (p *patternStreamer) Err() error { return nil }

// gatedStreamer silences source whenever the VM's sound timer is at zero,
// so a single streamer can stay registered with the speaker for the life of
// the program instead of being started and stopped every frame.
type gatedStreamer struct {
	vm     *chip8.VM
	source beep.Streamer
}

func (g *gatedStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if !g.vm.IsSounding() {
		for i := range samples {
			samples[i] = [2]float64{0, 0}
		}
		return len(samples), true
	}
	return g.source.Stream(samples)
}

func (g *gatedStreamer) Err() error { return g.source.Err() }

// Player owns the speaker device and the single streamer mixed into it for
// the lifetime of a run.
type Player struct {
	gated *gatedStreamer
}

// NewPlayer initializes the speaker device and builds a streamer for vm: the
// XO-Chip pattern buffer when the dialect has one, otherwise fallbackMP3Path
// looped for as long as the sound timer is nonzero. A missing fallback file
// is not an error — IsSounding will simply play silence.
func NewPlayer(vm *chip8.VM, fallbackMP3Path string) (*Player, error) {
	speaker.Init(sampleRate, sampleRate.N(time.Second/10))

	var source beep.Streamer = newPatternStreamer(vm)
	if !vm.HasSoundWave() {
		source = &silentStreamer{}
		if f, err := os.Open(fallbackMP3Path); err == nil {
			if streamer, _, err := mp3.Decode(f); err == nil {
				source = beep.Loop(-1, streamer)
			}
		}
	}

	return &Player{gated: &gatedStreamer{vm: vm, source: source}}, nil
}

// silentStreamer is the fallback used when a dialect has no pattern buffer
// and no beep asset could be loaded either; IsSounding still reports true,
// it just has nothing to play.
type silentStreamer struct{}

func (silentStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{0, 0}
	}
	return len(samples), true
}

func (silentStreamer) Err() error { return nil }

// Start registers the player's streamer with the speaker mixer. It returns
// immediately; playback runs on beep's own mixing goroutine for the rest of
// the process.
func (p *Player) Start() {
	speaker.Play(p.gated)
}
