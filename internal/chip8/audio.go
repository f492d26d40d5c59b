package chip8

import "math"

// audioPatternSize is the length, in bytes, of the XO-Chip sound pattern
// buffer (128 bits).
const audioPatternSize = 16

// defaultPitch is the XO-Chip default pitch register value, giving a
// playback rate of exactly 4000Hz per the SPEC_FULL.md §5 formula.
const defaultPitch byte = 64

// audioState holds the XO-Chip sound pattern buffer and pitch register.
// Non-XO-Chip dialects carry this state but never expose it (HasSoundWave
// reports false for them).
type audioState struct {
	pattern [audioPatternSize]byte
	pitch   byte
}

func newAudioState() audioState {
	return audioState{pitch: defaultPitch}
}

// hz returns the playback rate in Hz implied by the current pitch:
// 4000 * 2^((pitch-64)/48).
func (a *audioState) hz() float64 {
	return 4000 * math.Exp2((float64(a.pitch)-64)/48)
}

// bitRateLog2Hz returns log2 of the playback sample rate implied by pitch.
func (a *audioState) bitRateLog2Hz() float32 {
	return float32(math.Log2(a.hz()))
}
