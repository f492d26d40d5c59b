package chip8

import (
	"fmt"
	"log/slog"
	"math/rand"
)

// VM is a self-contained Chip-8 family interpreter core. It performs no I/O:
// a host loads a ROM, feeds it key events, steps it, and reads back the
// display/audio/sound state every frame. See SPEC_FULL.md §2.
type VM struct {
	mode   Mode
	quirks QuirkSet

	memory   []byte
	memMask  uint16
	extended bool

	v  [16]byte
	i  uint16
	pc uint16

	stk stack
	rpl [16]byte

	delayTimer byte
	soundTimer byte

	keys keypad

	fb      framebuffer
	plane   byte
	planes  int
	highRes bool

	stepsPerFrame   int
	stepsSinceFrame int
	steps           uint64

	displayChanged bool

	audio audioState

	rng    *rand.Rand
	logger *slog.Logger
}

// NewVM constructs a VM configured with a dialect's canonical quirk preset.
func NewVM(mode Mode) *VM {
	return NewVMWithQuirks(mode, quirksFromMode(mode))
}

// NewVMWithQuirks constructs a VM for mode but with a caller-supplied quirk
// set, overriding the dialect's preset entirely. It takes the whole set, not
// a sparse patch, so callers start from the preset (NewVM(mode).Quirks())
// and flip bits.
func NewVMWithQuirks(mode Mode, quirks QuirkSet) *VM {
	vm := &VM{
		mode:   mode,
		quirks: quirks,
		planes: planesFromMode(mode),
		rng:    rand.New(rand.NewSource(1)),
		logger: newDiscardLogger(),
	}
	vm.resetState()
	return vm
}

// extendedAddressing reports whether this dialect's F000 instruction can
// widen the address space to 64KB (XO-Chip only).
func (vm *VM) extendedAddressing() bool {
	return vm.mode == ModeXOChip
}

func (vm *VM) resetState() {
	size := MemSize
	if vm.extendedAddressing() {
		size = ExtendedMemSize
	}
	vm.memory = make([]byte, size)
	vm.memMask = uint16(size - 1)
	vm.extended = vm.extendedAddressing()

	if vm.quirks.has(RAMRandom) {
		vm.rng.Read(vm.memory)
	}
	loadFonts(vm.memory)

	vm.v = [16]byte{}
	vm.i = 0
	vm.pc = ProgramStart
	vm.stk = newStack()
	vm.rpl = [16]byte{}
	vm.delayTimer = 0
	vm.soundTimer = 0
	vm.keys = keypad{}
	vm.fb = framebuffer{}
	vm.plane = repeatBits(1, vm.planes)
	vm.highRes = false
	vm.stepsPerFrame = stepsPerFrameFromMode(vm.mode)
	vm.stepsSinceFrame = 0
	vm.steps = 0
	vm.displayChanged = true
	vm.audio = newAudioState()
}

// Reset restores the VM to its freshly-constructed state, preserving mode,
// quirks and logger but clearing memory, registers, display and timers. This
// backs the 00FD (exit) opcode on non-Cosmac dialects and is exported for
// hosts that implement their own "restart ROM" command.
func (vm *VM) Reset() {
	vm.resetState()
}

// SetStepsPerFrame overrides the dialect's default CPU-steps-per-frame rate.
// A partial frame already in progress is drained to its boundary first, so
// the 0 <= stepsSinceFrame < stepsPerFrame invariant never transiently
// breaks when the new value is smaller than the steps already taken.
func (vm *VM) SetStepsPerFrame(n int) {
	if n < 1 {
		n = 1
	}
	for vm.stepsSinceFrame != 0 {
		vm.Step()
	}
	vm.stepsPerFrame = n
}

// LoadROM copies program data into memory starting at ProgramStart. It
// returns an error rather than panicking when the ROM exceeds the address
// space available to this dialect.
func (vm *VM) LoadROM(data []byte) error {
	limit := ProgramSize
	if vm.extended {
		limit = ExtendedProgramSize
	}
	if len(data) > limit {
		return fmt.Errorf("chip8: rom is %d bytes, exceeds %d byte limit for %s", len(data), limit, vm.mode)
	}
	copy(vm.memory[ProgramStart:], data)
	return nil
}

func (vm *VM) memRead(addr uint16) byte {
	return vm.memory[addr&vm.memMask]
}

func (vm *VM) memWrite(addr uint16, value byte) {
	vm.memory[addr&vm.memMask] = value
}

func (vm *VM) memRead16(addr uint16) uint16 {
	hi := vm.memRead(addr)
	lo := vm.memRead(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (vm *VM) nextRandom() byte {
	return byte(vm.rng.Intn(256))
}

// Step fetches, decodes and executes exactly one instruction, rewinding PC
// and leaving the step uncounted when the instruction idles (display-wait,
// FX0A) per spec.md §4.7. It panics with a FatalError on stack overflow or
// underflow; hosts that want to keep running recover and inspect it.
func (vm *VM) Step() {
	word := vm.memRead16(vm.pc)
	inst := decode(word)

	vm.pc = (vm.pc + 2) & vm.memMask
	vm.steps++

	if vm.dispatch(inst) {
		vm.pc = (vm.pc - 2) & vm.memMask
		vm.steps--
	}

	vm.tickFrame()
	vm.keys.snapshot()
}

// RunFrame runs Step until stepsSinceFrame wraps back to 0, the unit a
// host's render loop should drive the VM by. tickFrame runs on every Step,
// idle or not, so this is exactly stepsPerFrame calls to Step.
func (vm *VM) RunFrame() {
	for {
		vm.Step()
		if vm.stepsSinceFrame == 0 {
			return
		}
	}
}

// TakeSteps runs until the monotonic step counter has advanced by exactly n,
// which on an idle step (display-wait, FX0A) takes more than n calls to
// Step since an idle step leaves steps unchanged.
func (vm *VM) TakeSteps(n int) {
	target := vm.steps + uint64(n)
	for vm.steps != target {
		vm.Step()
	}
}

// KeyPress marks hex key index (0-15) as currently held down.
func (vm *VM) KeyPress(index int) {
	vm.keys.press(index)
}

// KeyRelease marks hex key index (0-15) as currently up.
func (vm *VM) KeyRelease(index int) {
	vm.keys.release(index)
}

// DisplayChanged reports whether the framebuffer has been written to since
// the last call to DisplayChanged, letting a host skip redundant redraws.
// Reading it clears the flag.
func (vm *VM) DisplayChanged() bool {
	changed := vm.displayChanged
	vm.displayChanged = false
	return changed
}

// GetDisplayBuffer returns the current 128x64 plane-encoded framebuffer. It
// is a pure view; it does not affect DisplayChanged.
func (vm *VM) GetDisplayBuffer() [DisplayHeight][DisplayWidth]byte {
	return vm.fb.cells
}

// HighRes reports whether the display is currently in the dialect's
// high-resolution mode (128x64 rather than 64x32).
func (vm *VM) HighRes() bool {
	return vm.highRes
}

// PlaneCount reports how many display planes this dialect exposes (1, or 2
// for XO-Chip).
func (vm *VM) PlaneCount() int {
	return vm.planes
}

// IsSounding reports whether the sound timer is currently non-zero.
func (vm *VM) IsSounding() bool {
	return vm.soundTimer > 0
}

// HasSoundWave reports whether this dialect exposes the XO-Chip pattern
// buffer/pitch sound model at all, as opposed to a plain on/off beeper.
func (vm *VM) HasSoundWave() bool {
	return vm.mode == ModeXOChip
}

// GetAudioBuffer returns the current 16-byte XO-Chip sound pattern buffer.
func (vm *VM) GetAudioBuffer() [audioPatternSize]byte {
	return vm.audio.pattern
}

// GetAudioBitRateLog2Hz returns log2 of the playback sample rate implied by
// the current pitch register, the form the XO-Chip STPitch formula wants.
func (vm *VM) GetAudioBitRateLog2Hz() float32 {
	return vm.audio.bitRateLog2Hz()
}

// GetRPLRegisters returns a copy of the persistent RPL flag register file.
func (vm *VM) GetRPLRegisters() [16]byte {
	return vm.rpl
}

// LoadRPLRegisters overwrites the RPL flag register file, letting a host
// restore state saved by a previous session.
func (vm *VM) LoadRPLRegisters(data [16]byte) {
	vm.rpl = data
}

// Mode returns the dialect this VM was constructed for.
func (vm *VM) Mode() Mode {
	return vm.mode
}

// Quirks returns the effective quirk set this VM is running with.
func (vm *VM) Quirks() QuirkSet {
	return vm.quirks
}

// SetLoadWaveBytes installs the XO-Chip sound pattern buffer (the 16 bytes
// the F002 opcode would read starting at I). The pitch register is left
// unchanged. The dispatcher does not handle F002, so this exported hook is
// how hosts and tests set the pattern buffer.
func (vm *VM) SetLoadWaveBytes(data [audioPatternSize]byte) {
	vm.audio.pattern = data
}

// SetPitch sets the XO-Chip pitch register (0xFX3A).
func (vm *VM) SetPitch(pitch byte) {
	vm.audio.pitch = pitch
}
