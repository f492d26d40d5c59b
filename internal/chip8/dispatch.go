package chip8

// dispatch executes a decoded instruction and reports whether this step
// should be "unexecuted" — PC rewound, step uncounted — per the idle model
// of spec.md §4.7 (display-wait and the FX0A key-release wait).
func (vm *VM) dispatch(inst instruction) (idle bool) {
	switch inst.op {
	case 0x0:
		vm.dispatch0(inst)
	case 0x1:
		vm.pc = inst.nnn
	case 0x2:
		if err := vm.stk.push(vm.pc); err != nil {
			vm.fatal(err)
		}
		vm.pc = inst.nnn
	case 0x3:
		if vm.v[inst.x] == inst.nn {
			vm.skipNext()
		}
	case 0x4:
		if vm.v[inst.x] != inst.nn {
			vm.skipNext()
		}
	case 0x5:
		switch inst.n {
		case 0x0:
			if vm.v[inst.x] == vm.v[inst.y] {
				vm.skipNext()
			}
		case 0x2:
			vm.saveRange(inst.x, inst.y)
		case 0x3:
			vm.loadRange(inst.x, inst.y)
		default:
			vm.logUnknownOpcode(inst)
		}
	case 0x6:
		vm.v[inst.x] = inst.nn
	case 0x7:
		vm.v[inst.x] += inst.nn
	case 0x8:
		vm.dispatch8(inst)
	case 0x9:
		if inst.n == 0 {
			if vm.v[inst.x] != vm.v[inst.y] {
				vm.skipNext()
			}
		} else {
			vm.logUnknownOpcode(inst)
		}
	case 0xA:
		vm.i = inst.nnn
	case 0xB:
		reg := byte(0)
		if vm.quirks.has(JumpXNN) {
			reg = inst.x
		}
		vm.pc = (inst.nnn + uint16(vm.v[reg])) & vm.memMask
	case 0xC:
		vm.v[inst.x] = vm.nextRandom() & inst.nn
	case 0xD:
		return vm.dispatchDraw(inst)
	case 0xE:
		switch inst.nn {
		case 0x9E:
			if vm.keys.isDown(vm.v[inst.x]) {
				vm.skipNext()
			}
		case 0xA1:
			if !vm.keys.isDown(vm.v[inst.x]) {
				vm.skipNext()
			}
		default:
			vm.logUnknownOpcode(inst)
		}
	case 0xF:
		return vm.dispatchF(inst)
	default:
		vm.logUnknownOpcode(inst)
	}
	return false
}

// dispatch0 handles the 0x0___ family: screen/stack control and scrolling.
func (vm *VM) dispatch0(inst instruction) {
	switch inst.raw {
	case 0x00E0:
		vm.clearScreen()
		return
	case 0x00EE:
		addr, err := vm.stk.pop()
		if err != nil {
			vm.fatal(err)
		}
		vm.pc = addr
		return
	case 0x00FD:
		if vm.mode == ModeCosmacChip8 {
			vm.logUnknownOpcode(inst)
			return
		}
		vm.Reset()
		return
	case 0x00FE:
		if vm.mode == ModeCosmacChip8 {
			vm.logUnknownOpcode(inst)
			return
		}
		vm.highRes = false
		if vm.quirks.has(ClearOnRes) {
			vm.fb.clear(PixelOn)
		}
		return
	case 0x00FF:
		if vm.mode == ModeCosmacChip8 {
			vm.logUnknownOpcode(inst)
			return
		}
		vm.highRes = true
		if vm.quirks.has(ClearOnRes) {
			vm.fb.clear(PixelOn)
		}
		return
	case 0x00FB:
		if vm.mode == ModeCosmacChip8 {
			vm.logUnknownOpcode(inst)
			return
		}
		vm.scrollRight4()
		return
	case 0x00FC:
		if vm.mode == ModeCosmacChip8 {
			vm.logUnknownOpcode(inst)
			return
		}
		vm.scrollLeft4()
		return
	}

	switch inst.raw & 0xFFF0 {
	case 0x00C0:
		if vm.mode == ModeCosmacChip8 {
			vm.logUnknownOpcode(inst)
			return
		}
		vm.scrollDownN(inst.n)
	case 0x00D0:
		if vm.mode != ModeXOChip {
			vm.logUnknownOpcode(inst)
			return
		}
		vm.scrollUpN(inst.n)
	case 0x00B0:
		if vm.mode != ModeSuperChipModern {
			vm.logUnknownOpcode(inst)
			return
		}
		vm.scrollUpN(inst.n)
	default:
		vm.logUnknownOpcode(inst)
	}
}

// dispatch8 handles the 8XY_ arithmetic/logic table.
func (vm *VM) dispatch8(inst instruction) {
	x, y := inst.x, inst.y
	switch inst.n {
	case 0x0:
		vm.v[x] = vm.v[y]
	case 0x1:
		vm.v[x] |= vm.v[y]
		vm.resetFlagIfQuirk()
	case 0x2:
		vm.v[x] &= vm.v[y]
		vm.resetFlagIfQuirk()
	case 0x3:
		vm.v[x] ^= vm.v[y]
		vm.resetFlagIfQuirk()
	case 0x4:
		sum := uint16(vm.v[x]) + uint16(vm.v[y])
		vm.v[x] = byte(sum)
		if sum > 0xFF {
			vm.v[0xF] = 1
		} else {
			vm.v[0xF] = 0
		}
	case 0x5:
		vx, vy := vm.v[x], vm.v[y]
		vm.v[x] = vx - vy
		if vx >= vy {
			vm.v[0xF] = 1
		} else {
			vm.v[0xF] = 0
		}
	case 0x6:
		vm.shiftRight(x, y)
	case 0x7:
		vx, vy := vm.v[x], vm.v[y]
		vm.v[x] = vy - vx
		if vy >= vx {
			vm.v[0xF] = 1
		} else {
			vm.v[0xF] = 0
		}
	case 0xE:
		vm.shiftLeft(x, y)
	default:
		vm.logUnknownOpcode(inst)
	}
}

func (vm *VM) resetFlagIfQuirk() {
	if vm.quirks.has(FlagReset) {
		vm.v[0xF] = 0
	}
}

func (vm *VM) shiftRight(x, y byte) {
	if !vm.quirks.has(ShiftXOnly) {
		vm.v[x] = vm.v[y]
	}
	bit := vm.v[x] & 0x1
	vm.v[x] = vm.v[x] >> 1
	vm.v[0xF] = bit
}

func (vm *VM) shiftLeft(x, y byte) {
	if !vm.quirks.has(ShiftXOnly) {
		vm.v[x] = vm.v[y]
	}
	bit := (vm.v[x] >> 7) & 0x1
	vm.v[x] = vm.v[x] << 1
	vm.v[0xF] = bit
}

// dispatchDraw applies the display-wait idle quirk before delegating to the
// display engine's draw routine.
func (vm *VM) dispatchDraw(inst instruction) bool {
	var waitQuirk bool
	if vm.highRes {
		waitQuirk = vm.quirks.has(DisplayWaitHires)
	} else {
		waitQuirk = vm.quirks.has(DisplayWaitLores)
	}
	if waitQuirk && vm.stepsSinceFrame != 0 {
		return true
	}
	vm.draw(inst.x, inst.y, inst.n)
	return false
}

// dispatchF handles the 0xF___ family, including the XO-Chip-only F000
// long-I-load and the FX0A key-release wait.
func (vm *VM) dispatchF(inst instruction) bool {
	if vm.mode == ModeXOChip && inst.x == 0 && inst.nn == 0x00 {
		vm.i = vm.memRead16(vm.pc)
		vm.pc = (vm.pc + 2) & vm.memMask
		return false
	}

	switch inst.nn {
	case 0x01:
		vm.plane = repeatBits(inst.x, vm.planes)
	case 0x07:
		vm.v[inst.x] = vm.delayTimer
	case 0x0A:
		return vm.waitKeyRelease(inst.x)
	case 0x15:
		vm.delayTimer = vm.v[inst.x]
	case 0x18:
		vm.soundTimer = vm.v[inst.x]
	case 0x1E:
		sum := uint32(vm.i) + uint32(vm.v[inst.x])
		if sum > uint32(vm.memMask) {
			vm.v[0xF] = 1
		} else {
			vm.v[0xF] = 0
		}
		vm.i = uint16(sum) & vm.memMask
	case 0x29:
		vm.i = (smallFontBase + uint16(vm.v[inst.x])*smallFontGlyphSize) & vm.memMask
	case 0x30:
		vm.i = (largeFontBase + uint16(vm.v[inst.x])*largeFontGlyphSize) & vm.memMask
	case 0x33:
		value := vm.v[inst.x]
		vm.memWrite(vm.i, value/100)
		vm.memWrite(vm.i+1, (value/10)%10)
		vm.memWrite(vm.i+2, value%10)
	case 0x55:
		for k := byte(0); k <= inst.x; k++ {
			vm.memWrite(vm.i+uint16(k), vm.v[k])
		}
		if vm.quirks.has(IncIndex) {
			vm.i = (vm.i + uint16(inst.x) + 1) & vm.memMask
		}
	case 0x65:
		for k := byte(0); k <= inst.x; k++ {
			vm.v[k] = vm.memRead(vm.i + uint16(k))
		}
		if vm.quirks.has(IncIndex) {
			vm.i = (vm.i + uint16(inst.x) + 1) & vm.memMask
		}
	case 0x75:
		vm.saveRPL(inst.x)
	case 0x85:
		vm.loadRPL(inst.x)
	default:
		vm.logUnknownOpcode(inst)
	}
	return false
}

func (vm *VM) waitKeyRelease(x byte) (idle bool) {
	key, ok := vm.keys.releasedKey()
	if !ok {
		return true
	}
	vm.v[x] = key
	return false
}

func (vm *VM) saveRPL(x byte) {
	limit := x
	if vm.mode != ModeXOChip {
		limit = x & 0x7
	}
	for k := byte(0); k <= limit; k++ {
		vm.rpl[k] = vm.v[k]
	}
}

func (vm *VM) loadRPL(x byte) {
	limit := x
	if vm.mode != ModeXOChip {
		limit = x & 0x7
	}
	for k := byte(0); k <= limit; k++ {
		vm.v[k] = vm.rpl[k]
	}
}

// registerRange lists register indices from x to y inclusive, walking
// forward or backward depending on their relative order (spec.md §4.4,
// 5XY2/5XY3).
func registerRange(x, y byte) []byte {
	if x <= y {
		out := make([]byte, 0, int(y-x)+1)
		for r := int(x); r <= int(y); r++ {
			out = append(out, byte(r))
		}
		return out
	}
	out := make([]byte, 0, int(x-y)+1)
	for r := int(x); r >= int(y); r-- {
		out = append(out, byte(r))
	}
	return out
}

func (vm *VM) saveRange(x, y byte) {
	for i, r := range registerRange(x, y) {
		vm.memWrite(vm.i+uint16(i), vm.v[r])
	}
}

func (vm *VM) loadRange(x, y byte) {
	for i, r := range registerRange(x, y) {
		vm.v[r] = vm.memRead(vm.i + uint16(i))
	}
}

// skipNext advances PC past the next instruction, skipping 4 bytes instead
// of 2 when that instruction is the XO-Chip F000 long-I-load (spec.md §4.4).
func (vm *VM) skipNext() {
	if vm.memRead16(vm.pc) == 0xF000 {
		vm.pc = (vm.pc + 4) & vm.memMask
	} else {
		vm.pc = (vm.pc + 2) & vm.memMask
	}
}
