package chip8

import (
	"io"
	"log/slog"
)

// newDiscardLogger is the default logger every VM starts with: silent
// unless a host replaces it (e.g. with slog.New(slog.NewTextHandler(os.Stderr, nil))).
func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetLogger installs the logger used to report recoverable conditions such
// as unknown opcodes. Passing nil restores the silent default.
func (vm *VM) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = newDiscardLogger()
	}
	vm.logger = logger
}

// logUnknownOpcode records a non-fatal unknown-opcode condition at Debug
// level, carrying enough fields for a host to reconstruct what happened.
func (vm *VM) logUnknownOpcode(inst instruction) {
	vm.logger.Debug("unknown opcode",
		"pc", vm.pc,
		"mode", vm.mode.String(),
		"opcode", inst.raw,
	)
}
