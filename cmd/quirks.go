package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/brhamilton/chippy/internal/chip8"
	"github.com/spf13/cobra"
)

// quirkFlags is the ordered name <-> bit table used both to parse --quirk/
// --no-quirk flags in runCmd and to render a preset for quirksCmd.
var quirkFlags = []struct {
	name string
	bit  chip8.QuirkSet
}{
	{"flag-reset", chip8.FlagReset},
	{"inc-index", chip8.IncIndex},
	{"display-wait-lores", chip8.DisplayWaitLores},
	{"display-wait-hires", chip8.DisplayWaitHires},
	{"clip-sprites-lores", chip8.ClipSpritesLores},
	{"clip-sprites-hires", chip8.ClipSpritesHires},
	{"shift-x-only", chip8.ShiftXOnly},
	{"jump-xnn", chip8.JumpXNN},
	{"ram-random", chip8.RAMRandom},
	{"clear-on-res", chip8.ClearOnRes},
	{"collision-count-lores", chip8.CollisionCountLores},
	{"collision-count-hires", chip8.CollisionCountHires},
	{"use-several-planes", chip8.UseSeveralPlanes},
	{"scroll-half-pixel", chip8.ScrollHalfPixel},
}

var modeFlags = map[string]chip8.Mode{
	"cosmac":       chip8.ModeCosmacChip8,
	"schip-legacy": chip8.ModeSuperChipLegacy,
	"schip-modern": chip8.ModeSuperChipModern,
	"xochip":       chip8.ModeXOChip,
}

func parseMode(name string) (chip8.Mode, error) {
	mode, ok := modeFlags[name]
	if !ok {
		return 0, fmt.Errorf("unknown --mode %q (want cosmac, schip-legacy, schip-modern or xochip)", name)
	}
	return mode, nil
}

func quirkBit(name string) (chip8.QuirkSet, bool) {
	for _, qf := range quirkFlags {
		if qf.name == name {
			return qf.bit, true
		}
	}
	return 0, false
}

// applyQuirkFlags starts from base (a dialect's preset) and flips every name
// in enable on, every name in disable off.
func applyQuirkFlags(base chip8.QuirkSet, enable, disable []string) (chip8.QuirkSet, error) {
	q := base
	for _, name := range enable {
		bit, ok := quirkBit(name)
		if !ok {
			return 0, fmt.Errorf("unknown --quirk %q", name)
		}
		q |= bit
	}
	for _, name := range disable {
		bit, ok := quirkBit(name)
		if !ok {
			return 0, fmt.Errorf("unknown --no-quirk %q", name)
		}
		q &^= bit
	}
	return q, nil
}

func quirkSetString(q chip8.QuirkSet) string {
	var set []string
	for _, qf := range quirkFlags {
		if q&qf.bit != 0 {
			set = append(set, qf.name)
		}
	}
	if len(set) == 0 {
		return "(none)"
	}
	return strings.Join(set, ", ")
}

var quirksCmdMode string

// quirksCmd prints the quirk preset a dialect resolves to, mainly useful for
// picking a starting point for run's --quirk/--no-quirk overrides.
var quirksCmd = &cobra.Command{
	Use:   "quirks",
	Short: "print the resolved quirk set for a dialect",
	Args:  cobra.NoArgs,
	Run:   runQuirks,
}

func init() {
	quirksCmd.Flags().StringVar(&quirksCmdMode, "mode", "cosmac", "dialect: cosmac, schip-legacy, schip-modern, xochip")
}

func runQuirks(cmd *cobra.Command, args []string) {
	mode, err := parseMode(quirksCmdMode)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	vm := chip8.NewVM(mode)
	fmt.Printf("%s: %s\n", mode, quirkSetString(vm.Quirks()))
}
