package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/brhamilton/chippy/internal/audio"
	"github.com/brhamilton/chippy/internal/chip8"
	"github.com/brhamilton/chippy/internal/pixel"
	"github.com/faiface/pixel/pixelgl"
	"github.com/spf13/cobra"
)

const refreshRate = 60

var (
	runMode          string
	runEnableQuirks  []string
	runDisableQuirks []string
	runStepsPerFrame int
)

// runCmd runs the chippy virtual machine and waits for the window to close
var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "run the chippy emulator",
	Args:  cobra.ExactArgs(1),
	Run:   runChippy,
}

func init() {
	runCmd.Flags().StringVar(&runMode, "mode", "cosmac", "dialect: cosmac, schip-legacy, schip-modern, xochip")
	runCmd.Flags().StringSliceVar(&runEnableQuirks, "quirk", nil, "enable a quirk on top of the dialect's preset (repeatable)")
	runCmd.Flags().StringSliceVar(&runDisableQuirks, "no-quirk", nil, "disable a quirk from the dialect's preset (repeatable)")
	runCmd.Flags().IntVar(&runStepsPerFrame, "steps-per-frame", 0, "override the dialect's default CPU steps per frame (0 keeps the default)")
}

func runChippy(cmd *cobra.Command, args []string) {
	romPath := args[0]

	mode, err := parseMode(runMode)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	vm := chip8.NewVM(mode)
	if len(runEnableQuirks) > 0 || len(runDisableQuirks) > 0 {
		quirks, err := applyQuirkFlags(vm.Quirks(), runEnableQuirks, runDisableQuirks)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		vm = chip8.NewVMWithQuirks(mode, quirks)
	}
	if runStepsPerFrame > 0 {
		vm.SetStepsPerFrame(runStepsPerFrame)
	}

	rom, err := os.ReadFile(romPath)
	if err != nil {
		fmt.Printf("error reading rom: %v\n", err)
		os.Exit(1)
	}
	if err := vm.LoadROM(rom); err != nil {
		fmt.Printf("error loading rom: %v\n", err)
		os.Exit(1)
	}

	// pixelgl needs access to the main thread so this pattern is required
	pixelgl.Run(func() {
		runWindowLoop(vm, romPath)
	})
}

func runWindowLoop(vm *chip8.VM, romPath string) {
	defer func() {
		if r := recover(); r != nil {
			if fatal, ok := r.(chip8.FatalError); ok {
				fmt.Printf("chippy: fatal error: %v\n", fatal)
				os.Exit(1)
			}
			panic(r)
		}
	}()

	win, err := pixel.NewWindow(fmt.Sprintf("chippy - %s", romPath))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	player, err := audio.NewPlayer(vm, "assets/beep.mp3")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	player.Start()

	ticker := time.NewTicker(time.Second / refreshRate)
	defer ticker.Stop()

	for range ticker.C {
		if win.Closed() {
			fmt.Println("exit signal detected, gracefully shutting down...")
			return
		}

		vm.RunFrame()
		win.HandleKeyInput(vm)

		if vm.DisplayChanged() {
			win.DrawGraphics(vm.GetDisplayBuffer())
		} else {
			win.UpdateInput()
		}
	}
}
