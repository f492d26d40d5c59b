package pixel

import (
	"fmt"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/brhamilton/chippy/internal/chip8"
)

// The VM draws sprites in XOR mode and reports collisions through VF; all
// the window does is turn the resulting framebuffer into rectangles and the
// host's keyboard into VM key events.
const (
	screenWidth  float64 = 1024
	screenHeight float64 = 768
)

const keyRepeatDur = time.Second / 5

// Window embeds a pixelgl window, a hex-keypad keymap, and a per-key ticker
// used to repeat a held key the same way a physical keypad would.
type Window struct {
	*pixelgl.Window
	KeyMap   map[int]pixelgl.Button
	KeysDown [16]*time.Ticker
}

// NewWindow creates a pixelgl window sized for the 128x64 chippy display and
// a default QWERTY-mapped hex keypad layout.
func NewWindow(title string) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, screenWidth, screenHeight),
		VSync:  true,
	}
	w, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating new window: %v", err)
	}
	km := map[int]pixelgl.Button{
		0x1: pixelgl.Key1, 0x2: pixelgl.Key2, 0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
		0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW, 0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
		0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS, 0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
		0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX, 0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
	}
	return &Window{Window: w, KeyMap: km}, nil
}

// DrawGraphics renders the 128x64 plane-encoded framebuffer. A cell's value
// is a multiple of 255/(2^planes-1) (chip8.repeatBits(1, planes)); we treat
// it directly as a grayscale intensity so a second XO-Chip plane shows up as
// a distinct shade rather than only on/off.
func (w *Window) DrawGraphics(cells [chip8.DisplayHeight][chip8.DisplayWidth]byte) {
	w.Clear(colornames.Black)
	imDraw := imdraw.New(nil)
	width := screenWidth / float64(chip8.DisplayWidth)
	height := screenHeight / float64(chip8.DisplayHeight)

	for y := 0; y < chip8.DisplayHeight; y++ {
		for x := 0; x < chip8.DisplayWidth; x++ {
			v := cells[y][x]
			if v == chip8.PixelOff {
				continue
			}
			intensity := float64(v) / float64(chip8.PixelOn)
			imDraw.Color = pixel.RGB(intensity, intensity, intensity)
			row := chip8.DisplayHeight - 1 - y
			imDraw.Push(pixel.V(width*float64(x), height*float64(row)))
			imDraw.Push(pixel.V(width*float64(x)+width, height*float64(row)+height))
			imDraw.Rectangle(0)
		}
	}

	imDraw.Draw(w)
	w.Update()
}

// HandleKeyInput polls every mapped key and forwards press/release edges
// into vm, debouncing a held key with a repeat ticker the way the original
// window did.
func (w *Window) HandleKeyInput(vm *chip8.VM) {
	for i, key := range w.KeyMap {
		switch {
		case w.JustReleased(key):
			if w.KeysDown[i] != nil {
				w.KeysDown[i].Stop()
				w.KeysDown[i] = nil
			}
			vm.KeyRelease(i)
		case w.JustPressed(key):
			if w.KeysDown[i] == nil {
				w.KeysDown[i] = time.NewTicker(keyRepeatDur)
			}
			vm.KeyPress(i)
		case w.KeysDown[i] != nil:
			select {
			case <-w.KeysDown[i].C:
				vm.KeyPress(i)
			default:
			}
		}
	}
}
