package chip8

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// frameToImage renders a plane-encoded framebuffer as an 8-bit grayscale
// image, the same intensity mapping internal/pixel uses to draw it.
func frameToImage(cells [DisplayHeight][DisplayWidth]byte) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, DisplayWidth, DisplayHeight))
	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			img.SetGray(x, y, color.Gray{Y: cells[y][x]})
		}
	}
	return img
}

// TestGoldenFramebufferPNGRoundTrip exercises the golden-bitmap comparison
// path a dialect regression suite would use: render a known sprite, encode
// it as a PNG the way a checked-in fixture would be produced, decode it
// back, and confirm every pixel survives the round trip unchanged.
func TestGoldenFramebufferPNGRoundTrip(t *testing.T) {
	vm := NewVM(ModeSuperChipModern)
	if err := vm.LoadROM([]byte{0x00, 0xFF, 0xD0, 0x15}); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	vm.v[0] = 10
	vm.v[1] = 10
	vm.i = 0x300
	copy(vm.memory[0x300:], []byte{0xFF, 0x81, 0x81, 0x81, 0xFF})

	vm.TakeSteps(2)

	want := frameToImage(vm.GetDisplayBuffer())

	var buf bytes.Buffer
	if err := png.Encode(&buf, want); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}

	got, ok := decoded.(*image.Gray)
	if !ok {
		t.Fatalf("decoded image is %T, want *image.Gray", decoded)
	}
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Fatal("framebuffer PNG round trip changed pixel data")
	}
}
