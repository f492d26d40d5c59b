package chip8

import "testing"

func TestKeypadReleasedKey(t *testing.T) {
	var k keypad
	k.press(11)
	k.snapshot()

	if _, ok := k.releasedKey(); ok {
		t.Fatal("steady-state press should not report a release")
	}

	k.release(11)
	idx, ok := k.releasedKey()
	if !ok || idx != 11 {
		t.Fatalf("releasedKey() = (%d, %v), want (11, true)", idx, ok)
	}

	k.snapshot()
	if _, ok := k.releasedKey(); ok {
		t.Fatal("release should only fire once, on the edge")
	}
}

func TestKeypadIsDown(t *testing.T) {
	var k keypad
	k.press(5)
	if !k.isDown(5) {
		t.Error("expected key 5 down")
	}
	if k.isDown(6) {
		t.Error("expected key 6 up")
	}
}
