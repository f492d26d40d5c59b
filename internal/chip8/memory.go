package chip8

// Memory layout constants, shared by every dialect. See SPEC_FULL.md §5.
const (
	// MemSize is the default 4KB address space.
	MemSize = 0x1000
	// ExtendedMemSize is the 64KB address space XO-Chip's F000 long-I-load
	// instruction can address.
	ExtendedMemSize = 0x10000

	// ProgramStart is the address every ROM is loaded at.
	ProgramStart = 0x200

	// ProgramSize is the maximum ROM size in the default 4KB address space.
	ProgramSize = MemSize - ProgramStart
	// ExtendedProgramSize is the maximum ROM size in extended addressing mode.
	ExtendedProgramSize = ExtendedMemSize - ProgramStart

	// smallFontBase is where the 16 5-byte hex-digit glyphs live.
	smallFontBase = 0x000
	// smallFontGlyphSize is the byte length of one small glyph.
	smallFontGlyphSize = 5
	// largeFontBase is where the 16 10-byte hex-digit glyphs live,
	// immediately after the small font table.
	largeFontBase = smallFontBase + 16*smallFontGlyphSize
	// largeFontGlyphSize is the byte length of one large glyph.
	largeFontGlyphSize = 10
)

// smallFont holds the 16 5-byte hex-digit glyphs, byte-identical across
// every known Chip-8 implementation.
var smallFont = [16 * smallFontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// largeFont holds the 16 10-byte Super-Chip hex-digit glyphs, used by FX30.
var largeFont = [16 * largeFontGlyphSize]byte{
	0x3C, 0x7E, 0xE7, 0xC3, 0xC3, 0xC3, 0xC3, 0xE7, 0x7E, 0x3C, // 0
	0x18, 0x38, 0x58, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x3C, // 1
	0x3E, 0x7F, 0xC3, 0x06, 0x0C, 0x18, 0x30, 0x60, 0xFF, 0xFF, // 2
	0x3C, 0x7E, 0xC3, 0x03, 0x0E, 0x0E, 0x03, 0xC3, 0x7E, 0x3C, // 3
	0x06, 0x0E, 0x1E, 0x36, 0x66, 0xC6, 0xFF, 0xFF, 0x06, 0x06, // 4
	0xFF, 0xFF, 0xC0, 0xC0, 0xFC, 0xFE, 0x03, 0xC3, 0x7E, 0x3C, // 5
	0x3E, 0x7C, 0xC0, 0xC0, 0xFC, 0xFE, 0xC3, 0xC3, 0x7E, 0x3C, // 6
	0xFF, 0xFF, 0x03, 0x06, 0x0C, 0x18, 0x30, 0x60, 0x60, 0x60, // 7
	0x3C, 0x7E, 0xC3, 0xC3, 0x7E, 0x7E, 0xC3, 0xC3, 0x7E, 0x3C, // 8
	0x3C, 0x7E, 0xC3, 0xC3, 0x7F, 0x3F, 0x03, 0x03, 0x3E, 0x7C, // 9
	0x18, 0x3C, 0x66, 0xC3, 0xC3, 0xFF, 0xFF, 0xC3, 0xC3, 0xC3, // A
	0xFC, 0xFE, 0xC3, 0xC3, 0xFC, 0xFE, 0xC3, 0xC3, 0xFE, 0xFC, // B
	0x3C, 0x7E, 0xC3, 0xC0, 0xC0, 0xC0, 0xC0, 0xC3, 0x7E, 0x3C, // C
	0xFC, 0xFE, 0xC3, 0xC3, 0xC3, 0xC3, 0xC3, 0xC3, 0xFE, 0xFC, // D
	0xFF, 0xFF, 0xC0, 0xC0, 0xFC, 0xFC, 0xC0, 0xC0, 0xFF, 0xFF, // E
	0xFF, 0xFF, 0xC0, 0xC0, 0xFC, 0xFC, 0xC0, 0xC0, 0xC0, 0xC0, // F
}

// loadFonts writes both font tables into the start of memory.
func loadFonts(mem []byte) {
	copy(mem[smallFontBase:], smallFont[:])
	copy(mem[largeFontBase:], largeFont[:])
}
