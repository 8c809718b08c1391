package video

// Display properties.
const (
	Width      = 224                         // Display width in pixels, as seen in the cabinet.
	Height     = 256                         // Display height in pixels, as seen in the cabinet.
	BytesPerPx = 4                           // RGBA.
	FrameSize  = Width * Height * BytesPerPx // Size of a decoded frame in bytes.
	VRAMSize   = Width * Height / 8          // Size of video memory in bytes: 1bpp.
	columnSize = Height / 8                  // Bytes per column of video memory.
)

// Color defines an RGBA color.
type Color [4]uint8

// Known colors. The board draws white; the cabinet glass tints parts of the screen.
var (
	Black = Color{0x00, 0x00, 0x00, 0xff}
	White = Color{0xff, 0xff, 0xff, 0xff}
	Red   = Color{0xff, 0x20, 0x20, 0xff}
	Green = Color{0x20, 0xff, 0x20, 0xff}
)

// band defines a rectangle of the colour overlay. Bounds are inclusive.
type band struct {
	x0, x1 int
	y0, y1 int
	color  Color
}

// overlay lists the tinted regions of the cabinet glass.
var overlay = []band{
	{0, Width - 1, 32, 63, Red},       // UFO and score area.
	{0, Width - 1, 184, 239, Green},   // Shields and player.
	{16, 133, 240, Height - 1, Green}, // Remaining lives.
}

// Tint returns the colour a lit pixel at the given position is drawn with.
func Tint(x, y int) Color {
	for _, b := range overlay {
		if x >= b.x0 && x <= b.x1 && y >= b.y0 && y <= b.y1 {
			return b.color
		}
	}
	return White
}

// Position returns the screen position of bit b in byte i of video memory.
// The monitor is mounted rotated: memory runs in columns from the bottom
// of the screen up, left to right.
func Position(i, b int) (x, y int) {
	x = i / columnSize
	y = Height - 1 - ((i%columnSize)*8 + b)
	return
}

// Decode renders video memory into dst as RGBA pixels, row by row from the top left.
// dst must hold at least FrameSize bytes. Memory beyond VRAMSize is ignored.
func Decode(vram, dst []byte) {
	if len(vram) > VRAMSize {
		vram = vram[:VRAMSize]
	}

	for i, v := range vram {
		for b := 0; b < 8; b++ {
			x, y := Position(i, b)

			c := Black
			if v&(1<<uint(b)) != 0 {
				c = Tint(x, y)
			}

			copy(dst[(y*Width+x)*BytesPerPx:], c[:])
		}
	}
}
