package tui

// brailleBuf is a raster.Canvas of 2×4 micro-pixels per terminal cell.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// Size returns the micro-pixel dimensions.
func (b *brailleBuf) Size() (int, int) { return b.w * 2, b.h * 4 }

// dotBits maps micro-pixel (x%2, y%4) to the Unicode braille dot bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Mark sets a micro-pixel. Out of range pixels are ignored.
func (b *brailleBuf) Mark(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[mx%2][my%4]
}

// At reports whether a micro-pixel is set.
func (b *brailleBuf) At(mx, my int) bool {
	if mx < 0 || my < 0 || mx/2 >= b.w || my/4 >= b.h {
		return false
	}
	return b.m[my/4][mx/2]&dotBits[mx%2][my%4] != 0
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}
