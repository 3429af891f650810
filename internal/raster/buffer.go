package raster

import (
	"image"
	"image/color"
	"strings"
)

// Canvas is the output of a conversion. Mark is only called with
// coordinates inside [0,w)×[0,h) as reported by Size.
type Canvas interface {
	Size() (w, h int)
	Mark(x, y int)
}

// Glyphs used by Buffer.Rows.
const (
	FillGlyph       = '@'
	BackgroundGlyph = ' '
)

// Buffer is a fixed-size grid of filled/background cells.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	w, h  int
	cells []bool // row-major
}

// NewBuffer returns a cleared w×h buffer. Negative sizes are treated as 0.
func NewBuffer(w, h int) *Buffer {
	w, h = max(w, 0), max(h, 0)
	return &Buffer{w: w, h: h, cells: make([]bool, w*h)}
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) { return b.w, b.h }

// Bounds returns the buffer rectangle.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.w, b.h) }

// Mark fills cell (x, y). Cells outside the buffer are ignored.
func (b *Buffer) Mark(x, y int) {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return
	}
	b.cells[y*b.w+x] = true
}

// At reports whether cell (x, y) is filled.
func (b *Buffer) At(x, y int) bool {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return false
	}
	return b.cells[y*b.w+x]
}

// Clear resets every cell to background.
func (b *Buffer) Clear() {
	clear(b.cells)
}

// Count returns the number of filled cells.
func (b *Buffer) Count() int {
	n := 0
	for _, c := range b.cells {
		if c {
			n++
		}
	}
	return n
}

// Rows renders the buffer as one string per row.
func (b *Buffer) Rows() []string {
	out := make([]string, b.h)
	row := make([]byte, b.w)
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if b.cells[y*b.w+x] {
				row[x] = FillGlyph
			} else {
				row[x] = BackgroundGlyph
			}
		}
		out[y] = string(row)
	}
	return out
}

// String renders the buffer as newline-terminated rows.
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.Grow((b.w + 1) * b.h)
	for _, r := range b.Rows() {
		sb.WriteString(r)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Image returns a grayscale copy of the buffer with filled cells white.
func (b *Buffer) Image() *image.Gray {
	img := image.NewGray(b.Bounds())
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if b.cells[y*b.w+x] {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}
