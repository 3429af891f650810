package tui

import (
	"image"

	"polyscan/internal/raster"
)

// frameKey identifies everything a rendered frame depends on.
type frameKey struct {
	w, h    int
	data    int
	zoom    float64
	offX    int
	offY    int
	angle   float64
	mode    RenderMode
	outline bool
}

// frameCache holds the last rendered frame. It is shared by the copies of
// a Model so View, stats and hover lookups reuse one render.
type frameCache struct {
	key     frameKey
	valid   bool
	rows    []string
	stats   []raster.Stats
	err     error
	renders int
}

func (m Model) frameKey(w, h int) frameKey {
	return frameKey{
		w:       w,
		h:       h,
		data:    m.dataGen,
		zoom:    m.zoom,
		offX:    m.offsetX,
		offY:    m.offsetY,
		angle:   m.Angle(),
		mode:    m.mode,
		outline: m.outline,
	}
}

// renderFrame returns the rows and per-ring statistics of the current scene
// in a w×h cell area, rendering only when the view changed since the last
// call.
func (m Model) renderFrame(w, h int) ([]string, []raster.Stats, error) {
	if w <= 0 || h <= 0 {
		return nil, nil, nil
	}
	if m.cache == nil {
		return m.draw(w, h)
	}
	key := m.frameKey(w, h)
	if c := m.cache; !c.valid || c.key != key {
		c.rows, c.stats, c.err = m.draw(w, h)
		c.key, c.valid = key, true
		c.renders++
	}
	return m.cache.rows, m.cache.stats, m.cache.err
}

// draw renders the current scene into a w×h cell area.
func (m Model) draw(w, h int) ([]string, []raster.Stats, error) {
	conv := m.conv
	var (
		rows  []string
		stats []raster.Stats
		err   error
	)
	switch m.mode {
	case ModeBlock:
		buf := raster.NewBuffer(w, h)
		stats, err = m.sceneFor(ModeBlock).Render(buf, &conv)
		rows = buf.Rows()
	default:
		br := newBrailleBuf(w, h)
		stats, err = m.sceneFor(ModeBraille).Render(br, &conv)
		rows = br.toLines()
	}
	if m.outline {
		rows = drawOutline(rows, m.sceneFor(ModeBlock).Project(w, h))
	}
	return rows, stats, err
}

// drawOutline overlays the ring edges onto rows with box-drawing glyphs
// chosen from each Bresenham step. Vertices are drawn as dots.
func drawOutline(rows []string, rings [][]image.Point) []string {
	grid := make([][]rune, len(rows))
	for y, r := range rows {
		grid[y] = []rune(r)
	}
	set := func(p image.Point, g rune) {
		if p.Y >= 0 && p.Y < len(grid) && p.X >= 0 && p.X < len(grid[p.Y]) {
			grid[p.Y][p.X] = g
		}
	}
	for _, ring := range rings {
		for i, a := range ring {
			b := ring[(i+1)%len(ring)]
			prev := a
			for p := range raster.NewLine(a, b).Points() {
				set(p, edgeGlyph(p.Sub(prev)))
				prev = p
			}
		}
		for _, v := range ring {
			set(v, '•')
		}
	}
	out := make([]string, len(grid))
	for y, r := range grid {
		out[y] = string(r)
	}
	return out
}

// edgeGlyph picks a glyph for a unit step in screen coordinates (y down).
func edgeGlyph(d image.Point) rune {
	switch {
	case d.X != 0 && d.Y != 0:
		if (d.X > 0) == (d.Y > 0) {
			return '╲'
		}
		return '╱'
	case d.X != 0:
		return '─'
	case d.Y != 0:
		return '│'
	}
	return '•'
}
