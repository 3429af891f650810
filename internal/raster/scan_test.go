package raster

import (
	"errors"
	"fmt"
	"image"
	"math"
	"slices"
	"sort"
	"strings"
	"testing"
)

var (
	square   = []image.Point{{2, 2}, {6, 2}, {6, 6}, {2, 6}}
	triangle = []image.Point{{0, 0}, {4, 0}, {2, 4}}

	// star has one split and one merge vertex.
	star = translate([]image.Point{
		{-13, -13}, {0, -7}, {13, -13}, {7, 0},
		{13, 13}, {0, 7}, {-13, 13}, {-7, 0},
	}, image.Pt(20, 20))

	// comb opens to the right; (8,6) splits the outer region.
	comb = []image.Point{{2, 2}, {20, 2}, {20, 6}, {8, 6}, {8, 10}, {20, 10}, {20, 14}, {2, 14}}

	// fork opens to the left; (14,10) merges two regions.
	fork = []image.Point{{2, 2}, {20, 2}, {20, 14}, {2, 14}, {2, 10}, {14, 10}, {14, 6}, {2, 6}}

	arrow = []image.Point{{3, 9}, {15, 1}, {27, 9}, {21, 9}, {21, 22}, {9, 22}, {9, 9}}
	notch = []image.Point{{1, 1}, {30, 4}, {12, 11}, {29, 20}, {2, 17}, {7, 10}}
)

func translate(poly []image.Point, d image.Point) []image.Point {
	out := make([]image.Point, len(poly))
	for i, p := range poly {
		out[i] = p.Add(d)
	}
	return out
}

func convert(t *testing.T, conv Converter, poly []image.Point, w, h int) (*Buffer, Stats) {
	t.Helper()
	buf := NewBuffer(w, h)
	st, err := conv.Convert(poly, buf)
	if err != nil {
		t.Fatalf("Convert(%v): %v", poly, err)
	}
	return buf, st
}

// referenceFill marks the closed lattice interior of poly with a classic
// edge-table scanline fill plus the lattice points on every edge.
func referenceFill(poly []image.Point, w, h int) *Buffer {
	type edge struct {
		ymin, ymax int
		x0, y0     float64
		slope      float64 // dx/dy
	}
	var table []edge
	n := len(poly)
	for i := range poly {
		a, b := poly[i], poly[(i+1)%n]
		if a.Y == b.Y {
			continue
		}
		if a.Y > b.Y {
			a, b = b, a
		}
		table = append(table, edge{
			ymin: a.Y, ymax: b.Y,
			x0: float64(a.X), y0: float64(a.Y),
			slope: float64(b.X-a.X) / float64(b.Y-a.Y),
		})
	}
	sort.Slice(table, func(i, j int) bool { return table[i].ymin < table[j].ymin })

	buf := NewBuffer(w, h)
	var active []edge
	next := 0
	for y := 0; y < h; y++ {
		for next < len(table) && table[next].ymin <= y {
			active = append(active, table[next])
			next++
		}
		// half-open rule: an edge covers ymin <= y < ymax
		active = slices.DeleteFunc(active, func(e edge) bool { return e.ymax <= y })
		var xs []float64
		for _, e := range active {
			if e.ymin <= y {
				xs = append(xs, e.x0+(float64(y)-e.y0)*e.slope)
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i] - 1e-9)); float64(x) <= xs[i+1]+1e-9; x++ {
				buf.Mark(x, y)
			}
		}
	}
	for i := range poly {
		a, b := poly[i], poly[(i+1)%n]
		d := b.Sub(a)
		g := gcd(abs(d.X), abs(d.Y))
		if g == 0 {
			buf.Mark(a.X, a.Y)
			continue
		}
		for k := 0; k <= g; k++ {
			buf.Mark(a.X+d.X/g*k, a.Y+d.Y/g*k)
		}
	}
	return buf
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// stripExtent returns the y range of poly's boundary inside the vertical
// strip x±½.
func stripExtent(poly []image.Point, x int) (lo, hi float64, ok bool) {
	xl, xr := float64(x)-0.5, float64(x)+0.5
	lo, hi = math.Inf(1), math.Inf(-1)
	add := func(y float64) {
		lo, hi, ok = min(lo, y), max(hi, y), true
	}
	n := len(poly)
	for i := range poly {
		a, b := poly[i], poly[(i+1)%n]
		if a.X > b.X {
			a, b = b, a
		}
		ax, ay, bx, by := float64(a.X), float64(a.Y), float64(b.X), float64(b.Y)
		if bx < xl || ax > xr {
			continue
		}
		if a.X == b.X {
			add(ay)
			add(by)
			continue
		}
		at := func(x float64) float64 { return ay + (x-ax)*(by-ay)/(bx-ax) }
		add(at(max(ax, xl)))
		add(at(min(bx, xr)))
	}
	return lo, hi, ok
}

func diff(got, want *Buffer) string {
	var sb strings.Builder
	w, h := got.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if g, r := got.At(x, y), want.At(x, y); g != r {
				fmt.Fprintf(&sb, " (%d,%d) got=%v want=%v", x, y, g, r)
			}
		}
	}
	return sb.String()
}

func TestConvertSquare(t *testing.T) {
	buf, st := convert(t, Converter{}, square, 10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := x >= 2 && x <= 6 && y >= 2 && y <= 6
			if buf.At(x, y) != want {
				t.Errorf("cell (%d,%d) = %v, want %v", x, y, buf.At(x, y), want)
			}
		}
	}
	if st.Peak != 1 || st.Leftover != 0 || st.Vertices != 4 {
		t.Errorf("stats = %+v", st)
	}
}

func TestConvertTriangle(t *testing.T) {
	buf, _ := convert(t, Converter{}, triangle, 5, 5)
	// Boundary cells follow the Bresenham edges, so this is wider than the
	// half-open scanline fill of referenceFill.
	want := []string{
		"@@@@@",
		"@@@@ ",
		" @@@ ",
		" @@  ",
		"  @  ",
	}
	if got := buf.Rows(); !slices.Equal(got, want) {
		t.Errorf("Rows() =\n%q\nwant\n%q", got, want)
	}
	if err := contiguous(buf); err != nil {
		t.Error(err)
	}
}

// contiguous reports the first row or column of b whose filled cells do not
// form a single run.
func contiguous(b *Buffer) error {
	w, h := b.Size()
	runs := func(n int, at func(i int) bool) int {
		count := 0
		for i := range n {
			if at(i) && (i == 0 || !at(i-1)) {
				count++
			}
		}
		return count
	}
	for y := range h {
		if r := runs(w, func(x int) bool { return b.At(x, y) }); r > 1 {
			return fmt.Errorf("row %d has %d filled runs", y, r)
		}
	}
	for x := range w {
		if r := runs(h, func(y int) bool { return b.At(x, y) }); r > 1 {
			return fmt.Errorf("column %d has %d filled runs", x, r)
		}
	}
	return nil
}

func TestConvertAxisAligned(t *testing.T) {
	for name, poly := range map[string][]image.Point{
		"square": square,
		"comb":   comb,
		"fork":   fork,
	} {
		t.Run(name, func(t *testing.T) {
			got, st := convert(t, Converter{}, poly, 24, 16)
			if d := diff(got, referenceFill(poly, 24, 16)); d != "" {
				t.Errorf("differs from reference:%s", d)
			}
			if st.Leftover != 0 {
				t.Errorf("Leftover = %d", st.Leftover)
			}
		})
	}
}

func TestConvertBounds(t *testing.T) {
	const w, h = 40, 40
	for name, poly := range map[string][]image.Point{
		"triangle": triangle,
		"star":     star,
		"comb":     comb,
		"fork":     fork,
		"arrow":    arrow,
		"notch":    notch,
	} {
		t.Run(name, func(t *testing.T) {
			got, st := convert(t, Converter{}, poly, w, h)
			if st.Leftover != 0 {
				t.Errorf("Leftover = %d", st.Leftover)
			}
			ref := referenceFill(poly, w, h)
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					if ref.At(x, y) && !got.At(x, y) {
						t.Errorf("lattice point (%d,%d) of the polygon not filled", x, y)
					}
					if !got.At(x, y) {
						continue
					}
					lo, hi, ok := stripExtent(poly, x)
					if !ok || float64(y) < lo-0.5-1e-9 || float64(y) > hi+0.5+1e-9 {
						t.Errorf("cell (%d,%d) outside column extent [%v,%v]", x, y, lo, hi)
					}
				}
			}
		})
	}
}

func TestConvertStartAndDirection(t *testing.T) {
	for name, poly := range map[string][]image.Point{
		"star":  star,
		"comb":  comb,
		"fork":  fork,
		"notch": notch,
	} {
		t.Run(name, func(t *testing.T) {
			want, _ := convert(t, Converter{}, poly, 40, 40)
			for k := range poly {
				rot := append(slices.Clone(poly[k:]), poly[:k]...)
				got, _ := convert(t, Converter{}, rot, 40, 40)
				if d := diff(got, want); d != "" {
					t.Errorf("start %d:%s", k, d)
				}
				rev := slices.Clone(rot)
				slices.Reverse(rev)
				got, _ = convert(t, Converter{}, rev, 40, 40)
				if d := diff(got, want); d != "" {
					t.Errorf("reversed, start %d:%s", k, d)
				}
			}
		})
	}
}

func TestConvertTraversalOrder(t *testing.T) {
	for _, poly := range [][]image.Point{star, comb, fork, arrow, notch} {
		want, _ := convert(t, Converter{}, poly, 40, 40)
		got, _ := convert(t, Converter{reverse: true}, poly, 40, 40)
		if d := diff(got, want); d != "" {
			t.Errorf("oldest-first traversal of %v:%s", poly, d)
		}
	}
}

func TestConvertDeterministic(t *testing.T) {
	a, sa := convert(t, Converter{}, star, 40, 40)
	b, sb := convert(t, Converter{}, star, 40, 40)
	if a.String() != b.String() || sa != sb {
		t.Errorf("two conversions differ: %+v vs %+v", sa, sb)
	}
	if sa.Peak < 2 {
		t.Errorf("star Peak = %d, want at least 2", sa.Peak)
	}
}

// strictCanvas fails the test on any out-of-range Mark.
type strictCanvas struct {
	t    *testing.T
	buf  *Buffer
	hits int
}

func (c *strictCanvas) Size() (int, int) { return c.buf.Size() }

func (c *strictCanvas) Mark(x, y int) {
	w, h := c.buf.Size()
	if x < 0 || x >= w || y < 0 || y >= h {
		c.t.Errorf("Mark(%d, %d) outside %dx%d", x, y, w, h)
	}
	c.hits++
	c.buf.Mark(x, y)
}

func TestConvertClipping(t *testing.T) {
	// the same polygon shifted partly off a small canvas must match the
	// corresponding window of a large one
	off := image.Pt(-17, -9)
	small := &strictCanvas{t: t, buf: NewBuffer(20, 15)}
	st, err := (&Converter{}).Convert(translate(star, off), small)
	if err != nil {
		t.Fatal(err)
	}
	if st.Marks != small.hits {
		t.Errorf("Marks = %d, canvas saw %d", st.Marks, small.hits)
	}
	big, _ := convert(t, Converter{}, star, 40, 40)
	for y := 0; y < 15; y++ {
		for x := 0; x < 20; x++ {
			if got, want := small.buf.At(x, y), big.At(x-off.X, y-off.Y); got != want {
				t.Errorf("cell (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	far := &strictCanvas{t: t, buf: NewBuffer(5, 5)}
	if _, err := (&Converter{}).Convert(translate(square, image.Pt(100, -50)), far); err != nil {
		t.Fatal(err)
	}
	if far.hits != 0 {
		t.Errorf("off-canvas polygon marked %d cells", far.hits)
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name string
		conv Converter
		poly []image.Point
		want error
	}{
		{"empty", Converter{}, nil, ErrTooFewVertices},
		{"two vertices", Converter{}, []image.Point{{0, 0}, {3, 3}}, ErrTooFewVertices},
		{"duplicate vertex", Converter{Strict: true}, []image.Point{{0, 0}, {4, 0}, {4, 0}, {2, 4}}, ErrDegenerateEdge},
		{"trapezoid limit", Converter{MaxTrapezoids: 1}, star, ErrTrapezoidLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.conv.Convert(tt.poly, NewBuffer(40, 40))
			if !errors.Is(err, tt.want) {
				t.Errorf("Convert() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConvertLenient(t *testing.T) {
	// repeated vertices are tolerated without Strict
	poly := []image.Point{{0, 0}, {4, 0}, {4, 0}, {2, 4}}
	buf := NewBuffer(8, 8)
	if err := Fill(poly, buf); err != nil {
		t.Fatalf("Fill() = %v", err)
	}
	if buf.Count() == 0 {
		t.Error("nothing filled")
	}
	if _, err := (&Converter{MaxTrapezoids: 2}).Convert(star, NewBuffer(40, 40)); err != nil {
		t.Errorf("star within limit: %v", err)
	}
}

func ExampleFill() {
	buf := NewBuffer(5, 5)
	if err := Fill([]image.Point{{0, 0}, {4, 0}, {2, 4}}, buf); err != nil {
		panic(err)
	}
	fmt.Print(strings.ReplaceAll(buf.String(), " ", "."))
	// Output:
	// @@@@@
	// @@@@.
	// .@@@.
	// .@@..
	// ..@..
}
