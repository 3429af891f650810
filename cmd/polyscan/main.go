// Command polyscan fills polygons on a character grid.
//
// Without -print or -png it opens an interactive viewer that animates the
// rotating demo star or a polygon loaded from a WKT, GeoJSON, CSV or KML
// file. With -print it writes one frame as '@' text; with -png it writes the
// frame as a scaled grayscale image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	xdraw "golang.org/x/image/draw"

	"polyscan/internal/geom"
	"polyscan/internal/raster"
	"polyscan/internal/scene"
	"polyscan/internal/tui"
)

type config struct {
	width, height int
	print         bool
	pngPath       string
	scale         int
	angle         float64
	zoom          float64
	unit          float64
	logPath       string
	strict        bool
	maxTraps      int
	block         bool
	still         bool
	path          string
}

func parseFlags(args []string) (config, error) {
	var c config
	fs := flag.NewFlagSet("polyscan", flag.ContinueOnError)
	fs.IntVar(&c.width, "width", 100, "headless frame width in cells")
	fs.IntVar(&c.height, "height", 43, "headless frame height in cells")
	fs.BoolVar(&c.print, "print", false, "print one frame to stdout and exit")
	fs.StringVar(&c.pngPath, "png", "", "write one frame as PNG to `file` and exit")
	fs.IntVar(&c.scale, "scale", 8, "PNG pixels per cell")
	fs.Float64Var(&c.angle, "angle", 0, "rotation in degrees, counter-clockwise")
	fs.Float64Var(&c.zoom, "zoom", 1, "zoom factor")
	fs.Float64Var(&c.unit, "unit", 0, "cells per polygon unit; 0 fits the polygon to the frame")
	fs.StringVar(&c.logPath, "log", "", "write debug log to `file`")
	fs.BoolVar(&c.strict, "strict", false, "reject invalid polygons")
	fs.IntVar(&c.maxTraps, "max-trapezoids", 0, "fail when a sweep needs more open trapezoids; 0 means no limit")
	fs.BoolVar(&c.block, "block", false, "viewer starts in block mode instead of braille")
	fs.BoolVar(&c.still, "still", false, "viewer starts paused")
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if fs.NArg() > 1 {
		return c, fmt.Errorf("expected at most one polygon file, got %d", fs.NArg())
	}
	c.path = fs.Arg(0)
	if c.width <= 0 || c.height <= 0 || c.scale <= 0 {
		return c, errors.New("width, height and scale must be positive")
	}
	if c.maxTraps < 0 {
		return c, errors.New("max-trapezoids must not be negative")
	}
	return c, nil
}

func main() {
	c, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	if c.logPath != "" {
		f, err := tea.LogToFile(c.logPath, "polyscan")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		raster.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if c.print || c.pngPath != "" {
		if err := renderFrame(c, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	mode := tui.ModeBraille
	if c.block {
		mode = tui.ModeBlock
	}
	m := tui.New(tui.Options{
		Path:          c.path,
		Animate:       !c.still,
		Mode:          mode,
		Strict:        c.strict,
		MaxTrapezoids: c.maxTraps,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}

// renderFrame draws one frame and writes it as text to out and, when
// requested, as PNG.
func renderFrame(c config, out io.Writer) error {
	d := geom.Star()
	if c.path != "" {
		var err error
		if d, err = geom.Load(c.path); err != nil {
			return err
		}
	}
	if c.strict {
		for i, r := range d.Rings {
			if err := geom.Validate(r); err != nil {
				return fmt.Errorf("ring %d: %w", i+1, err)
			}
		}
	}

	sc := scene.New(d)
	sc.Unit = c.unit
	sc.Zoom = c.zoom
	sc.Angle = c.angle
	buf := raster.NewBuffer(c.width, c.height)
	stats, err := sc.Render(buf, &raster.Converter{Strict: c.strict, MaxTrapezoids: c.maxTraps})
	if err != nil {
		return err
	}
	for i, st := range stats {
		raster.Logger().Debug("ring converted", "ring", i+1, "vertices", st.Vertices, "peak", st.Peak, "marks", st.Marks)
	}

	if c.print {
		if _, err := io.WriteString(out, buf.String()); err != nil {
			return err
		}
	}
	if c.pngPath != "" {
		return writePNG(c.pngPath, buf.Image(), c.scale)
	}
	return nil
}

func writePNG(path string, src *image.Gray, scale int) error {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
