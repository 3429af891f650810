package tui

import (
	"cmp"
	"math"
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"polyscan/internal/geom"
	"polyscan/internal/raster"
	"polyscan/internal/scene"
)

// RenderMode selects how polygon cells map to terminal cells.
type RenderMode int

const (
	// ModeBraille draws 2×4 micro-pixels per terminal cell.
	ModeBraille RenderMode = iota
	// ModeBlock draws one '@' per filled terminal cell.
	ModeBlock
)

func (r RenderMode) String() string {
	if r == ModeBlock {
		return "block"
	}
	return "braille"
}

// DefaultInterval is the animation frame period.
const DefaultInterval = 100 * time.Millisecond

// Options configures a new Model.
type Options struct {
	Path          string        // polygon file to load; empty shows the demo star
	Animate       bool          // start rotating immediately
	Interval      time.Duration // frame period, DefaultInterval if zero
	Mode          RenderMode
	Strict        bool // validate rings and enable strict conversion
	MaxTrapezoids int
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	data    geom.Data
	dataGen int // bumped on every setData
	conv    raster.Converter
	cache   *frameCache

	// view
	zoom    float64
	offsetX int // terminal cells
	offsetY int
	angle   float64 // manual rotation in degrees
	mode    RenderMode
	outline bool

	// animation
	animate  bool
	interval time.Duration
	frame    int // frames shown while animating
	gen      int // tick loop generation; stale ticks are dropped

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// statistics table
	showStats bool
	tbl       table.Model
	lastErr   error

	// hover state
	hovering bool
	hoverX   int // map cell
	hoverY   int
	hoverHit bool
}

func New(opts Options) Model {
	m := Model{
		helpVisible: true,
		zoom:        1.0,
		status:      "polyscan ready",
		mode:        opts.Mode,
		animate:     opts.Animate,
		interval:    cmp.Or(opts.Interval, DefaultInterval),
		conv:        raster.Converter{Strict: opts.Strict, MaxTrapezoids: opts.MaxTrapezoids},
		data:        geom.Star(),
		cache:       &frameCache{},
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POLYGON, MULTIPOLYGON). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithColumns(statsColumns), table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	if opts.Path != "" {
		m.loadPath(opts.Path)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.animate {
		return m.tick()
	}
	return nil
}

// Angle returns the current rotation in degrees: the manual angle plus the
// animated swing of ±180° following sin(frame/10).
func (m Model) Angle() float64 {
	return m.angle + 180*math.Sin(float64(m.frame)/10)
}

// sceneFor builds the view of the current data for a canvas in the given
// mode. Offsets are kept in terminal cells and scaled to the mode's grid.
func (m Model) sceneFor(mode RenderMode) *scene.Scene {
	s := scene.New(m.data)
	s.Zoom = m.zoom
	s.Angle = m.Angle()
	switch mode {
	case ModeBlock:
		s.OffsetX, s.OffsetY = m.offsetX, m.offsetY
		s.Aspect = 0.5
	default:
		s.OffsetX, s.OffsetY = m.offsetX*2, m.offsetY*4
	}
	return s
}
