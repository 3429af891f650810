package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"polyscan/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{
			title: name,
			desc:  strings.ToLower(filepath.Ext(name)),
			path:  filepath.Join(m.cwd, name),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath replaces the current polygons with the rings read from p.
func (m *Model) loadPath(p string) {
	d, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.setData(d, "loaded: "+filepath.Base(p))
}

// setData installs d and resets the view. In strict mode rings that fail
// validation are reported and the data is rejected.
func (m *Model) setData(d geom.Data, what string) {
	if m.conv.Strict {
		for i, r := range d.Rings {
			if err := geom.Validate(r); err != nil {
				m.status = fmt.Sprintf("ring %d: %v", i+1, err)
				return
			}
		}
	}
	m.data = d
	m.dataGen++
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.angle = 0
	if m.showStats {
		m.refreshStats()
	}
	verts := 0
	for _, r := range d.Rings {
		verts += len(r)
	}
	m.status = fmt.Sprintf("%s  rings=%d vertices=%d", what, len(d.Rings), verts)
}
