package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

var statsColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "vertices", Width: 10},
	{Title: "peak", Width: 6},
	{Title: "marks", Width: 8},
	{Title: "leftover", Width: 10},
}

// refreshStats loads the per-ring conversion statistics of the current
// frame into the table. The frame is cached for the next View.
func (m *Model) refreshStats() {
	l := m.layout()
	_, stats, err := m.renderFrame(l.mapW, l.mapH)
	m.lastErr = err
	rows := make([]table.Row, 0, len(stats))
	for i, st := range stats {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(st.Vertices),
			strconv.Itoa(st.Peak),
			strconv.Itoa(st.Marks),
			strconv.Itoa(st.Leftover),
		})
	}
	m.tbl.SetRows(rows)
	switch {
	case err != nil:
		m.status = "convert error: " + err.Error()
	case len(rows) == 0:
		m.status = "nothing to convert at this size"
	default:
		m.status = fmt.Sprintf("stats: %d rings at %s", len(rows), m.mode)
	}
}
