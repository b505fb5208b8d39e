package tui

import (
	"github.com/javiermolinar/timebox/internal/planner"
)

// Layout constants in terminal lines.
const (
	headerLines = 2 // title line and blank separator
	footerLines = 2 // status and help
	paneChrome  = 3 // pane border and title
	minGridRows = 3
	taskPaneMin = 28
)

// gridRows is how many slot rows fit on screen.
func (m *Model) gridRows() int {
	if m.height == 0 {
		return m.planner.Grid().Len()
	}
	return max(minGridRows, m.height-headerLines-footerLines-paneChrome)
}

// ensureSlotVisible scrolls the grid so the cursor row is on screen.
func (m *Model) ensureSlotVisible() {
	rows := m.gridRows()
	switch {
	case m.slotCursor < m.scroll:
		m.scroll = m.slotCursor
	case m.slotCursor >= m.scroll+rows:
		m.scroll = m.slotCursor - rows + 1
	}
	m.scroll = max(0, min(m.scroll, m.planner.Grid().Len()-rows))
}

// blockRow returns the row where the block covering slot i starts.
func (m *Model) blockRow(i int) (planner.Row, bool) {
	return blockRowIn(m.planner.Day(m.date).Rows, i)
}

func blockRowIn(rows []planner.Row, i int) (planner.Row, bool) {
	if i < 0 || i >= len(rows) {
		return planner.Row{}, false
	}
	for j := i; j >= 0; j-- {
		if rows[j].Block != nil {
			if j+rows[j].Span > i {
				return rows[j], true
			}
			return planner.Row{}, false
		}
		if !rows[j].Covered {
			return planner.Row{}, false
		}
	}
	return planner.Row{}, false
}
