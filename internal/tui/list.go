package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// listCursor tracks the selected row and scroll window of a table view.
type listCursor struct {
	cursor int
	height int
}

func (l listCursor) update(msg tea.Msg, n int) listCursor {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Up):
			if l.cursor > 0 {
				l.cursor--
			}
		case key.Matches(km, keys.Down):
			if l.cursor < n-1 {
				l.cursor++
			}
		}
	}
	return l.clamp(n)
}

// clamp keeps the cursor in range after the underlying rows change.
func (l listCursor) clamp(n int) listCursor {
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	return l
}

// window returns the [start, end) row range that fits on screen.
func (l listCursor) window(n int) (int, int) {
	maxRows := l.height - 4
	if maxRows < 1 {
		maxRows = 10
	}
	start := 0
	if l.cursor >= maxRows {
		start = l.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > n {
		end = n
	}
	return start, end
}
