package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tally/internal/session"
)

var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Bold(true)
	styleDim      = tcell.StyleDefault.Dim(true)
	styleResult   = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorGreen)
	styleError    = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorRed)
	styleSelected = tcell.StyleDefault.Reverse(true)
)

// draw renders the full screen from the session's observable state.
func (a *App) draw() {
	a.screen.Clear()
	width, height := a.screen.Size()

	a.drawText(0, 0, styleTitle, "tally")
	a.drawText(0, 1, styleDim, "enter evaluate · ctrl+s save · tab formulas · ctrl+g clear history · ctrl+q quit")

	// Expression line with hardware cursor.
	state := a.session.State()
	a.drawText(0, 3, styleDefault, "> "+state.Text)
	if a.focus == paneInput {
		a.screen.ShowCursor(2+runeWidth(state.Text, state.Cursor), 3)
	} else {
		a.screen.HideCursor()
	}

	// Result line.
	if result := a.session.Result(); result != "" {
		style := styleResult
		if result == session.ErrorResult {
			style = styleError
		}
		a.drawText(0, 4, style, "= "+result)
	}

	// History pane on the left, saved formulas on the right.
	mid := width / 2
	a.drawText(0, 6, styleTitle, "History")
	for i, record := range a.session.History() {
		y := 7 + i
		if y >= height {
			break
		}
		a.drawClipped(1, y, mid-2, styleDefault, record)
	}

	a.drawText(mid, 6, styleTitle, "Saved formulas")
	for i, formula := range a.session.Formulas() {
		y := 7 + i
		if y >= height {
			break
		}
		style := styleDefault
		if a.focus == paneFormulas && i == a.selected {
			style = styleSelected
		}
		a.drawClipped(mid+1, y, width-mid-2, style, fmt.Sprintf("%d. %s", i+1, formula))
	}

	a.screen.Show()
}

// drawText writes s starting at (x, y).
func (a *App) drawText(x, y int, style tcell.Style, s string) {
	col := x
	for _, r := range s {
		a.screen.SetContent(col, y, r, nil, style)
		col++
	}
}

// drawClipped writes s truncated to max columns.
func (a *App) drawClipped(x, y, max int, style tcell.Style, s string) {
	col := x
	for _, r := range s {
		if col-x >= max {
			return
		}
		a.screen.SetContent(col, y, r, nil, style)
		col++
	}
}

// runeWidth returns the column of the cursor rune index. Every rune in
// the calculator alphabet occupies one cell.
func runeWidth(s string, cursor int) int {
	if cursor < 0 {
		return 0
	}
	n := 0
	for range s {
		if n == cursor {
			break
		}
		n++
	}
	return n
}
