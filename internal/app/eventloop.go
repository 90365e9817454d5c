package app

import "github.com/gdamore/tcell/v2"

// Run drives the main event loop until the user quits. It returns
// ErrQuit on a normal exit.
func (a *App) Run() error {
	a.draw()

	for {
		select {
		case <-a.quit:
			return ErrQuit
		default:
		}

		ev := a.screen.PollEvent()
		if ev == nil {
			return ErrQuit
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if a.handleKey(ev) {
				return ErrQuit
			}
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventInterrupt:
			// Core state changed outside this loop; fall through to redraw.
		}

		a.draw()
	}
}

// handleKey dispatches one key press. It returns true to quit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return true
	case tcell.KeyTab:
		a.toggleFocus()
		return false
	}

	if a.focus == paneFormulas {
		a.handleFormulaKey(ev)
		return false
	}
	a.handleInputKey(ev)
	return false
}

// handleInputKey edits the expression buffer.
func (a *App) handleInputKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		a.session.Evaluate()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.session.DeleteBefore()
	case tcell.KeyLeft:
		a.session.MoveCursorLeft()
	case tcell.KeyRight:
		a.session.MoveCursorRight()
	case tcell.KeyEscape, tcell.KeyCtrlL:
		a.session.ClearExpression()
	case tcell.KeyCtrlS:
		a.session.SaveCurrentFormula()
	case tcell.KeyCtrlG:
		a.session.ClearHistory()
	case tcell.KeyCtrlX:
		a.session.ClearSavedFormulas()
	case tcell.KeyRune:
		if frag, ok := displayFragment(ev.Rune()); ok {
			a.session.InsertText(frag)
		}
	}
}

// handleFormulaKey drives the saved-formula pane.
func (a *App) handleFormulaKey(ev *tcell.EventKey) {
	count := len(a.session.Formulas())

	switch ev.Key() {
	case tcell.KeyUp:
		if a.selected > 0 {
			a.selected--
		}
	case tcell.KeyDown:
		if a.selected < count-1 {
			a.selected++
		}
	case tcell.KeyEnter:
		formulas := a.session.Formulas()
		if a.selected >= 0 && a.selected < len(formulas) {
			a.session.LoadFormula(formulas[a.selected])
			a.focus = paneInput
		}
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		a.session.RemoveSavedFormulaAt(a.selected)
		a.clampSelection()
	case tcell.KeyEscape:
		a.focus = paneInput
	}
}

func (a *App) toggleFocus() {
	if a.focus == paneInput {
		a.focus = paneFormulas
		a.clampSelection()
		return
	}
	a.focus = paneInput
}

func (a *App) clampSelection() {
	count := len(a.session.Formulas())
	if a.selected >= count {
		a.selected = count - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
}

// displayFragment maps a typed rune to the fragment inserted into the
// buffer. The UI shows the display glyphs for multiplication and
// division; the evaluator normalizes them back to ASCII.
func displayFragment(r rune) (string, bool) {
	switch {
	case r >= '0' && r <= '9':
		return string(r), true
	case r == '.' || r == '+' || r == '-' || r == '(' || r == ')':
		return string(r), true
	case r == '*' || r == '×':
		return "×", true
	case r == '/' || r == '÷':
		return "÷", true
	default:
		return "", false
	}
}
