// Package expr provides the editable expression buffer for Tally.
//
// The buffer is a value type: the current text plus a cursor position,
// measured in runes. Every operation is total. Out-of-range cursors are
// clamped rather than rejected, so a caller can never drive the buffer
// into an invalid state. Operations return a new State; the caller treats
// the return value as the snapshot to render.
package expr

// State is the expression buffer: the text being edited and the cursor
// position within it. The cursor is a rune index in [0, len(runes)].
// The zero value is an empty buffer with the cursor at the start.
type State struct {
	Text   string
	Cursor int
}

// Clear returns an empty buffer state.
func Clear() State {
	return State{}
}

// Insert splices fragment into the text at the cursor position and
// advances the cursor past the inserted fragment. An out-of-range cursor
// is clamped into the text first.
func (s State) Insert(fragment string) State {
	if fragment == "" {
		return s.clamped()
	}

	runes := []rune(s.Text)
	at := clamp(s.Cursor, len(runes))

	frag := []rune(fragment)
	out := make([]rune, 0, len(runes)+len(frag))
	out = append(out, runes[:at]...)
	out = append(out, frag...)
	out = append(out, runes[at:]...)

	return State{Text: string(out), Cursor: at + len(frag)}
}

// DeleteBefore removes the rune immediately before the cursor and moves
// the cursor back by one. With the cursor at the start it is a no-op.
func (s State) DeleteBefore() State {
	runes := []rune(s.Text)
	at := clamp(s.Cursor, len(runes))
	if at == 0 {
		return State{Text: s.Text, Cursor: at}
	}

	out := make([]rune, 0, len(runes)-1)
	out = append(out, runes[:at-1]...)
	out = append(out, runes[at:]...)

	return State{Text: string(out), Cursor: at - 1}
}

// MoveLeft moves the cursor one rune to the left, clamped at the start.
func (s State) MoveLeft() State {
	runes := []rune(s.Text)
	at := clamp(s.Cursor-1, len(runes))
	return State{Text: s.Text, Cursor: at}
}

// MoveRight moves the cursor one rune to the right, clamped at the end.
func (s State) MoveRight() State {
	runes := []rune(s.Text)
	at := clamp(s.Cursor+1, len(runes))
	return State{Text: s.Text, Cursor: at}
}

// MoveEnd places the cursor after the last rune.
func (s State) MoveEnd() State {
	return State{Text: s.Text, Cursor: len([]rune(s.Text))}
}

// Len returns the text length in runes.
func (s State) Len() int {
	return len([]rune(s.Text))
}

// IsEmpty returns true if the buffer holds no text.
func (s State) IsEmpty() bool {
	return s.Text == ""
}

// clamped returns the state with the cursor forced into range.
func (s State) clamped() State {
	return State{Text: s.Text, Cursor: clamp(s.Cursor, len([]rune(s.Text)))}
}

func clamp(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
