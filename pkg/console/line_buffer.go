package console

// LineBuffer is the in-progress input line. The cursor is an index into
// the rune slice and always stays within [0, Len()].
type LineBuffer struct {
	runes   []rune
	cursor  int
	replace bool
}

// NewLineBuffer creates an empty line buffer in insert mode
func NewLineBuffer() *LineBuffer {
	return &LineBuffer{runes: make([]rune, 0, 80)}
}

// String returns the buffer contents
func (b *LineBuffer) String() string { return string(b.runes) }

// Len returns the number of runes in the buffer
func (b *LineBuffer) Len() int { return len(b.runes) }

// Cursor returns the cursor index
func (b *LineBuffer) Cursor() int { return b.cursor }

// Replacing reports whether typed characters overwrite instead of insert
func (b *LineBuffer) Replacing() bool { return b.replace }

// Insert writes ch at the cursor and advances the cursor. At the end of the
// line it appends; elsewhere it inserts, or overwrites in replace mode.
func (b *LineBuffer) Insert(ch rune) {
	switch {
	case b.cursor == len(b.runes):
		b.runes = append(b.runes, ch)
	case b.replace:
		b.runes[b.cursor] = ch
	default:
		b.runes = append(b.runes, 0)
		copy(b.runes[b.cursor+1:], b.runes[b.cursor:])
		b.runes[b.cursor] = ch
	}
	b.cursor++
}

// DeleteBefore removes the rune left of the cursor (backspace)
func (b *LineBuffer) DeleteBefore() {
	if b.cursor == 0 {
		return
	}
	b.runes = append(b.runes[:b.cursor-1], b.runes[b.cursor:]...)
	b.cursor--
}

// DeleteAt removes the rune under the cursor (delete)
func (b *LineBuffer) DeleteAt() {
	if b.cursor >= len(b.runes) {
		return
	}
	b.runes = append(b.runes[:b.cursor], b.runes[b.cursor+1:]...)
}

func (b *LineBuffer) MoveHome() { b.cursor = 0 }

func (b *LineBuffer) MoveEnd() { b.cursor = len(b.runes) }

func (b *LineBuffer) MoveLeft() {
	if b.cursor > 0 {
		b.cursor--
	}
}

func (b *LineBuffer) MoveRight() {
	if b.cursor < len(b.runes) {
		b.cursor++
	}
}

// ToggleReplace flips between insert and replace mode
func (b *LineBuffer) ToggleReplace() { b.replace = !b.replace }

// SubmitAndClear returns the contents and resets the buffer and cursor.
// Replace mode survives the submit.
func (b *LineBuffer) SubmitAndClear() string {
	line := string(b.runes)
	b.Clear()
	return line
}

// Clear empties the buffer without returning it
func (b *LineBuffer) Clear() {
	b.runes = b.runes[:0]
	b.cursor = 0
}

// Apply performs the buffer mutation for an editing event. Submit is left
// to the caller, which owns the submission queue. Up and Down are inert.
// It reports whether the buffer or cursor could have changed.
func (b *LineBuffer) Apply(ev KeyEvent) bool {
	switch ev.Kind {
	case EventInsert:
		b.Insert(ev.Char)
	case EventDeleteBefore:
		b.DeleteBefore()
	case EventDeleteAt:
		b.DeleteAt()
	case EventHome:
		b.MoveHome()
	case EventEnd:
		b.MoveEnd()
	case EventLeft:
		b.MoveLeft()
	case EventRight:
		b.MoveRight()
	case EventToggleReplace:
		b.ToggleReplace()
	default:
		return false
	}
	return true
}
