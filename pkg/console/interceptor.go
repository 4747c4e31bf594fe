package console

import (
	"strings"
	"unicode/utf8"
)

const tabWidth = 8

// columnTracker follows the terminal column of free output. Escape
// sequences and control characters do not occupy cells. Writes may end in
// the middle of a rune or an escape sequence; the tracker carries that
// state into the next write.
type columnTracker struct {
	col     int
	state   trackState
	partial []byte // leading bytes of a rune cut off by the previous write
}

type trackState int

const (
	trackText trackState = iota
	trackEscape
	trackCSI
	trackOSC
)

// settled reports whether output stopped between sequences, where the
// preview can be drawn without splitting a rune or an escape.
func (t *columnTracker) settled() bool {
	return t.state == trackText && len(t.partial) == 0
}

// feed advances the column over p at the given terminal width
func (t *columnTracker) feed(p []byte, width int) {
	if len(t.partial) > 0 {
		p = append(t.partial, p...)
		t.partial = nil
	}
	for len(p) > 0 {
		if !utf8.FullRune(p) {
			t.partial = append([]byte(nil), p...)
			return
		}
		r, size := utf8.DecodeRune(p)
		t.advance(r, width)
		p = p[size:]
	}
}

func (t *columnTracker) advance(r rune, width int) {
	switch t.state {
	case trackEscape:
		switch r {
		case '[':
			t.state = trackCSI
		case ']':
			t.state = trackOSC
		default:
			t.state = trackText
		}
		return
	case trackCSI:
		if r >= 0x40 && r <= 0x7E {
			t.state = trackText
		}
		return
	case trackOSC:
		switch r {
		case '\a':
			t.state = trackText
		case keyEscape:
			// ST is ESC \, which the escape state consumes
			t.state = trackEscape
		}
		return
	}

	switch {
	case r == '\n' || r == '\r':
		t.col = 0
	case r == keyEscape:
		t.state = trackEscape
	case r == '\t':
		t.col += tabWidth - t.col%tabWidth
	case r == '\b':
		if t.col > 0 {
			t.col--
		}
	case r < 0x20 || r == keyDelete:
	default:
		t.col = advanceCells(width, t.col, r)
	}
}

// Interceptor is the io.Writer all application output goes through while a
// session owns the terminal. Each write is serialized with keystroke
// handling and bracketed by an erase and a redraw of the input preview.
type Interceptor struct {
	session *Session
}

// Write sends p to the real output, keeping the input preview below it.
// The erase, the text and the redraw reach the sink in a single write. A
// write that stops inside a rune or an escape sequence leaves the preview
// off screen until a later write completes it.
func (o *Interceptor) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	s := o.session
	s.mu.Lock()
	defer s.mu.Unlock()

	width := s.width()
	var b strings.Builder
	b.Grow(len(p) + 64)
	s.redrawLocked(width, &b, func() {
		b.Write(p)
		s.column.feed(p, width)
	})

	if _, err := s.writeString(b.String()); err != nil {
		return 0, err
	}
	return len(p), nil
}
