package console

import "strings"

// previewState is the part of the session the preview geometry depends on.
// Both redraw functions are pure: they return escape strings for the caller
// to write and never touch the terminal themselves.
type previewState struct {
	prefix string
	line   []rune
	cursor int // rune index into line
	column int // cells of free output on the current row, unclamped
}

// textCells and cursorCells are row-aligned offsets from the start of the
// preview's first row, including blanks left by wide runes that wrapped.
func (p previewState) textCells(width int) int {
	return layoutCells(width, p.prefixCells(width), p.line)
}

func (p previewState) cursorCells(width int) int {
	return layoutCells(width, p.prefixCells(width), p.line[:p.cursor])
}

func (p previewState) prefixCells(width int) int {
	return layoutCells(width, 0, []rune(p.prefix))
}

// spanRows is the last preview row in use: the text, plus the cursor cell
// when the cursor sits past an exactly full last row.
func (p previewState) spanRows(width int) int {
	occupied := p.textCells(width)
	if c := p.cursorCells(width) + 1; c > occupied {
		occupied = c
	}
	return RowsSpanned(width, occupied)
}

// outputRowOpen reports whether free output left a partial row that the
// preview had to start below. An exactly full row is already closed: the
// terminal wraps on the next printed character, so the newline that starts
// the preview lands on the row where output resumes.
func (p previewState) outputRowOpen(width int) bool {
	return p.column > 0 && p.column%width != 0
}

// erasePreview returns the sequence that removes a preview drawn by
// renderPreview from the same state, leaving the cursor exactly where free
// output stopped so partial-line output above the prompt is kept.
func erasePreview(p previewState, width int) string {
	if width < 1 {
		width = 1
	}

	up := RowOfOffset(width, p.cursorCells(width), false)
	if rows := p.spanRows(width); up > rows {
		up = rows
	}
	if p.outputRowOpen(width) {
		up++
	}

	var b strings.Builder
	if up > 0 {
		b.WriteString(CursorUpSeq(up))
	}
	// 1-based: output resumes in the cell after the last one written
	b.WriteString(ColumnSeq(p.column%width + 1))
	b.WriteString(EraseToEndOfScreenSeq())
	return b.String()
}

// renderPreview returns the sequence that draws prefix+line starting at the
// beginning of a row and parks the cursor on the cursor cell.
func renderPreview(p previewState, width int) string {
	if width < 1 {
		width = 1
	}

	var b strings.Builder
	if p.column > 0 {
		b.WriteString("\r\n")
	}
	b.WriteString(p.prefix)
	b.WriteString(string(p.line))

	cursor := p.cursorCells(width)
	cursorRow := RowOfOffset(width, cursor, false)
	lastRow := RowsSpanned(width, p.textCells(width))
	if cursorRow > lastRow {
		// cursor after an exactly full row; move it onto the next row
		b.WriteString("\r\n")
		lastRow = cursorRow
	}
	if lastRow > cursorRow {
		b.WriteString(CursorUpSeq(lastRow - cursorRow))
	}
	b.WriteString(ColumnSeq(cursor%width + 1))
	return b.String()
}
