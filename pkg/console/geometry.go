package console

import "github.com/mattn/go-runewidth"

// RowsSpanned returns how many rows below the first a run of length cells
// reaches at the given width. A run that exactly fills its last row does
// not count the next row: the terminal leaves the cursor on the last column
// until another character is printed.
func RowsSpanned(width, length int) int {
	return RowOfOffset(width, length, true)
}

// RowOfOffset returns the zero-based row of a cell offset at the given width.
// With pinned set, an offset on an exact row boundary is reported on the row
// it finishes rather than the row it would start; that is the row count a
// string of that length occupies. Without it, the result is the row holding
// the cell at index offset, which is where the live cursor sits.
func RowOfOffset(width, offset int, pinned bool) int {
	if width < 1 {
		width = 1
	}
	rows := offset / width
	if pinned && rows > 0 && offset%width == 0 {
		rows--
	}
	return rows
}

// DisplayWidth returns the number of terminal cells s occupies
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// advanceCells returns the cell offset after printing r at offset. A wide
// rune that does not fit in what is left of the row wraps whole, leaving
// the rest of the row blank, so offsets stay row-aligned.
func advanceCells(width, offset int, r rune) int {
	if width < 1 {
		width = 1
	}
	rw := runewidth.RuneWidth(r)
	if col := offset % width; col > 0 && col+rw > width {
		offset += width - col
	}
	return offset + rw
}

// layoutCells returns the cell offset after printing rs from offset
func layoutCells(width, offset int, rs []rune) int {
	for _, r := range rs {
		offset = advanceCells(width, offset, r)
	}
	return offset
}
