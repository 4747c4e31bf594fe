package console

import "fmt"

// ANSI escape sequence helpers. The preview logic needs only these three
// primitives, so any VT100-compatible terminal works.

// CursorUpSeq returns the escape sequence to move the cursor up n rows.
// The column is left unchanged.
func CursorUpSeq(n int) string {
	return fmt.Sprintf("\033[%dA", n)
}

// ColumnSeq returns the escape sequence to move the cursor to a 1-based column
// on the current row.
func ColumnSeq(col int) string {
	return fmt.Sprintf("\033[%dG", col)
}

// EraseToEndOfScreenSeq clears from the cursor to the end of the screen.
func EraseToEndOfScreenSeq() string { return "\033[0J" }
