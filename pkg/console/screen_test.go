package console

import (
	"strconv"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

// virtualScreen replays the subset of terminal behaviour the console emits:
// printable runes with deferred wrapping, CR, LF (translated to CRLF as with
// OPOST|ONLCR), cursor up, column, erase to end of screen and SGR. Wide
// runes that do not fit on the current row wrap whole.
// wideFiller marks the second cell of a wide rune
const wideFiller = rune(0)

type virtualScreen struct {
	width   int
	rows    [][]rune
	row     int
	col     int
	pending bool // cursor parked on the last column after a full row
}

func newVirtualScreen(width int) *virtualScreen {
	return &virtualScreen{width: width, rows: [][]rune{nil}}
}

func (v *virtualScreen) ensureRow(row int) {
	for len(v.rows) <= row {
		v.rows = append(v.rows, nil)
	}
}

func (v *virtualScreen) put(r rune) {
	rw := runewidth.RuneWidth(r)
	if rw == 0 {
		return
	}
	if v.pending {
		v.row++
		v.col = 0
		v.pending = false
	}
	if v.col > 0 && v.col+rw > v.width {
		v.row++
		v.col = 0
	}
	v.ensureRow(v.row)
	line := v.rows[v.row]
	for len(line) < v.col+rw {
		line = append(line, ' ')
	}
	line[v.col] = r
	for i := 1; i < rw; i++ {
		line[v.col+i] = wideFiller
	}
	v.rows[v.row] = line
	if v.col+rw >= v.width {
		v.col = v.width - 1
		v.pending = true
	} else {
		v.col += rw
	}
}

func (v *virtualScreen) eraseBelow() {
	v.ensureRow(v.row)
	if v.col < len(v.rows[v.row]) {
		v.rows[v.row] = v.rows[v.row][:v.col]
	}
	v.rows = v.rows[:v.row+1]
}

// Feed interprets s, failing the test on sequences it does not model
func (v *virtualScreen) Feed(t *testing.T, s string) {
	t.Helper()
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '\r':
			v.col = 0
			v.pending = false
		case r == '\n':
			v.row++
			v.col = 0
			v.pending = false
			v.ensureRow(v.row)
		case r == keyEscape:
			if i+1 >= len(rs) || rs[i+1] != '[' {
				t.Fatalf("unsupported escape at %d in %q", i, s)
			}
			j := i + 2
			for j < len(rs) && rs[j] >= '0' && rs[j] <= '9' {
				j++
			}
			if j >= len(rs) {
				t.Fatalf("truncated CSI in %q", s)
			}
			n := 0
			if j > i+2 {
				n, _ = strconv.Atoi(string(rs[i+2 : j]))
			}
			switch rs[j] {
			case 'A':
				if n == 0 {
					n = 1
				}
				v.row -= n
				if v.row < 0 {
					v.row = 0
				}
			case 'G':
				if n == 0 {
					n = 1
				}
				v.col = n - 1
				if v.col >= v.width {
					v.col = v.width - 1
				}
			case 'm':
				// colors do not move the cursor
			case 'J':
				if n != 0 {
					t.Fatalf("unsupported erase mode %d", n)
				}
				v.eraseBelow()
			default:
				t.Fatalf("unsupported CSI final %q", rs[j])
			}
			v.pending = false
			i = j
		default:
			v.put(r)
		}
	}
}

// Lines returns the screen contents with trailing blanks trimmed
func (v *virtualScreen) Lines() []string {
	lines := make([]string, len(v.rows))
	for i, row := range v.rows {
		lines[i] = strings.TrimRight(strings.ReplaceAll(string(row), string(wideFiller), ""), " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Cursor returns the row and column the next printed rune would land on
func (v *virtualScreen) Cursor() (int, int) {
	if v.pending {
		return v.row + 1, 0
	}
	return v.row, v.col
}
