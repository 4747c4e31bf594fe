package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowsSpanned(t *testing.T) {
	for _, width := range []int{1, 7, 80} {
		for k := 1; k <= 4; k++ {
			assert.Equal(t, k-1, RowsSpanned(width, k*width), "exact multiple w=%d k=%d", width, k)
			assert.Equal(t, k, RowsSpanned(width, k*width+1), "one past w=%d k=%d", width, k)
		}
		assert.Equal(t, 0, RowsSpanned(width, 0))
	}
}

func TestRowOfOffset(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		offset int
		pinned bool
		want   int
	}{
		{"zero", 10, 0, false, 0},
		{"zero pinned", 10, 0, true, 0},
		{"inside first row", 10, 9, false, 0},
		{"boundary unpinned", 10, 10, false, 1},
		{"boundary pinned", 10, 10, true, 0},
		{"second boundary pinned", 10, 20, true, 1},
		{"past boundary pinned", 10, 21, true, 2},
		{"zero width treated as one", 0, 3, false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RowOfOffset(tt.width, tt.offset, tt.pinned))
		})
	}
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 0, DisplayWidth(""))
	assert.Equal(t, 2, DisplayWidth("> "))
	assert.Equal(t, 6, DisplayWidth("日本語"))
}

func TestLayoutCells(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		offset int
		text   string
		want   int
	}{
		{"narrow runes", 5, 0, "abc", 3},
		{"wide rune fits", 5, 0, "abc世", 5},
		{"wide rune wraps whole", 5, 0, "abcd世", 7},
		{"wide rune after full row", 5, 0, "abcde世", 7},
		{"from an offset", 5, 4, "世", 7},
		{"wide runes only", 3, 0, "世世", 5},
		{"zero width treated as one", 0, 0, "ab", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, layoutCells(tt.width, tt.offset, []rune(tt.text)))
		})
	}
}
