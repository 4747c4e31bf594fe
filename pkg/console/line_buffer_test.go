package console

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typed(s string) *LineBuffer {
	b := NewLineBuffer()
	for _, r := range s {
		b.Insert(r)
	}
	return b
}

func TestLineBuffer_Editing(t *testing.T) {
	tests := []struct {
		name       string
		start      string
		ops        func(b *LineBuffer)
		wantText   string
		wantCursor int
	}{
		{
			name:       "append",
			start:      "abc",
			ops:        func(b *LineBuffer) {},
			wantText:   "abc",
			wantCursor: 3,
		},
		{
			name:  "insert in the middle",
			start: "ac",
			ops: func(b *LineBuffer) {
				b.MoveLeft()
				b.Insert('b')
			},
			wantText:   "abc",
			wantCursor: 2,
		},
		{
			name:  "replace overwrites",
			start: "abc",
			ops: func(b *LineBuffer) {
				b.MoveHome()
				b.ToggleReplace()
				b.Insert('x')
			},
			wantText:   "xbc",
			wantCursor: 1,
		},
		{
			name:  "replace at end appends",
			start: "ab",
			ops: func(b *LineBuffer) {
				b.ToggleReplace()
				b.Insert('c')
			},
			wantText:   "abc",
			wantCursor: 3,
		},
		{
			name:  "delete before",
			start: "abc",
			ops: func(b *LineBuffer) {
				b.MoveLeft()
				b.DeleteBefore()
			},
			wantText:   "ac",
			wantCursor: 1,
		},
		{
			name:  "delete before at start is a no-op",
			start: "abc",
			ops: func(b *LineBuffer) {
				b.MoveHome()
				b.DeleteBefore()
			},
			wantText:   "abc",
			wantCursor: 0,
		},
		{
			name:  "delete at",
			start: "hello",
			ops: func(b *LineBuffer) {
				b.MoveLeft()
				b.MoveLeft()
				b.DeleteAt()
			},
			wantText:   "helo",
			wantCursor: 3,
		},
		{
			name:       "delete at end is a no-op",
			start:      "abc",
			ops:        func(b *LineBuffer) { b.DeleteAt() },
			wantText:   "abc",
			wantCursor: 3,
		},
		{
			name:  "movement clamps",
			start: "ab",
			ops: func(b *LineBuffer) {
				b.MoveRight()
				b.MoveHome()
				b.MoveLeft()
			},
			wantText:   "ab",
			wantCursor: 0,
		},
		{
			name:  "end",
			start: "abc",
			ops: func(b *LineBuffer) {
				b.MoveHome()
				b.MoveEnd()
			},
			wantText:   "abc",
			wantCursor: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := typed(tt.start)
			tt.ops(b)
			assert.Equal(t, tt.wantText, b.String())
			assert.Equal(t, tt.wantCursor, b.Cursor())
		})
	}
}

func TestLineBuffer_SubmitAndClear(t *testing.T) {
	b := typed("hello")
	b.ToggleReplace()

	assert.Equal(t, "hello", b.SubmitAndClear())
	assert.Equal(t, "", b.String())
	assert.Equal(t, 0, b.Cursor())
	assert.True(t, b.Replacing(), "replace mode survives a submit")
}

func TestLineBuffer_Apply(t *testing.T) {
	b := NewLineBuffer()
	assert.True(t, b.Apply(KeyEvent{Kind: EventInsert, Char: 'a'}))
	assert.True(t, b.Apply(KeyEvent{Kind: EventHome}))
	assert.False(t, b.Apply(KeyEvent{Kind: EventUp}))
	assert.False(t, b.Apply(KeyEvent{Kind: EventDown}))
	assert.False(t, b.Apply(KeyEvent{Kind: EventSubmit, Char: '\r'}))
	assert.Equal(t, "a", b.String())
	assert.Equal(t, 0, b.Cursor())
}

func TestLineBuffer_CursorStaysInBounds(t *testing.T) {
	kinds := []EventKind{
		EventInsert, EventInsert, EventInsert, EventDeleteBefore, EventDeleteAt,
		EventHome, EventEnd, EventLeft, EventRight, EventToggleReplace,
	}
	rng := rand.New(rand.NewSource(1))
	b := NewLineBuffer()

	for i := 0; i < 5000; i++ {
		kind := kinds[rng.Intn(len(kinds))]
		b.Apply(KeyEvent{Kind: kind, Char: rune('a' + rng.Intn(26))})
		require.GreaterOrEqual(t, b.Cursor(), 0)
		require.LessOrEqual(t, b.Cursor(), b.Len())
	}
}
