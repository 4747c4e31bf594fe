package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTerminalSizeEnv(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantWidth  int
		wantHeight int
		wantErr    bool
	}{
		{
			name:       "columns and lines",
			env:        map[string]string{"COLUMNS": "120", "LINES": "40"},
			wantWidth:  120,
			wantHeight: 40,
		},
		{
			name:       "override wins",
			env:        map[string]string{"COLUMNS": "120", "PROMPTLINE_TERM_WIDTH": "60"},
			wantWidth:  60,
			wantHeight: DefaultTerminalHeight,
		},
		{
			name:    "garbage is ignored",
			env:     map[string]string{"COLUMNS": "wide"},
			wantErr: true,
		},
		{
			name:    "non-positive is ignored",
			env:     map[string]string{"COLUMNS": "-3"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, name := range []string{"COLUMNS", "LINES", "PROMPTLINE_TERM_WIDTH", "PROMPTLINE_TERM_HEIGHT"} {
				t.Setenv(name, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			size, err := getTerminalSizeEnv()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWidth, size.Width)
			assert.Equal(t, tt.wantHeight, size.Height)
		})
	}
}

func TestGetTerminalSizeAlwaysPositive(t *testing.T) {
	size, err := GetTerminalSize()
	require.NoError(t, err)
	assert.Positive(t, size.Width)
	assert.Positive(t, size.Height)
}
