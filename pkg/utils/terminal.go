package utils

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/term"
)

// Fallback dimensions when no terminal can be queried
const (
	DefaultTerminalWidth  = 80
	DefaultTerminalHeight = 24
)

// TerminalSize represents the dimensions of the terminal
type TerminalSize struct {
	Width  int
	Height int
}

// GetTerminalSize returns the terminal size using multiple detection methods
func GetTerminalSize() (*TerminalSize, error) {
	// Method 1: ask the standard streams directly
	if size, err := getTerminalSizeFd(); err == nil {
		return size, nil
	}

	// Method 2: environment variables
	if size, err := getTerminalSizeEnv(); err == nil {
		return size, nil
	}

	// Default fallback
	return &TerminalSize{Width: DefaultTerminalWidth, Height: DefaultTerminalHeight}, nil
}

// getTerminalSizeFd tries stdout, stdin and stderr in turn
func getTerminalSizeFd() (*TerminalSize, error) {
	fds := []int{int(os.Stdout.Fd()), int(os.Stdin.Fd()), int(os.Stderr.Fd())}

	var lastErr error
	for _, fd := range fds {
		width, height, err := term.GetSize(fd)
		if err == nil && width > 0 && height > 0 {
			return &TerminalSize{Width: width, Height: height}, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no valid terminal found")
	}
	return nil, lastErr
}

// getTerminalSizeEnv reads COLUMNS/LINES, with PROMPTLINE_TERM_* overrides
func getTerminalSizeEnv() (*TerminalSize, error) {
	width := envInt("PROMPTLINE_TERM_WIDTH")
	if width == 0 {
		width = envInt("COLUMNS")
	}
	height := envInt("PROMPTLINE_TERM_HEIGHT")
	if height == 0 {
		height = envInt("LINES")
	}

	if width == 0 {
		return nil, fmt.Errorf("terminal width not set in environment")
	}
	if height == 0 {
		height = DefaultTerminalHeight
	}
	return &TerminalSize{Width: width, Height: height}, nil
}

func envInt(name string) int {
	val := os.Getenv(name)
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
