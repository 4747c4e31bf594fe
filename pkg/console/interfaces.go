package console

import "errors"

// ErrNotTerminal is returned when the key source is not attached to a tty
var ErrNotTerminal = errors.New("input is not a terminal")

// KeySource delivers raw key codes from the user's terminal
type KeySource interface {
	// Open prepares the device for unbuffered reads (cbreak/raw mode)
	Open() error
	// Close restores the device to the state Open found it in
	Close() error

	// KeyAvailable reports whether ReadKey would return without blocking
	KeyAvailable() bool
	// ReadKey consumes exactly one pending key code
	ReadKey() (rune, error)
}

// Canceler is implemented by key sources whose ReadKey can be interrupted
// from another goroutine. Sessions configured for blocking reads require it.
type Canceler interface {
	Cancel() bool
}

// Geometry reports the live terminal width in cells
type Geometry interface {
	Width() int
}

// GeometryFunc adapts a function to the Geometry interface
type GeometryFunc func() int

// Width calls f
func (f GeometryFunc) Width() int { return f() }

// FixedWidth is a Geometry that never changes, useful for pipes and tests
type FixedWidth int

// Width returns the fixed width
func (w FixedWidth) Width() int { return int(w) }

// Logger receives lifecycle diagnostics. It must never write to the
// session's own output sink.
type Logger interface {
	Logf(format string, v ...interface{})
	LogError(err error)
}

type nopLogger struct{}

func (nopLogger) Logf(string, ...interface{}) {}
func (nopLogger) LogError(error)              {}
