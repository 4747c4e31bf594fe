package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Mode selects how keystrokes become submitted input
type Mode int

const (
	// LineMode accumulates an editable line until Enter
	LineMode Mode = iota
	// CharMode submits every typed character on its own
	CharMode
)

func (m Mode) String() string {
	switch m {
	case LineMode:
		return "line"
	case CharMode:
		return "char"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts "line" or "char" into a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "line":
		return LineMode, nil
	case "char":
		return CharMode, nil
	}
	return LineMode, fmt.Errorf("unknown input mode %q", s)
}

// DefaultPollInterval bounds the latency between a keypress and its echo
const DefaultPollInterval = 10 * time.Millisecond

// ErrNotCancelable is returned by Enable when blocking reads are requested
// from a key source that cannot be interrupted.
var ErrNotCancelable = errors.New("key source does not support canceling reads")

// SessionConfig wires a Session to its collaborators. Zero fields fall back
// to the process terminal.
type SessionConfig struct {
	Keys     KeySource
	Geometry Geometry
	Output   io.Writer
	Logger   Logger

	// PollInterval is the sleep between key availability checks
	PollInterval time.Duration
	// BlockingReads replaces polling with a read that Disable cancels.
	// Keys must implement Canceler.
	BlockingReads bool
	// RedirectStdStreams routes os.Stdout and os.Stderr through the session
	// while it is enabled
	RedirectStdStreams bool
	// ScanCodes enables the 0xE0/0x00 navigation key prefix
	ScanCodes bool

	Prefix string
}

// Session owns the terminal between Enable and Disable: it keeps one live
// input line below all output written through it.
type Session struct {
	keys     KeySource
	geometry Geometry
	sink     io.Writer
	log      Logger

	pollInterval time.Duration
	blocking     bool
	redirectStd  bool

	enabled   atomic.Bool
	lifecycle sync.Mutex // serializes Enable and Disable
	stop      chan struct{}
	done      chan struct{}
	routing   *streamRedirect
	unwatch   func() // drops the emergency restore hook

	mu      sync.Mutex
	mode    Mode
	prefix  string
	buf     *LineBuffer
	decoder *KeyDecoder
	column  columnTracker
	active  bool // preview belongs on screen
	shown   bool // preview is on screen
	queue   []string
	changed chan struct{}

	out *Interceptor
}

// NewSession creates a disabled session
func NewSession(cfg SessionConfig) *Session {
	s := &Session{
		keys:         cfg.Keys,
		geometry:     cfg.Geometry,
		sink:         cfg.Output,
		log:          cfg.Logger,
		pollInterval: cfg.PollInterval,
		blocking:     cfg.BlockingReads,
		redirectStd:  cfg.RedirectStdStreams,
		prefix:       cfg.Prefix,
		buf:          NewLineBuffer(),
		decoder:      NewKeyDecoder(),
		changed:      make(chan struct{}),
	}
	if s.sink == nil {
		s.sink = os.Stdout
	}
	if s.keys == nil {
		s.keys = NewTerminalKeys(os.Stdin)
	}
	if s.geometry == nil {
		s.geometry = NewTerminalGeometry(os.Stdout)
	}
	if s.log == nil {
		s.log = nopLogger{}
	}
	if s.pollInterval <= 0 {
		s.pollInterval = DefaultPollInterval
	}
	s.decoder.ScanCodes = cfg.ScanCodes
	s.out = &Interceptor{session: s}
	return s
}

// Enable starts capturing input in the given mode and draws the prompt.
// Calling it on an enabled session does nothing. The only errors come from
// preparing the terminal.
func (s *Session) Enable(mode Mode) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if !s.enabled.CompareAndSwap(false, true) {
		return nil
	}

	if s.blocking {
		if _, ok := s.keys.(Canceler); !ok {
			s.enabled.Store(false)
			return ErrNotCancelable
		}
	}
	if err := s.keys.Open(); err != nil {
		s.enabled.Store(false)
		return fmt.Errorf("failed to open key source: %w", err)
	}

	// Keys typed while input was disabled are not replayed
	s.drainKeys()

	if s.redirectStd {
		routing, err := redirectStdStreams(s.out)
		if err != nil {
			if cerr := s.keys.Close(); cerr != nil {
				s.log.LogError(cerr)
			}
			s.enabled.Store(false)
			return fmt.Errorf("failed to redirect output streams: %w", err)
		}
		s.routing = routing
	}

	s.mu.Lock()
	s.mode = mode
	s.buf.Clear()
	s.decoder.Reset()
	s.active = true
	var b strings.Builder
	s.redrawLocked(s.width(), &b, nil)
	s.writeLocked(b.String())
	s.mu.Unlock()

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.captureLoop(s.stop, s.done)
	s.unwatch = globalCleanup.register(s.Disable)

	s.log.Logf("console input enabled (mode=%s, blocking=%t)", mode, s.blocking)
	return nil
}

// Disable stops input capture, restores the output streams and erases the
// prompt. Blocked waiters return false. Calling it on a disabled session
// does nothing.
func (s *Session) Disable() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if !s.enabled.CompareAndSwap(true, false) {
		return
	}

	s.unwatch()
	close(s.stop)
	if s.blocking {
		s.keys.(Canceler).Cancel()
	}
	<-s.done

	if err := s.keys.Close(); err != nil {
		s.log.LogError(fmt.Errorf("failed to restore terminal: %w", err))
	}

	// Restore before erasing: output still in flight through the redirect
	// lands above the prompt.
	if s.routing != nil {
		s.routing.restore()
		s.routing = nil
	}

	s.mu.Lock()
	s.active = false
	if s.shown {
		s.writeLocked(erasePreview(s.previewLocked(), s.width()))
		s.shown = false
	}
	s.buf.Clear()
	s.decoder.Reset()
	s.broadcastLocked()
	s.mu.Unlock()

	s.log.Logf("console input disabled")
}

// Enabled reports whether input capture is running
func (s *Session) Enabled() bool {
	return s.enabled.Load()
}

// Mode returns the mode passed to the last Enable
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetPrefix replaces the prompt text shown before the input line
func (s *Session) SetPrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	s.redrawLocked(s.width(), &b, func() { s.prefix = prefix })
	s.writeLocked(b.String())
}

// Prefix returns the prompt text
func (s *Session) Prefix() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefix
}

// HasInput reports whether a submitted line is waiting
func (s *Session) HasInput() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue) > 0
}

// Input pops the oldest submitted line. It returns "" without blocking when
// nothing is queued.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return ""
	}
	line := s.queue[0]
	s.queue[0] = ""
	s.queue = s.queue[1:]
	return line
}

// CurrentInput returns the line being edited without consuming it
func (s *Session) CurrentInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// Writer returns the writer application output must go through
func (s *Session) Writer() io.Writer {
	return s.out
}

// Write implements io.Writer through the session's interceptor
func (s *Session) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// Println writes a line of output above the prompt
func (s *Session) Println(a ...interface{}) {
	fmt.Fprintln(s.out, a...)
}

// Printf writes formatted output above the prompt
func (s *Session) Printf(format string, a ...interface{}) {
	fmt.Fprintf(s.out, format, a...)
}

// captureLoop reads keys until stop is closed
func (s *Session) captureLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for s.enabled.Load() {
		if !s.blocking && !s.keys.KeyAvailable() {
			select {
			case <-stop:
				return
			case <-ticker.C:
			}
			continue
		}

		code, err := s.keys.ReadKey()
		if err != nil {
			select {
			case <-stop:
				return
			default:
			}
			if errors.Is(err, io.EOF) {
				s.log.Logf("key source closed, input capture stopped")
				return
			}
			s.log.LogError(fmt.Errorf("failed to read key: %w", err))
			select {
			case <-stop:
				return
			case <-ticker.C:
			}
			continue
		}

		s.handleKey(code)
	}
}

// drainKeys discards everything already buffered in the key source
func (s *Session) drainKeys() {
	for s.keys.KeyAvailable() {
		if _, err := s.keys.ReadKey(); err != nil {
			return
		}
	}
}

// handleKey decodes one raw code and applies it
func (s *Session) handleKey(code rune) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.decoder.Feed(code)
	if !ok {
		return
	}

	if s.mode == CharMode {
		switch ev.Kind {
		case EventInsert, EventDeleteBefore:
			s.submitLocked(string(ev.Char))
		}
		return
	}

	var b strings.Builder
	s.redrawLocked(s.width(), &b, func() {
		if ev.Kind == EventSubmit {
			s.submitLocked(s.buf.SubmitAndClear())
		} else {
			s.buf.Apply(ev)
		}
	})
	s.writeLocked(b.String())
}

// redrawLocked appends to b the erase of the preview on screen, runs
// mutate, then appends the new preview. The erase uses the geometry of the
// state currently drawn. The preview stays hidden while output is stopped
// inside a rune or an escape sequence.
func (s *Session) redrawLocked(width int, b *strings.Builder, mutate func()) {
	if s.shown {
		b.WriteString(erasePreview(s.previewLocked(), width))
		s.shown = false
	}
	if mutate != nil {
		mutate()
	}
	if s.active && s.column.settled() {
		b.WriteString(renderPreview(s.previewLocked(), width))
		s.shown = true
	}
}

func (s *Session) submitLocked(line string) {
	s.queue = append(s.queue, line)
	s.broadcastLocked()
}

// broadcastLocked wakes every waiter
func (s *Session) broadcastLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

func (s *Session) previewLocked() previewState {
	return previewState{
		prefix: s.prefix,
		line:   s.buf.runes,
		cursor: s.buf.cursor,
		column: s.column.col,
	}
}

func (s *Session) width() int {
	if w := s.geometry.Width(); w > 0 {
		return w
	}
	return 1
}

func (s *Session) writeString(str string) (int, error) {
	return io.WriteString(s.sink, str)
}

func (s *Session) writeLocked(str string) {
	if str == "" {
		return
	}
	if _, err := s.writeString(str); err != nil {
		s.log.LogError(fmt.Errorf("failed to write to terminal: %w", err))
	}
}
