//go:build !(darwin || dragonfly || freebsd || linux || netbsd || openbsd)

package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// TerminalKeys reads keys from a console in raw mode. Without a portable
// non-blocking poll, a reader goroutine feeds a buffered channel and
// KeyAvailable inspects the channel.
type TerminalKeys struct {
	mu       sync.Mutex
	file     *os.File
	fd       int
	oldState *term.State
	reader   cancelreader.CancelReader
	keys     chan rune
}

// NewTerminalKeys creates a key source for f, normally os.Stdin
func NewTerminalKeys(f *os.File) *TerminalKeys {
	return &TerminalKeys{
		file: f,
		fd:   int(f.Fd()),
	}
}

// Open switches the console to raw mode and starts the reader goroutine
func (k *TerminalKeys) Open() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.oldState != nil {
		return nil
	}
	if !term.IsTerminal(k.fd) {
		return ErrNotTerminal
	}

	oldState, err := term.MakeRaw(k.fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	reader, err := cancelreader.NewReader(k.file)
	if err != nil {
		_ = term.Restore(k.fd, oldState)
		return fmt.Errorf("failed to create input reader: %w", err)
	}

	k.oldState = oldState
	k.reader = reader
	k.keys = make(chan rune, 256)
	go k.pump(bufio.NewReader(reader), k.keys)
	return nil
}

func (k *TerminalKeys) pump(in *bufio.Reader, keys chan<- rune) {
	defer close(keys)
	for {
		r, _, err := in.ReadRune()
		if err != nil {
			return
		}
		keys <- r
	}
}

// Close stops the reader goroutine and restores the console mode
func (k *TerminalKeys) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.oldState == nil {
		return nil
	}
	k.reader.Cancel()
	k.reader.Close()
	err := term.Restore(k.fd, k.oldState)
	k.oldState = nil
	k.reader = nil
	if err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	return nil
}

// KeyAvailable reports whether a key is waiting in the channel
func (k *TerminalKeys) KeyAvailable() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.keys != nil && len(k.keys) > 0
}

// ReadKey returns the next key code
func (k *TerminalKeys) ReadKey() (rune, error) {
	k.mu.Lock()
	keys := k.keys
	k.mu.Unlock()
	if keys == nil {
		return 0, ErrNotTerminal
	}
	r, ok := <-keys
	if !ok {
		return 0, io.EOF
	}
	return r, nil
}

// Cancel interrupts a blocked ReadKey
func (k *TerminalKeys) Cancel() bool {
	k.mu.Lock()
	reader := k.reader
	k.mu.Unlock()
	if reader == nil {
		return false
	}
	return reader.Cancel()
}
