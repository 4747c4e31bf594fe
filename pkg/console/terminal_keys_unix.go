//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package console

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/muesli/cancelreader"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// TerminalKeys reads keys from a tty in cbreak mode: no line buffering and
// no echo, but signal keys such as Ctrl+C still reach the process.
type TerminalKeys struct {
	mu       sync.Mutex
	file     *os.File
	fd       int
	oldState *unix.Termios
	reader   cancelreader.CancelReader
	in       *bufio.Reader
}

// NewTerminalKeys creates a key source for f, normally os.Stdin
func NewTerminalKeys(f *os.File) *TerminalKeys {
	return &TerminalKeys{
		file: f,
		fd:   int(f.Fd()),
	}
}

// Open switches the terminal to cbreak mode
func (k *TerminalKeys) Open() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.oldState != nil {
		return nil // Already open
	}
	if !term.IsTerminal(k.fd) {
		return ErrNotTerminal
	}

	oldState, err := unix.IoctlGetTermios(k.fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("failed to read terminal state: %w", err)
	}

	cbreak := *oldState
	cbreak.Lflag &^= unix.ICANON | unix.ECHO
	cbreak.Cc[unix.VMIN] = 1
	cbreak.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(k.fd, ioctlSetTermios, &cbreak); err != nil {
		return fmt.Errorf("failed to set cbreak mode: %w", err)
	}

	reader, err := cancelreader.NewReader(k.file)
	if err != nil {
		_ = unix.IoctlSetTermios(k.fd, ioctlSetTermios, oldState)
		return fmt.Errorf("failed to create input reader: %w", err)
	}

	k.oldState = oldState
	k.reader = reader
	k.in = bufio.NewReader(reader)
	return nil
}

// Close restores the terminal state saved by Open
func (k *TerminalKeys) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.oldState == nil {
		return nil
	}
	k.reader.Close()
	err := unix.IoctlSetTermios(k.fd, ioctlSetTermios, k.oldState)
	k.oldState = nil
	k.reader = nil
	k.in = nil
	if err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	return nil
}

// KeyAvailable polls the tty without blocking
func (k *TerminalKeys) KeyAvailable() bool {
	if in := k.input(); in != nil && in.Buffered() > 0 {
		return true
	}
	fds := []unix.PollFd{{Fd: int32(k.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	return err == nil && n > 0 && fds[0].Revents&unix.POLLIN != 0
}

// ReadKey returns the next key code, decoding UTF-8 input into runes
func (k *TerminalKeys) ReadKey() (rune, error) {
	in := k.input()
	if in == nil {
		return 0, ErrNotTerminal
	}
	r, _, err := in.ReadRune()
	if err != nil {
		return 0, err
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

func (k *TerminalKeys) input() *bufio.Reader {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.in
}
