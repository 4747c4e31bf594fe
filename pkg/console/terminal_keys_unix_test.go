//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package console

import (
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func openPty(t *testing.T) (ptmx, tty *os.File) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty not available: %v", err)
	}
	t.Cleanup(func() {
		tty.Close()
		ptmx.Close()
	})
	return ptmx, tty
}

func TestTerminalKeys_NotATerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	keys := NewTerminalKeys(r)
	assert.ErrorIs(t, keys.Open(), ErrNotTerminal)
}

func TestTerminalKeys_CbreakRoundTrip(t *testing.T) {
	ptmx, tty := openPty(t)

	before, err := unix.IoctlGetTermios(int(tty.Fd()), ioctlGetTermios)
	require.NoError(t, err)

	keys := NewTerminalKeys(tty)
	require.NoError(t, keys.Open())
	require.NoError(t, keys.Open(), "second open is a no-op")

	state, err := unix.IoctlGetTermios(int(tty.Fd()), ioctlGetTermios)
	require.NoError(t, err)
	assert.Zero(t, state.Lflag&unix.ICANON, "canonical mode off")
	assert.Zero(t, state.Lflag&unix.ECHO, "echo off")
	assert.NotZero(t, state.Lflag&unix.ISIG, "signal keys still work")

	assert.False(t, keys.KeyAvailable())

	_, err = ptmx.Write([]byte("aé"))
	require.NoError(t, err)
	require.Eventually(t, keys.KeyAvailable, time.Second, time.Millisecond)

	r, err := keys.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, 'a', r)
	r, err = keys.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, 'é', r)

	require.NoError(t, keys.Close())
	after, err := unix.IoctlGetTermios(int(tty.Fd()), ioctlGetTermios)
	require.NoError(t, err)
	assert.Equal(t, before.Lflag, after.Lflag)
}

func TestTerminalKeys_CancelUnblocksRead(t *testing.T) {
	_, tty := openPty(t)

	keys := NewTerminalKeys(tty)
	require.NoError(t, keys.Open())
	defer keys.Close()

	errs := make(chan error, 1)
	go func() {
		_, err := keys.ReadKey()
		errs <- err
	}()
	time.Sleep(20 * time.Millisecond)
	require.True(t, keys.Cancel())

	select {
	case err := <-errs:
		assert.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("ReadKey was not canceled")
	}
}

func TestSession_OnPty(t *testing.T) {
	ptmx, tty := openPty(t)
	require.NoError(t, pty.Setsize(tty, &pty.Winsize{Rows: 24, Cols: 40}))

	s := NewSession(SessionConfig{
		Keys:         NewTerminalKeys(tty),
		Geometry:     NewTerminalGeometry(tty),
		Output:       &lockedBuffer{},
		PollInterval: time.Millisecond,
	})
	t.Cleanup(s.Disable)
	assert.Equal(t, 40, s.width())

	require.NoError(t, s.Enable(LineMode))
	_, err := ptmx.Write([]byte("ls -l\x1b[D\x1b[Dx\r"))
	require.NoError(t, err)

	require.Equal(t, InputReady, s.WaitInputFor(2*time.Second))
	assert.Equal(t, "ls x-l", s.Input())
}
