//go:build !windows
// +build !windows

package console

import (
	"os"
	"os/signal"
	"syscall"
)

// signalsToCapture returns the fatal signals that should restore the
// terminal before the process goes away. SIGINT and SIGTERM are left to the
// application.
func signalsToCapture() []os.Signal {
	return []os.Signal{
		syscall.SIGQUIT,
		syscall.SIGHUP,
	}
}

// reRaiseSignal re-raises a signal so the default handler can run (Unix).
func reRaiseSignal(sig os.Signal) {
	signal.Reset(sig)
	syscall.Kill(syscall.Getpid(), sig.(syscall.Signal))
}
