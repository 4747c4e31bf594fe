//go:build windows
// +build windows

package console

import (
	"os"
)

// signalsToCapture returns nothing on Windows: Ctrl+C arrives as
// os.Interrupt, which the application handles itself.
func signalsToCapture() []os.Signal {
	return nil
}

// reRaiseSignal cannot re-raise POSIX signals on Windows; exit after cleanup.
func reRaiseSignal(sig os.Signal) { os.Exit(1) }
