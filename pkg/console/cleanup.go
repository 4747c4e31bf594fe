package console

import (
	"os"
	"os/signal"
	"sort"
	"sync"
)

// cleanupRegistry restores terminals left in cbreak mode when the process
// dies from a signal or a panic instead of calling Disable.
type cleanupRegistry struct {
	mu      sync.Mutex
	funcs   map[int]func()
	next    int
	signals []os.Signal
	watched bool
}

func newCleanupRegistry(signals []os.Signal) *cleanupRegistry {
	return &cleanupRegistry{
		funcs:   make(map[int]func()),
		signals: signals,
	}
}

// register adds fn and returns a function that removes it again
func (r *cleanupRegistry) register(fn func()) (unregister func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.next
	r.next++
	r.funcs[id] = fn

	if !r.watched && len(r.signals) > 0 {
		r.watched = true
		r.watch()
	}

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.funcs, id)
	}
}

// run calls every registered function once, newest first. The lock is not
// held while they run so they may unregister themselves.
func (r *cleanupRegistry) run() {
	r.mu.Lock()
	ids := make([]int, 0, len(r.funcs))
	for id := range r.funcs {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))
	funcs := make([]func(), len(ids))
	for i, id := range ids {
		funcs[i] = r.funcs[id]
	}
	r.funcs = make(map[int]func())
	r.mu.Unlock()

	for _, fn := range funcs {
		fn()
	}
}

// watch runs the registry on the first fatal signal, then lets the signal's
// default action proceed. Called with r.mu held.
func (r *cleanupRegistry) watch() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, r.signals...)

	go func() {
		sig := <-sigChan
		signal.Stop(sigChan)
		r.run()
		reRaiseSignal(sig)
	}()
}

// Interrupt and terminate are left to the application, which usually wants
// to shut down gracefully through Disable.
var globalCleanup = newCleanupRegistry(signalsToCapture())

// RestoreOnPanic disables every enabled session if the calling goroutine is
// panicking, then continues the panic. Defer it at the top of main.
func RestoreOnPanic() {
	if r := recover(); r != nil {
		globalCleanup.run()
		panic(r)
	}
}
