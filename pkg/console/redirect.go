package console

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// streamRedirect swaps os.Stdout and os.Stderr for pipes whose contents are
// copied into a destination writer. It remembers the files it replaced and
// puts them back exactly once.
type streamRedirect struct {
	prevStdout *os.File
	prevStderr *os.File

	writers []*os.File
	wg      sync.WaitGroup
	once    sync.Once
}

func redirectStdStreams(dst io.Writer) (*streamRedirect, error) {
	outR, outW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		outR.Close()
		outW.Close()
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	r := &streamRedirect{
		prevStdout: os.Stdout,
		prevStderr: os.Stderr,
		writers:    []*os.File{outW, errW},
	}
	for _, pr := range []*os.File{outR, errR} {
		r.wg.Add(1)
		go func(pr *os.File) {
			defer r.wg.Done()
			defer pr.Close()
			// Copy ends when restore closes the write side
			_, _ = io.Copy(dst, pr)
		}(pr)
	}

	os.Stdout = outW
	os.Stderr = errW
	return r, nil
}

// restore reinstates the original streams and waits until everything
// written to the pipes has been delivered.
func (r *streamRedirect) restore() {
	r.once.Do(func() {
		os.Stdout = r.prevStdout
		os.Stderr = r.prevStderr
		for _, w := range r.writers {
			w.Close()
		}
		r.wg.Wait()
	})
}
