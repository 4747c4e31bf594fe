package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alantheprice/promptline/pkg/console"
	"github.com/spf13/cobra"
)

var demoInterval time.Duration

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Print background output while echoing what you type",
	Long: `Starts a goroutine that prints a line every --interval while the console
keeps an editable prompt below it. Each submitted line is echoed back with the
prompt in front of it. Type "exit" or press Ctrl+C to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		session, mode, err := newSession(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := session.Enable(mode); err != nil {
			return err
		}

		tickCtx, cancelTick := context.WithCancel(ctx)
		ticking := make(chan struct{})
		go func() {
			defer close(ticking)
			tick(tickCtx, outputFor(session, cfg.RedirectStdStreams), demoInterval)
		}()

		err = echoInput(ctx, session)

		// The ticker may be writing to a redirected os.Stdout; stop it
		// before Disable swaps the stream back.
		cancelTick()
		<-ticking
		session.Disable()
		return err
	},
}

func init() {
	demoCmd.Flags().DurationVar(&demoInterval, "interval", 500*time.Millisecond, "Delay between background lines")
}

// outputFor picks the writer the background goroutine prints to. With the
// standard streams redirected, plain os.Stdout goes through the console too.
func outputFor(session *console.Session, redirected bool) func() io.Writer {
	if redirected {
		return func() io.Writer { return os.Stdout }
	}
	return func() io.Writer { return session.Writer() }
}

func tick(ctx context.Context, out func() io.Writer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprintf(out(), "Hello World #%d\n", n)
		}
	}
}

func echoInput(ctx context.Context, session *console.Session) error {
	for {
		switch session.WaitInputContext(ctx) {
		case console.InputClosed:
			return nil
		case console.InputExpired:
			// interrupted
			return nil
		}

		line := session.Input()
		if session.Mode() == console.LineMode && strings.TrimSpace(line) == "exit" {
			return nil
		}
		session.Printf("%s%s\n", session.Prefix(), line)
	}
}
