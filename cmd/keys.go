package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alantheprice/promptline/pkg/console"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show how keystrokes are decoded",
	Long: `Reads raw keys from the terminal and prints the code of every byte together
with the editing event the decoder produced for it. Useful when a terminal
sends navigation keys the console does not recognize. Press q or Ctrl+C to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		keys := console.NewTerminalKeys(os.Stdin)
		if err := keys.Open(); err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		defer keys.Close()

		decoder := console.NewKeyDecoder()
		decoder.ScanCodes = cfg.ScanCodes
		return inspectKeys(ctx, keys, decoder, cfg.PollInterval())
	},
}

func inspectKeys(ctx context.Context, keys console.KeySource, decoder *console.KeyDecoder, poll time.Duration) error {
	title := cases.Title(language.English)
	fmt.Println("Press keys to see how they decode (q to quit)")

	for {
		if !keys.KeyAvailable() {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(poll):
			}
			continue
		}

		code, err := keys.ReadKey()
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}

		ev, ok := decoder.Feed(code)
		switch {
		case ok && ev.Kind == console.EventInsert:
			fmt.Printf("%-6d %q -> %s %q\n", code, code, title.String(ev.Kind.String()), ev.Char)
		case ok:
			fmt.Printf("%-6d %q -> %s\n", code, code, title.String(ev.Kind.String()))
		case decoder.Pending():
			fmt.Printf("%-6d %q ...\n", code, code)
		default:
			fmt.Printf("%-6d %q -> (ignored)\n", code, code)
		}

		if ok && ev.Kind == console.EventInsert && ev.Char == 'q' {
			return nil
		}
	}
}
