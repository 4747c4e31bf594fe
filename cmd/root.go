package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "promptline",
	Short: "Keep a live input line below asynchronous terminal output",
	Long: `Promptline multiplexes a terminal between free-form output written from any
goroutine and one editable input line pinned below it. Output never garbles
the line being typed: the prompt is erased before each write and redrawn
after it.

Available commands:
  demo     - Print background output while echoing what you type
  keys     - Show how keystrokes are decoded
  config   - Show or save the effective configuration
  version  - Print version information`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&sessionFlags.prefix, "prefix", "", "Prompt shown before the input line")
	flags.StringVar(&sessionFlags.mode, "mode", "", "Input mode: line or char")
	flags.DurationVar(&sessionFlags.pollInterval, "poll-interval", 0, "Interval between key availability checks (e.g. 10ms)")
	flags.BoolVar(&sessionFlags.blocking, "blocking", false, "Block on key reads instead of polling")
	flags.BoolVar(&sessionFlags.redirect, "redirect", false, "Route os.Stdout and os.Stderr through the console")
	flags.BoolVar(&sessionFlags.scanCodes, "scan-codes", false, "Decode 0xE0/0x00 prefixed navigation scan codes")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(configCmd)
}
