package cmd

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version can be stamped at build time:
//
//	go build -ldflags "-X github.com/alantheprice/promptline/cmd.version=v1.2.0"
var version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		printVersionInfo(cmd.OutOrStdout())
	},
}

func init() {
	// Also enables --version and -v on the root command
	rootCmd.Version = resolveVersion()
	rootCmd.AddCommand(versionCmd)
}

// resolveVersion prefers the linker-stamped version, then the module version
// recorded by go install.
func resolveVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

func printVersionInfo(w io.Writer) {
	fmt.Fprintf(w, "promptline version %s\n", resolveVersion())

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				fmt.Fprintf(w, "Git commit: %s\n", setting.Value)
			case "vcs.time":
				fmt.Fprintf(w, "Build date: %s\n", setting.Value)
			case "vcs.modified":
				if setting.Value == "true" {
					fmt.Fprintln(w, "Working tree: modified")
				}
			}
		}
	}

	fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
	fmt.Fprintf(w, "Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
