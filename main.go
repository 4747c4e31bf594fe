package main

import (
	"os"

	"github.com/alantheprice/promptline/cmd"
	"github.com/alantheprice/promptline/pkg/console"
	"github.com/alantheprice/promptline/pkg/utils"
)

func main() {
	logger := utils.GetLogger()
	// Flush and close the rotating log file on the way out
	defer func() {
		if err := logger.Close(); err != nil {
			// The logger itself may be the problem, so report on stderr
			os.Stderr.WriteString("Error closing logger: " + err.Error() + "\n")
		}
	}()
	// Leave the terminal usable if anything panics while input is enabled
	defer console.RestoreOnPanic()

	if err := cmd.Execute(); err != nil {
		logger.Logf("Application error: %v", err)
		logger.Close()
		os.Exit(1)
	}
}
