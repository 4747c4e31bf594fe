package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/alantheprice/promptline/pkg/configuration"
	"github.com/spf13/cobra"
)

var saveConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or save the effective configuration",
	Long: `Prints the configuration after the config file, PROMPTLINE_* environment
variables and command-line flags have been applied. With --save the result is
written back to the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if saveConfig {
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			path, _ := configuration.GetConfigPath()
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&saveConfig, "save", false, "Write the effective configuration to the config file")
}
