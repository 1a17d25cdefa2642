package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgpai22/podmeta/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persisted settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		values := settings.Values()
		for _, key := range config.Keys() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, values[key])
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting and save it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := settings.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := settings.Save(configPath); err != nil {
			return err
		}
		logger.Infow("Saved settings", "path", configPath, "key", args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configPath)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd, configPathCmd)
}
