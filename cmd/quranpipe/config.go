package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/owaisj/quranpipe/internal/config"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Long: `Write the default configuration to a file for editing. The database
URL is left unset; provide it via DATABASE_URL or fill in database_url.

Examples:
  quranpipe config init                       # ./config.yaml
  quranpipe config init ~/.quranpipe/config.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		if !configInitForce {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
