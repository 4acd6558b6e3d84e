// Init command for the registrar CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize registrar storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The store and the default config.yaml were already created by
		// PersistentPreRunE; report where everything lives.
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}

		fmt.Println("Registrar initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
		return nil
	},
}
