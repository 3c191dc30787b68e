package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snip-dev/snip/internal/config"
	"github.com/snip-dev/snip/internal/db"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the snip config file and snippet database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := config.Path()
			if err != nil {
				return fmt.Errorf("determine config path: %w", err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
				if err := config.Save(cfg); err != nil {
					return err
				}
				fmt.Printf("Created config:   %s\n", cfgPath)
			} else {
				fmt.Printf("Config exists:    %s\n", cfgPath)
			}

			database, err := db.Open(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("create database: %w", err)
			}
			defer database.Close()

			fmt.Printf("Snippet database: %s\n", cfg.DatabasePath)
			fmt.Println("\nReady. Try: snip add my-snippet --language bash")
			return nil
		},
	}
}
