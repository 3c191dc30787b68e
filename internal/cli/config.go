package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/snip-dev/snip/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change snip settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				path, _ := config.Path()
				fmt.Printf("config file:    %s\n", path)
				fmt.Printf("database_path:  %s\n", cfg.DatabasePath)
				fmt.Printf("editor:         %s\n", cfg.EditorCommand())
				fmt.Printf("default_limit:  %d\n", cfg.DefaultLimit)
				fmt.Printf("languages:      %v\n", cfg.Languages)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value",
			Long: `Set a configuration value and write it back to the config file.

Supported keys: database_path, editor, default_limit.`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}

				key, value := args[0], args[1]
				switch key {
				case "database_path":
					cfg.DatabasePath = value
				case "editor":
					cfg.Editor = value
				case "default_limit":
					n, err := strconv.Atoi(value)
					if err != nil || n < 1 {
						return fmt.Errorf("default_limit must be a positive integer, got %q", value)
					}
					cfg.DefaultLimit = n
				default:
					return fmt.Errorf("unknown config key %q (supported: database_path, editor, default_limit)", key)
				}

				if err := config.Save(cfg); err != nil {
					return err
				}
				fmt.Printf("Set %s = %s\n", key, value)
				return nil
			},
		},
	)

	return cmd
}
