package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a snippet",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			database, store, _, err := openStore()
			if err != nil {
				return err
			}
			defer database.Close()

			if _, err := store.GetByName(name); err != nil {
				return err
			}

			if !yes && !confirmPrompt(fmt.Sprintf("Delete snippet %q?", name)) {
				fmt.Println("Aborted.")
				return nil
			}

			if err := store.DeleteByName(name); err != nil {
				return err
			}
			fmt.Printf("Deleted %q\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
