package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:     "show <name>",
		Aliases: []string{"cat"},
		Short:   "Print a snippet",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, store, _, err := openStore()
			if err != nil {
				return err
			}
			defer database.Close()

			sn, err := store.GetByName(args[0])
			if err != nil {
				return err
			}

			// Metadata goes to stderr so `snip show x > file` stays clean.
			if !raw {
				fmt.Fprintf(os.Stderr, "Name:     %s\n", sn.Name)
				fmt.Fprintf(os.Stderr, "Language: %s\n", sn.Language)
				if len(sn.Tags) > 0 {
					fmt.Fprintf(os.Stderr, "Tags:     %s\n", strings.Join(sn.Tags, ", "))
				}
				fmt.Fprintf(os.Stderr, "Updated:  %s\n\n", sn.UpdatedAt.Format("2006-01-02 15:04"))
			}

			fmt.Print(sn.Content)
			if !strings.HasSuffix(sn.Content, "\n") {
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print content only, no metadata")

	return cmd
}
