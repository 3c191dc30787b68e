package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage snippet tags",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <snippet> <tag>...",
			Short: "Attach tags to a snippet",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				database, store, _, err := openStore()
				if err != nil {
					return err
				}
				defer database.Close()

				for _, tag := range args[1:] {
					if err := store.AddTag(args[0], tag); err != nil {
						return err
					}
				}
				sn, err := store.GetByName(args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Tags on %q: %v\n", sn.Name, sn.Tags)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <snippet> <tag>",
			Short: "Detach a tag from a snippet",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				database, store, _, err := openStore()
				if err != nil {
					return err
				}
				defer database.Close()

				if err := store.RemoveTag(args[0], args[1]); err != nil {
					return err
				}
				fmt.Printf("Removed tag %q from %q\n", args[1], args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List all tags in use with counts",
			RunE: func(cmd *cobra.Command, args []string) error {
				database, store, _, err := openStore()
				if err != nil {
					return err
				}
				defer database.Close()

				counts, err := store.TagCounts()
				if err != nil {
					return err
				}
				if len(counts) == 0 {
					fmt.Println("No tags in use.")
					return nil
				}
				for _, tc := range counts {
					fmt.Printf("%-24s %d\n", tc.Tag, tc.Count)
				}
				return nil
			},
		},
	)

	return cmd
}
