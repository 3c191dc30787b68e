package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var language string
	var tag string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List snippets, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, store, _, err := openStore()
			if err != nil {
				return err
			}
			defer database.Close()

			snippets, err := store.ListFiltered(language, tag)
			if err != nil {
				return err
			}
			if len(snippets) == 0 {
				fmt.Println("No snippets found.")
				return nil
			}

			for _, sn := range snippets {
				tags := ""
				if len(sn.Tags) > 0 {
					tags = " [" + strings.Join(sn.Tags, ", ") + "]"
				}
				fmt.Printf("%-30s %-12s %s%s\n",
					sn.Name, sn.Language, sn.UpdatedAt.Format("2006-01-02"), tags)
			}
			fmt.Printf("\n%d snippet(s)\n", len(snippets))
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Only show snippets with this language")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Only show snippets carrying this tag")

	return cmd
}
