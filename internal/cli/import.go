package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/snip-dev/snip/internal/importer"
)

func newImportCmd() *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "import <directory>",
		Short: "Import every snippet-sized file in a directory tree",
		Long: `Walk a directory and store each text file as a snippet.

Gitignored paths, dotfiles, binaries, and oversized files are skipped.
The language tag is detected from the file extension and the snippet
name is derived from the relative path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, store, _, err := openStore()
			if err != nil {
				return err
			}
			defer database.Close()

			bar := progressbar.NewOptions(-1,
				progressbar.OptionSetDescription("  Importing"),
				progressbar.OptionSpinnerType(14),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)

			res, err := importer.Import(store, importer.Options{
				Root: args[0],
				Tags: tags,
				Progress: func(string) {
					_ = bar.Add(1)
				},
			})
			_ = bar.Finish()
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d snippet(s), skipped %d, failed %d\n",
				res.Imported, res.Skipped, res.Failed)
			for _, e := range res.Errors {
				fmt.Fprintf(os.Stderr, "  %v\n", e)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag to attach to every imported snippet (repeatable)")

	return cmd
}
