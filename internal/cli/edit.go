package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snip-dev/snip/internal/editor"
	"github.com/snip-dev/snip/internal/snippet"
)

func newEditCmd() *cobra.Command {
	var language string
	var tags []string

	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Edit a snippet's content in your editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, store, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer database.Close()

			sn, err := store.GetByName(args[0])
			if err != nil {
				return err
			}

			changed := false

			if cmd.Flags().Changed("language") {
				sn.Language = snippet.NormalizeLanguage(language)
				changed = true
			}
			if cmd.Flags().Changed("tag") {
				sn.Tags = snippet.NormalizeTags(tags)
				changed = true
			}

			// Only open the editor when no metadata-only change was asked for,
			// or when editing was requested alongside it.
			if !changed {
				edited, err := editor.Edit(cfg.EditorCommand(), sn.Content, snippet.FileExtension(sn.Language))
				if err != nil {
					return err
				}
				if edited == sn.Content {
					fmt.Println("No changes.")
					return nil
				}
				sn.Content = edited
			}

			if err := store.Update(sn); err != nil {
				return err
			}
			fmt.Printf("Updated %q\n", sn.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Set the language tag without opening the editor")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Replace the tag set without opening the editor")

	return cmd
}
