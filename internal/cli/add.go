package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snip-dev/snip/internal/editor"
	"github.com/snip-dev/snip/internal/snippet"
)

func newAddCmd() *cobra.Command {
	var language string
	var tags []string
	var fromFile string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Store a new snippet",
		Long: `Store a new named snippet.

Content comes from --file, from stdin when piped, or from your editor.

Examples:
  snip add docker-cleanup --file cleanup.sh --tag docker
  pbpaste | snip add clipboard-dump --language json
  snip add deploy-notes --language markdown --tag deploy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			database, store, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer database.Close()

			var content string
			switch {
			case fromFile != "":
				data, err := os.ReadFile(fromFile)
				if err != nil {
					return fmt.Errorf("read %s: %w", fromFile, err)
				}
				content = string(data)
				if language == "" {
					language = snippet.LanguageForFile(fromFile)
				}

			case stdinPiped():
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = string(data)

			default:
				edited, err := editor.Edit(cfg.EditorCommand(), "", snippet.FileExtension(language))
				if err != nil {
					return err
				}
				content = edited
			}

			if strings.TrimSpace(content) == "" {
				return fmt.Errorf("no content provided, snippet not saved")
			}

			sn := snippet.New(name, content, language, tags)
			if err := store.Create(sn); err != nil {
				return err
			}

			fmt.Printf("Stored %q (%s", sn.Name, sn.Language)
			if len(sn.Tags) > 0 {
				fmt.Printf(", tags: %s", strings.Join(sn.Tags, ", "))
			}
			fmt.Println(")")
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Language tag (auto-detected from --file extension if unset)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag to attach (repeatable)")
	cmd.Flags().StringVarP(&fromFile, "file", "f", "", "Read content from a file")

	return cmd
}

// stdinPiped reports whether stdin carries piped data rather than a TTY.
func stdinPiped() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}
