package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snip-dev/snip/internal/search"
)

func newSearchCmd() *cobra.Command {
	var language string
	var tag string
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Fuzzy-search snippets by name, tags, and content",
		Long: `Search snippets with fuzzy matching over names, tags, and content.

Results are ranked: exact name matches first, then name substrings,
then tag and content matches, then fuzzy hits. An empty query lists
everything that passes the filters.

Examples:
  snip search docker
  snip search "compose up" --language bash --limit 5
  snip search --tag backup`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			database, store, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer database.Close()

			if language != "" && !cfg.KnownLanguage(language) {
				fmt.Fprintf(os.Stderr, "warning: %q is not a recognised language\n", language)
			}

			if limit == 0 {
				limit = cfg.DefaultLimit
			}

			corpus, err := store.List()
			if err != nil {
				return err
			}

			engine := search.NewEngine(cfg.Search)
			matches := engine.Search(corpus, search.Query{
				Text:     query,
				Language: language,
				Tag:      tag,
				Limit:    limit,
			})

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(matches)
			}

			if len(matches) == 0 {
				fmt.Println("No matches.")
				return nil
			}

			for _, m := range matches {
				sn := m.Snippet
				tags := ""
				if len(sn.Tags) > 0 {
					tags = " [" + strings.Join(sn.Tags, ", ") + "]"
				}
				fmt.Printf("%3d  %-30s %-12s via %s%s\n",
					m.Score, sn.Name, sn.Language, m.Field, tags)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Only match snippets with this language")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Only match snippets carrying this tag")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit results as JSON")

	return cmd
}
