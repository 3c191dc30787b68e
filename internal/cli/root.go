// Package cli defines the Cobra command tree for the snip CLI.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snip-dev/snip/internal/config"
	"github.com/snip-dev/snip/internal/db"
	"github.com/snip-dev/snip/internal/snippet"
)

var (
	// version, commit, date are set via -ldflags at build time.
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "snip",
	Short: "Store, search, and retrieve code snippets from the terminal",
	Long: `Snip is a personal snippet manager.

It keeps named code fragments with language tags and free-form tags in
a local SQLite database, and finds them again with fuzzy search over
names, tags, and content.

Run 'snip init' to get started, then 'snip add' and 'snip search'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute(v, c, d string) {
	version, commit, date = v, c, d
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newShowCmd(),
		newListCmd(),
		newSearchCmd(),
		newFindCmd(),
		newTagCmd(),
		newImportCmd(),
		newConfigCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("snip %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

// openStore loads the config and opens the snippet store. The caller
// must Close the returned DB.
func openStore() (*db.DB, *snippet.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, cfg, err
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("open database: %w", err)
	}

	return database, snippet.NewStore(database), cfg, nil
}

func confirmPrompt(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	return line == "y" || line == "yes"
}
